package dtos

type LoginRequest struct {
	UserType string `json:"userType" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
