package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scoutline/scoutline-api/internal/dtos"
	"github.com/scoutline/scoutline-api/internal/services"
)

// AuthHandler serves the login endpoint.
type AuthHandler struct {
	Auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// Login is the POST /auth/login endpoint.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	session, err := h.Auth.Login(c.Request.Context(), req.UserType, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
