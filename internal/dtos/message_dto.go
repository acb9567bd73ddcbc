package dtos

type SendMessageRequest struct {
	MessageType string   `json:"messageType" binding:"required"`
	Subject     string   `json:"subject"`
	Content     string   `json:"content" binding:"required"`
	FileURLs    []string `json:"fileUrls"`
}

type UpdateMessageStatusRequest struct {
	MessageIDs []uint `json:"messageIds" binding:"required"`
	Status     string `json:"status" binding:"required"`
}
