package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scoutline/scoutline-api/internal/services"
)

// UploadHandler accepts multipart attachment uploads.
type UploadHandler struct {
	Uploads *services.UploadService
}

func NewUploadHandler(uploads *services.UploadService) *UploadHandler {
	return &UploadHandler{Uploads: uploads}
}

// UploadAttachment is the POST /uploads endpoint. Size and type limits are
// enforced by the service before the blob store is touched.
func (h *UploadHandler) UploadAttachment(c *gin.Context) {
	act, ok := actor(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer f.Close()

	obj, err := h.Uploads.UploadAttachment(
		c.Request.Context(),
		act,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		f,
	)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, obj)
}
