package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scoutline/scoutline-api/internal/apperrors"
	"github.com/scoutline/scoutline-api/internal/middleware"
	"github.com/scoutline/scoutline-api/internal/models"
)

// HealthCheck is the GET /health endpoint.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// actor fetches the session actor, failing the request when it is missing.
func actor(c *gin.Context) (models.Actor, bool) {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	}
	return a, ok
}

// writeError maps the service error taxonomy onto HTTP statuses. Callers get
// a human-readable message only, never internals.
func writeError(c *gin.Context, err error) {
	var vErr *apperrors.ValidationError
	var upErr *apperrors.UploadError
	var pErr *apperrors.PersistenceError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Msg})
	case errors.As(err, &upErr):
		status := http.StatusBadRequest
		switch upErr.Category {
		case apperrors.UploadTooLarge:
			status = http.StatusRequestEntityTooLarge
		case apperrors.UploadUnsupportedType:
			status = http.StatusUnsupportedMediaType
		case apperrors.UploadDuplicate:
			status = http.StatusConflict
		case apperrors.UploadPermissionDenied:
			status = http.StatusForbidden
		case apperrors.UploadNetwork, apperrors.UploadUnknown:
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": upErr.Msg, "category": upErr.Category})
	case errors.Is(err, apperrors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, apperrors.ErrRoomAccess):
		c.JSON(http.StatusForbidden, gin.H{"error": "Room not found or access denied"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.As(err, &pErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, please retry"})
	}
}
