package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/scoutline/scoutline-api/internal/dtos"
	"github.com/scoutline/scoutline-api/internal/services"
)

// RoomHandler serves the room directory and room lifecycle endpoints.
type RoomHandler struct {
	Directory *services.DirectoryService
	Rooms     *services.RoomService
}

func NewRoomHandler(directory *services.DirectoryService, rooms *services.RoomService) *RoomHandler {
	return &RoomHandler{Directory: directory, Rooms: rooms}
}

// roomID parses the :roomID path parameter.
func roomID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("roomID"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return 0, false
	}
	return uint(id), true
}

// ListRooms is the GET /rooms endpoint.
func (h *RoomHandler) ListRooms(c *gin.Context) {
	act, ok := actor(c)
	if !ok {
		return
	}
	// Directory listing is fail-soft: errors come back as an empty list.
	c.JSON(http.StatusOK, gin.H{"rooms": h.Directory.ListRooms(c.Request.Context(), act)})
}

// CreateRoom is the POST /rooms endpoint.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	act, ok := actor(c)
	if !ok {
		return
	}
	var req dtos.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	room, err := h.Rooms.CreateRoom(c.Request.Context(), act, services.CreateRoomInput{
		CandidateID:         req.CandidateID,
		CompanyGroupID:      req.CompanyGroupID,
		RelatedJobPostingID: req.RelatedJobPostingID,
		Type:                req.Type,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.Directory.InvalidateDirectory(c.Request.Context(), act)
	c.JSON(http.StatusCreated, room)
}

// GetRoom is the GET /rooms/:roomID endpoint.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	act, ok := actor(c)
	if !ok {
		return
	}
	id, ok := roomID(c)
	if !ok {
		return
	}

	room, err := h.Rooms.GetRoom(c.Request.Context(), id, act)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// UpdateRoom is the PATCH /rooms/:roomID endpoint.
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	act, ok := actor(c)
	if !ok {
		return
	}
	id, ok := roomID(c)
	if !ok {
		return
	}
	var req dtos.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	room, err := h.Rooms.UpdateRoom(c.Request.Context(), id, act, req.RelatedJobPostingID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// DeleteRoom is the DELETE /rooms/:roomID endpoint.
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	act, ok := actor(c)
	if !ok {
		return
	}
	id, ok := roomID(c)
	if !ok {
		return
	}

	if err := h.Rooms.DeleteRoom(c.Request.Context(), id, act); err != nil {
		writeError(c, err)
		return
	}
	h.Directory.InvalidateDirectory(c.Request.Context(), act)
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted"})
}
