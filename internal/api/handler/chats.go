package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RoomChats returns the full drawing history of a room in storage
// order. Late joiners replay it to rebuild the canvas before switching
// to the live relay feed.
func (h *Handler) RoomChats(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("roomId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Room ID is required"})
		return
	}
	chats, err := h.Storage.GetRoomEvents(roomID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": 400, "error": "Error while fetching chats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": 200, "chats": chats})
}
