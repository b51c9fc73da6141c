package handler

import (
	"net/http"

	"drawspace/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type createInviteRequest struct {
	RoomID models.RoomID `json:"roomId" binding:"required"`
	Role   string        `json:"role" binding:"required"`
}

// CreateInvite issues a signed, time-limited invitation token for a
// user to join one of the caller's rooms. Delivery of the link (mail
// or otherwise) is the frontend's concern; the token is returned as-is.
func (h *Handler) CreateInvite(c *gin.Context) {
	targetUserID := c.Param("userId")
	var req createInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID and Room ID are required"})
		return
	}
	roomID := int64(req.RoomID)

	if _, err := h.Storage.GetUserByID(targetUserID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	room, err := h.Storage.GetRoomByID(roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	if room.AdminID != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the room admin can invite"})
		return
	}

	member, err := h.Storage.IsMember(targetUserID, roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invitation"})
		return
	}
	if member {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User is already a member of this room"})
		return
	}

	token, err := h.Auth.GenerateInviteToken(targetUserID, roomID, req.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invitation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": 200, "token": token})
}

// VerifyInvite checks an invitation token and returns the room and
// user it refers to. Verification does not redeem the token; redemption
// happens on join.
func (h *Handler) VerifyInvite(c *gin.Context) {
	invite, err := h.Auth.VerifyInviteToken(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": "Invalid or expired invitation link"})
		return
	}

	room, err := h.Storage.GetRoomByID(invite.RoomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"valid": false, "error": "Room not found"})
		return
	}
	user, err := h.Storage.GetUserByID(invite.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"valid": false, "error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": 200,
		"valid":  true,
		"room":   gin.H{"id": room.ID, "slug": room.Slug, "adminId": room.AdminID},
		"user":   gin.H{"id": user.ID, "name": user.Name, "email": user.Email},
		"role":   invite.Role,
	})
}
