package handler

import (
	"errors"
	"net/http"
	"strconv"

	"drawspace/backend/internal/models"
	"drawspace/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

type createRoomRequest struct {
	RoomName string   `json:"roomName" binding:"required,min=3,max=20"`
	Tags     []string `json:"tags"`
}

// CreateRoom creates a board owned by the caller.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room := models.Room{
		Slug:    req.RoomName,
		AdminID: currentUserID(c),
		Tags:    pq.StringArray(req.Tags),
	}
	if err := h.Storage.CreateRoom(&room); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Room already exists"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": 200, "room": room})
}

// ListRooms returns every room the caller administers or collaborates
// on.
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.Storage.ListRoomsForUser(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error while getting rooms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": 200, "rooms": rooms})
}

// MyRooms returns only the rooms the caller administers.
func (h *Handler) MyRooms(c *gin.Context) {
	rooms, err := h.Storage.ListAdminRooms(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error while getting rooms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": 200, "rooms": rooms})
}

// DeleteRoom removes a room the caller administers.
func (h *Handler) DeleteRoom(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("roomId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Room ID is required"})
		return
	}

	if err := h.Storage.DeleteRoom(roomID, currentUserID(c)); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, storage.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"status": status, "error": "Error while deleting room"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": 200, "message": "Room deleted successfully"})
}

// GetRoomBySlug looks a room up by its name, used when opening a
// canvas link.
func (h *Handler) GetRoomBySlug(c *gin.Context) {
	slug := c.Param("slug")
	room, err := h.Storage.GetRoomBySlug(slug)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Room not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": 200, "room": room})
}

type joinRoomRequest struct {
	RoomID models.RoomID `json:"roomId" binding:"required"`
	UserID string        `json:"userId" binding:"required"`
	Role   string        `json:"role"`
	// Token is the invitation token being redeemed, when joining
	// through an invite link. Redemption is single-use.
	Token string `json:"token"`
}

// JoinRoom records a membership, optionally redeeming an invitation
// token.
func (h *Handler) JoinRoom(c *gin.Context) {
	var req joinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Room ID and User ID are required"})
		return
	}
	roomID := int64(req.RoomID)

	if req.Token != "" {
		invite, err := h.Auth.VerifyInviteToken(req.Token)
		if err != nil || invite.RoomID != roomID || invite.UserID != req.UserID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired invitation link"})
			return
		}
		first, err := h.Storage.ConsumeInviteToken(invite.ID, h.InviteTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem invitation"})
			return
		}
		if !first {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invitation link already used"})
			return
		}
	}

	member, err := h.Storage.IsMember(req.UserID, roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join room"})
		return
	}
	if member {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User is already a member of this room"})
		return
	}

	if _, err := h.Storage.GetRoomByID(roomID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": 400, "error": "Room not found"})
		return
	}
	user, err := h.Storage.GetUserByID(req.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": 400, "error": "User not found"})
		return
	}

	err = h.Storage.AddMember(&models.RoomMember{
		UserID: user.ID,
		RoomID: roomID,
		Role:   req.Role,
		Avatar: user.Avatar,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to join room"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": 200, "message": "Joined room successfully"})
}

type removeMemberRequest struct {
	RoomID models.RoomID `json:"roomId" binding:"required"`
}

// RemoveMember drops a user's membership in a room.
func (h *Handler) RemoveMember(c *gin.Context) {
	userID := c.Param("userId")
	var req removeMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID and Room ID are required"})
		return
	}

	if _, err := h.Storage.GetUserByID(userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err := h.Storage.RemoveMember(userID, int64(req.RoomID)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error while deleting user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": 200, "message": "User deleted successfully"})
}

type updateRoleRequest struct {
	RoomID models.RoomID `json:"roomId" binding:"required"`
	Role   string        `json:"role" binding:"required"`
}

// UpdateMemberRole changes a collaborator's role in a room.
func (h *Handler) UpdateMemberRole(c *gin.Context) {
	userID := c.Param("userId")
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": 400, "error": err.Error()})
		return
	}

	if _, err := h.Storage.GetUserByID(userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": 400, "error": "User not found"})
		return
	}
	if err := h.Storage.UpdateMemberRole(userID, int64(req.RoomID), req.Role); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": 400, "error": "Error while updating user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": 200, "message": "User updated successfully"})
}

// Collaborators lists every member of every room the caller
// administers.
func (h *Handler) Collaborators(c *gin.Context) {
	collaborators, err := h.Storage.ListCollaboratorsForAdmin(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": 400, "error": "Error while fetching collaborators"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": 200, "collaborators": collaborators})
}
