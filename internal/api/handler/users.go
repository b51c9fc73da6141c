package handler

import (
	"net/http"

	"drawspace/backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// ListUsers returns everyone except the caller, for the invite picker.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Storage.ListUsersExcept(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error while getting users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": 200, "users": users})
}

// GetProfile returns the caller's account.
func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.Storage.GetUserByID(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": 200, "user": user})
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Bio   string `json:"bio"`
}

// UpdateProfile changes name, email, or bio; only provided fields are
// touched.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := currentUserID(c)

	if req.Email != "" {
		if existing, err := h.Storage.GetUserByEmail(req.Email); err == nil && existing.ID != userID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already in use"})
			return
		}
	}

	fields := map[string]interface{}{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Email != "" {
		fields["email"] = req.Email
	}
	if req.Bio != "" {
		fields["bio"] = req.Bio
	}

	user, err := h.Storage.UpdateProfile(userID, fields)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": 200, "user": user})
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UpdatePassword rotates the caller's password after checking the
// current one.
func (h *Handler) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current password and new password are required"})
		return
	}

	user, err := h.Storage.GetUserByID(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}
	if err := h.Storage.UpdatePassword(user.ID, hash); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": 200, "message": "Password updated successfully"})
}

type updateAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// UpdateAvatar stores a new avatar URL.
func (h *Handler) UpdateAvatar(c *gin.Context) {
	var req updateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar URL is required"})
		return
	}
	user, err := h.Storage.UpdateAvatar(currentUserID(c), req.Avatar)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update avatar"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": 200, "user": gin.H{"id": user.ID, "avatar": user.Avatar}})
}
