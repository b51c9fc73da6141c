package models_test

import (
	"testing"

	"drawspace/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestUserBeforeCreate_GeneratesUUID verifies that the BeforeCreate hook generates a valid UUID.
func TestUserBeforeCreate_GeneratesUUID(t *testing.T) {
	user := &models.User{Email: "ada@example.com", Name: "Ada"}
	assert.Empty(t, user.ID, "User ID should be empty before BeforeCreate")

	err := user.BeforeCreate(nil) // nil *gorm.DB is acceptable for this hook
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)

	parsed, parseErr := uuid.Parse(user.ID)
	assert.NoError(t, parseErr, "User ID must be a valid UUID string")
	assert.NotEqual(t, uuid.Nil, parsed)
}

// TestUserBeforeCreate_PreservesExistingID verifies that the hook doesn't overwrite an existing ID.
func TestUserBeforeCreate_PreservesExistingID(t *testing.T) {
	existingID := uuid.New().String()
	user := &models.User{ID: existingID, Email: "bea@example.com", Name: "Bea"}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.Equal(t, existingID, user.ID)
}
