package boardhub_test

import (
	"errors"
	"testing"

	"drawspace/backend/internal/boardhub"
	"drawspace/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestPresence_DeduplicatesAndOrders(t *testing.T) {
	registry := boardhub.NewRegistry()
	profiles := new(MockProfileSource)
	presence := boardhub.NewPresence(registry, profiles)

	// user_B holds two connections in the room; it must count once.
	registry.JoinRoom(registry.Admit("user_B"), 7)
	registry.JoinRoom(registry.Admit("user_B"), 7)
	registry.JoinRoom(registry.Admit("user_A"), 7)

	profiles.On("GetUsersByIDs", []string{"user_A", "user_B"}).Return([]models.User{
		{ID: "user_B", Name: "Bea"},
		{ID: "user_A", Name: "Ada"},
	}, nil)

	users := presence.Resolve(7)
	assert.Equal(t, []models.RoomUser{
		{ID: "user_A", Name: "Ada"},
		{ID: "user_B", Name: "Bea"},
	}, users)
}

func TestPresence_EmptyRoom(t *testing.T) {
	registry := boardhub.NewRegistry()
	profiles := new(MockProfileSource)
	presence := boardhub.NewPresence(registry, profiles)

	assert.Empty(t, presence.Resolve(404))
	profiles.AssertNotCalled(t, "GetUsersByIDs")
}

func TestPresence_LookupFailureFallsBackToPlaceholder(t *testing.T) {
	registry := boardhub.NewRegistry()
	profiles := new(MockProfileSource)
	presence := boardhub.NewPresence(registry, profiles)

	registry.JoinRoom(registry.Admit("user_A"), 7)
	profiles.On("GetUsersByIDs", []string{"user_A"}).Return(nil, errors.New("db down"))

	users := presence.Resolve(7)
	assert.Equal(t, []models.RoomUser{{ID: "user_A", Name: "Unknown"}}, users)
}

func TestPresence_PartialLookupDegradesPerEntry(t *testing.T) {
	registry := boardhub.NewRegistry()
	profiles := new(MockProfileSource)
	presence := boardhub.NewPresence(registry, profiles)

	registry.JoinRoom(registry.Admit("user_A"), 7)
	registry.JoinRoom(registry.Admit("user_B"), 7)

	// Only user_A resolves; user_B gets a placeholder instead of
	// aborting the snapshot.
	profiles.On("GetUsersByIDs", []string{"user_A", "user_B"}).Return([]models.User{
		{ID: "user_A", Name: "Ada"},
	}, nil)

	users := presence.Resolve(7)
	assert.Equal(t, []models.RoomUser{
		{ID: "user_A", Name: "Ada"},
		{ID: "user_B", Name: "Unknown"},
	}, users)
}
