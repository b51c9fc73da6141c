package boardhub_test

import (
	"testing"

	"drawspace/backend/internal/boardhub"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_AdmitAndRemove(t *testing.T) {
	registry := boardhub.NewRegistry()

	connA := registry.Admit("user_A")
	connB := registry.Admit("user_B")
	assert.Equal(t, 2, registry.Len())

	registry.JoinRoom(connA, 3)
	registry.JoinRoom(connA, 5)
	rooms := registry.Remove(connA)
	assert.Equal(t, []int64{3, 5}, rooms)
	assert.Equal(t, 1, registry.Len())

	// Removing twice is harmless and reports no rooms.
	assert.Empty(t, registry.Remove(connA))
	assert.Empty(t, registry.Remove(connB))
	assert.Equal(t, 0, registry.Len())
}

func TestRegistry_JoinIsIdempotent(t *testing.T) {
	registry := boardhub.NewRegistry()
	conn := registry.Admit("user_A")

	registry.JoinRoom(conn, 42)
	registry.JoinRoom(conn, 42)

	assert.Equal(t, []int64{42}, registry.Rooms(conn))
	assert.Len(t, registry.ConnsInRoom(42), 1)
}

func TestRegistry_LeaveIsIdempotent(t *testing.T) {
	registry := boardhub.NewRegistry()
	conn := registry.Admit("user_A")

	// Leaving a room never joined is a no-op, not an error.
	registry.LeaveRoom(conn, 42)
	assert.Empty(t, registry.Rooms(conn))

	registry.JoinRoom(conn, 42)
	registry.LeaveRoom(conn, 42)
	registry.LeaveRoom(conn, 42)
	assert.Empty(t, registry.Rooms(conn))
	assert.Empty(t, registry.ConnsInRoom(42))
}

func TestRegistry_RoomIndexTracksMembership(t *testing.T) {
	registry := boardhub.NewRegistry()
	connA := registry.Admit("user_A")
	connB := registry.Admit("user_B")

	registry.JoinRoom(connA, 7)
	registry.JoinRoom(connB, 7)
	registry.JoinRoom(connB, 9)

	assert.Len(t, registry.ConnsInRoom(7), 2)
	assert.Len(t, registry.ConnsInRoom(9), 1)
	assert.Empty(t, registry.ConnsInRoom(11))

	registry.LeaveRoom(connB, 7)
	assert.Len(t, registry.ConnsInRoom(7), 1)
	assert.Equal(t, "user_A", registry.ConnsInRoom(7)[0].UserID)
}

func TestRegistry_UserIDsInRoomDeduplicates(t *testing.T) {
	registry := boardhub.NewRegistry()

	// Two tabs of the same user plus one other user.
	tab1 := registry.Admit("user_A")
	tab2 := registry.Admit("user_A")
	connB := registry.Admit("user_B")
	registry.JoinRoom(tab1, 7)
	registry.JoinRoom(tab2, 7)
	registry.JoinRoom(connB, 7)

	assert.Equal(t, []string{"user_A", "user_B"}, registry.UserIDsInRoom(7))
}

func TestRegistry_ConnsForUserScopedToRoom(t *testing.T) {
	registry := boardhub.NewRegistry()
	inRoom := registry.Admit("user_A")
	elsewhere := registry.Admit("user_A")
	registry.JoinRoom(inRoom, 9)
	registry.JoinRoom(elsewhere, 10)

	conns := registry.ConnsForUser(9, "user_A")
	assert.Len(t, conns, 1)
	assert.Same(t, inRoom, conns[0])
	assert.Empty(t, registry.ConnsForUser(9, "user_B"))
}
