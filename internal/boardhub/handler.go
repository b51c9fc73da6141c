package boardhub

import (
	"encoding/json"
	"log"

	"drawspace/backend/internal/models"
)

// EventStore persists drawing events. storage.Service satisfies it.
type EventStore interface {
	AppendEvent(roomID int64, userID, payload string) (*models.DrawEvent, error)
	PublishEvent(roomID int64, event *models.DrawEvent) error
}

// TokenVerifier re-checks credentials on join-room. auth.Service
// satisfies it.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// Handler is the per-message state machine of the relay. It is
// stateless across messages: all connection state lives in the
// registry. Each inbound frame is classified by its type discriminator
// and dispatched; unrecognized kinds are ignored so newer clients keep
// working against older servers.
type Handler struct {
	registry *Registry
	presence *Presence
	bcast    *Broadcaster
	store    EventStore
	verifier TokenVerifier
}

func NewHandler(registry *Registry, presence *Presence, bcast *Broadcaster, store EventStore, verifier TokenVerifier) *Handler {
	return &Handler{
		registry: registry,
		presence: presence,
		bcast:    bcast,
		store:    store,
		verifier: verifier,
	}
}

// HandleMessage processes one inbound frame to completion. It returns
// false when the connection must be closed (failed re-verification);
// protocol violations are ignored and keep the connection open.
func (h *Handler) HandleMessage(c *Conn, data []byte) bool {
	var env models.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Printf("boardhub: undecodable frame from user %s: %v", c.UserID, err)
		return true
	}

	switch env.Type {
	case models.KindJoinRoom:
		return h.handleJoin(c, data)
	case models.KindLeaveRoom:
		h.handleLeave(c, data)
	case models.KindChat:
		h.handleChat(c, data)
	case models.KindVideoCall:
		h.handleSignal(c, data)
	default:
		// Unknown kinds are forward-compatible noise, not errors.
	}
	return true
}

// HandleClose removes the connection from the registry and pushes a
// fresh presence snapshot to every room it had joined.
func (h *Handler) HandleClose(c *Conn) {
	for _, roomID := range h.registry.Remove(c) {
		h.broadcastPresence(roomID)
	}
}

func (h *Handler) handleJoin(c *Conn, data []byte) bool {
	var msg models.JoinRoomMessage
	if err := json.Unmarshal(data, &msg); err != nil || msg.RoomID == 0 {
		return true
	}
	// Same fail-closed rule as admission: a join with a bad credential
	// terminates the connection.
	if _, err := h.verifier.VerifyToken(msg.Token); err != nil {
		log.Printf("boardhub: join-room re-verification failed for user %s: %v", c.UserID, err)
		return false
	}
	h.registry.JoinRoom(c, int64(msg.RoomID))
	h.broadcastPresence(int64(msg.RoomID))
	return true
}

func (h *Handler) handleLeave(c *Conn, data []byte) {
	var msg models.LeaveRoomMessage
	if err := json.Unmarshal(data, &msg); err != nil || msg.RoomID == 0 {
		return
	}
	h.registry.LeaveRoom(c, int64(msg.RoomID))
	h.broadcastPresence(int64(msg.RoomID))
}

func (h *Handler) handleChat(c *Conn, data []byte) {
	var msg models.DrawMessage
	if err := json.Unmarshal(data, &msg); err != nil || msg.RoomID == 0 || msg.Message == "" {
		return
	}
	roomID := int64(msg.RoomID)

	// Persisted-before-visible: the append must succeed before anyone
	// sees the broadcast. A failed append drops the message with only a
	// server-side log; the connection stays open.
	event, err := h.store.AppendEvent(roomID, c.UserID, msg.Message)
	if err != nil {
		log.Printf("boardhub: dropping chat for room %d from user %s: %v", roomID, c.UserID, err)
		return
	}
	if err := h.store.PublishEvent(roomID, event); err != nil {
		log.Printf("boardhub: publish event %d to feed failed: %v", event.ID, err)
	}

	// Echo to the sender too: clients apply the edit on the broadcast
	// round-trip, not locally.
	h.bcast.ToRoom(roomID, models.ChatBroadcast{
		Type:    models.KindChat,
		RoomID:  roomID,
		Message: msg.Message,
	})
}

func (h *Handler) handleSignal(c *Conn, data []byte) {
	var msg models.SignalMessage
	if err := json.Unmarshal(data, &msg); err != nil ||
		msg.RoomID == 0 || msg.TargetUserID == "" || len(msg.CallData) == 0 {
		return
	}
	roomID := int64(msg.RoomID)

	delivered := h.bcast.ToUser(roomID, msg.TargetUserID, models.SignalForward{
		Type:       models.KindVideoCall,
		RoomID:     roomID,
		CallType:   msg.CallType,
		CallData:   msg.CallData,
		FromUserID: c.UserID,
	})
	if !delivered {
		h.bcast.ToConn(c, models.SignalError{
			Type:         models.KindVideoCallError,
			RoomID:       roomID,
			TargetUserID: msg.TargetUserID,
			Message:      "User is not available",
		})
	}
}

func (h *Handler) broadcastPresence(roomID int64) {
	h.bcast.ToRoom(roomID, models.RoomUsersMessage{
		Type:   models.KindRoomUsers,
		RoomID: roomID,
		Users:  h.presence.Resolve(roomID),
	})
}
