package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Message kinds carried in the "type" field of every realtime frame.
const (
	KindJoinRoom       = "join-room"
	KindLeaveRoom      = "leave-room"
	KindChat           = "chat"
	KindVideoCall      = "video-call"
	KindRoomUsers      = "room-users"
	KindVideoCallError = "video-call-error"
)

// RoomID is a numeric room key that tolerates both JSON numbers and
// numeric strings on input. Browser clients historically sent either,
// so the decoder accepts both; outbound frames always carry a number.
type RoomID int64

func (r *RoomID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*r = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid room id %q", s)
	}
	*r = RoomID(n)
	return nil
}

// Envelope is the first-pass decode of an inbound frame: the type
// discriminator plus the raw bytes, re-decoded into the matching
// variant by the protocol handler.
type Envelope struct {
	Type string `json:"type"`
}

// JoinRoomMessage asks the relay to add the connection to a room. The
// token is re-verified; a failed re-verification closes the connection.
type JoinRoomMessage struct {
	RoomID RoomID `json:"roomId"`
	Token  string `json:"token"`
}

// LeaveRoomMessage removes the connection from a room. Leaving a room
// that was never joined is a no-op.
type LeaveRoomMessage struct {
	RoomID RoomID `json:"roomId"`
}

// DrawMessage carries one opaque drawing payload for a room.
type DrawMessage struct {
	RoomID  RoomID `json:"roomId"`
	Message string `json:"message"`
}

// SignalMessage is a peer-connection negotiation frame relayed blindly
// to a single target user. It is never persisted.
type SignalMessage struct {
	RoomID       RoomID          `json:"roomId"`
	TargetUserID string          `json:"targetUserId"`
	CallType     string          `json:"callType"` // offer, answer, ice-candidate, hang-up
	CallData     json.RawMessage `json:"callData"`
}

// RoomUser is one entry of a presence snapshot.
type RoomUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoomUsersMessage is the presence snapshot broadcast to a room on
// every join, leave, and disconnect.
type RoomUsersMessage struct {
	Type   string     `json:"type"`
	RoomID int64      `json:"roomId"`
	Users  []RoomUser `json:"users"`
}

// ChatBroadcast echoes a persisted drawing payload to every connection
// in the room, including the sender.
type ChatBroadcast struct {
	Type    string `json:"type"`
	RoomID  int64  `json:"roomId"`
	Message string `json:"message"`
}

// SignalForward is the outbound form of a SignalMessage with the
// sender's identity attached.
type SignalForward struct {
	Type       string          `json:"type"`
	RoomID     int64           `json:"roomId"`
	CallType   string          `json:"callType"`
	CallData   json.RawMessage `json:"callData"`
	FromUserID string          `json:"fromUserId"`
}

// SignalError tells the sender that the target of a signaling frame has
// no live connection in the room.
type SignalError struct {
	Type         string `json:"type"`
	RoomID       int64  `json:"roomId"`
	TargetUserID string `json:"targetUserId"`
	Message      string `json:"message"`
}
