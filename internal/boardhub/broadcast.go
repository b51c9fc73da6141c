package boardhub

import (
	"encoding/json"
	"log"
)

// Broadcaster fans messages out to subsets of live connections.
// Delivery is fire-and-forget: a send failure marks that one recipient
// as effectively dead and is logged and skipped, never propagated. The
// dead connection is left for the transport-close handler to reap, so
// a broadcast cannot race an in-flight close.
type Broadcaster struct {
	registry *Registry
}

func NewBroadcaster(registry *Registry) *Broadcaster {
	return &Broadcaster{registry: registry}
}

// ToRoom delivers the message to every live connection currently in
// the room.
func (b *Broadcaster) ToRoom(roomID int64, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("boardhub: marshal broadcast for room %d: %v", roomID, err)
		return
	}
	for _, c := range b.registry.ConnsInRoom(roomID) {
		if err := c.trySend(data); err != nil {
			log.Printf("boardhub: dropping frame for user %s in room %d: %v", c.UserID, roomID, err)
		}
	}
}

// ToUser delivers the message to every connection owned by userID that
// is in the room, and reports whether at least one delivery was
// attempted. False means the target is not reachable; the caller
// decides how to tell the sender.
func (b *Broadcaster) ToUser(roomID int64, userID string, message interface{}) bool {
	conns := b.registry.ConnsForUser(roomID, userID)
	if len(conns) == 0 {
		return false
	}
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("boardhub: marshal message for user %s: %v", userID, err)
		return false
	}
	for _, c := range conns {
		if err := c.trySend(data); err != nil {
			log.Printf("boardhub: dropping frame for user %s in room %d: %v", userID, roomID, err)
		}
	}
	return true
}

// ToConn delivers a message to a single connection, used for sender-
// only error notices.
func (b *Broadcaster) ToConn(c *Conn, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("boardhub: marshal message for user %s: %v", c.UserID, err)
		return
	}
	if err := c.trySend(data); err != nil {
		log.Printf("boardhub: dropping frame for user %s: %v", c.UserID, err)
	}
}
