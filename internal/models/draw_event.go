package models

import "time"

// DrawEvent is one durably stored whiteboard edit. Rows are append-only:
// the relay writes each accepted "chat" frame exactly once and never
// updates or deletes it. Message is an opaque serialized shape
// descriptor; the relay does not look inside it.
type DrawEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    int64     `gorm:"not null;index:idx_room_event" json:"roomId"`
	UserID    string    `gorm:"type:uuid;not null;index:idx_room_event" json:"userId"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
