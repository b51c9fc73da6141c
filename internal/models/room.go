package models

import (
	"time"

	"github.com/lib/pq"
)

// Room is one whiteboard: a named scope grouping participants and
// drawing history. The relay never creates or deletes rooms; it only
// reacts to join/leave declarations against existing ones.
type Room struct {
	// ID is the numeric room key referenced by drawing events and by
	// every realtime message.
	ID int64 `gorm:"primaryKey" json:"id"`
	// Slug is the unique human-readable room name.
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`
	// AdminID is the account that owns the room.
	AdminID string `gorm:"type:uuid;not null;index" json:"adminId"`
	// Tags are free-form labels used by the dashboard to filter boards.
	Tags      pq.StringArray `gorm:"type:text[]" json:"tags,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Collaborator is the flattened member+room view returned by the
// collaborators listing.
type Collaborator struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	RoomID   int64  `json:"roomId"`
	RoomName string `json:"roomName"`
	Role     string `json:"role"`
}

// RoomMember is a collaborator record: a user admitted to a room with
// a role. The admin is not listed here; ownership lives on Room.
type RoomMember struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	UserID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_room_member" json:"userId"`
	RoomID   int64     `gorm:"not null;uniqueIndex:idx_room_member" json:"roomId"`
	Role     string    `gorm:"not null" json:"role"`
	Avatar   string    `json:"avatar,omitempty"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}
