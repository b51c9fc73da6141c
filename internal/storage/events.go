package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"drawspace/backend/internal/models"

	"gorm.io/gorm"
)

// AppendEvent durably stores one drawing event for a room. The room
// must exist: RoomID is a foreign key and an insert against an unknown
// room fails, which the relay treats as "suppress the broadcast".
func (s *Service) AppendEvent(roomID int64, userID, payload string) (*models.DrawEvent, error) {
	if _, err := s.GetRoomByID(roomID); err != nil {
		return nil, fmt.Errorf("append event: room %d: %w", roomID, err)
	}
	event := models.DrawEvent{
		RoomID:  roomID,
		UserID:  userID,
		Message: payload,
	}
	if err := s.DB.Create(&event).Error; err != nil {
		return nil, fmt.Errorf("append event: %w", err)
	}
	return &event, nil
}

// GetRoomEvents returns the full drawing history of a room in storage
// order, used by late joiners to rehydrate the canvas.
func (s *Service) GetRoomEvents(roomID int64) ([]models.DrawEvent, error) {
	var events []models.DrawEvent
	err := s.DB.Where("room_id = ?", roomID).Order("created_at asc").Find(&events).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return events, nil
	}
	if err != nil {
		return nil, err
	}
	return events, nil
}

// DeleteEventsBefore drops history older than the cutoff for one room.
// Only the admin CLI calls this; the relay itself never deletes.
func (s *Service) DeleteEventsBefore(roomID int64, cutoff time.Time) (int64, error) {
	result := s.DB.Where("room_id = ? AND created_at < ?", roomID, cutoff).
		Delete(&models.DrawEvent{})
	return result.RowsAffected, result.Error
}

// PublishEvent pushes a persisted drawing event onto the room's Redis
// channel for external consumers. Delivery is fire-and-forget; the
// relay logs failures and moves on.
func (s *Service) PublishEvent(roomID int64, event *models.DrawEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	channel := fmt.Sprintf("room:%d:events", roomID)
	return s.Redis.Publish(s.Ctx, channel, payload).Err()
}

// ConsumeInviteToken marks an invitation token's jti as redeemed and
// reports whether this call was the first use.
func (s *Service) ConsumeInviteToken(jti string, ttl time.Duration) (bool, error) {
	return s.Redis.SetNX(s.Ctx, "invite:"+jti, "used", ttl).Result()
}
