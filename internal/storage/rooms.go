package storage

import (
	"errors"

	"drawspace/backend/internal/models"

	"gorm.io/gorm"
)

func (s *Service) CreateRoom(room *models.Room) error {
	return s.DB.Create(room).Error
}

func (s *Service) GetRoomByID(id int64) (*models.Room, error) {
	var room models.Room
	err := s.DB.Where("id = ?", id).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Service) GetRoomBySlug(slug string) (*models.Room, error) {
	var room models.Room
	err := s.DB.Where("slug = ?", slug).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ListRoomsForUser returns every room the user administers or
// collaborates on.
func (s *Service) ListRoomsForUser(userID string) ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.
		Distinct("rooms.*").
		Joins("LEFT JOIN room_members ON room_members.room_id = rooms.id").
		Where("rooms.admin_id = ? OR room_members.user_id = ?", userID, userID).
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *Service) ListAdminRooms(userID string) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Where("admin_id = ?", userID).Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// DeleteRoom removes a room and its memberships. Only the admin may
// delete; deleting somebody else's room reports ErrNotFound.
func (s *Service) DeleteRoom(roomID int64, adminID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND admin_id = ?", roomID, adminID).Delete(&models.Room{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("room_id = ?", roomID).Delete(&models.RoomMember{}).Error
	})
}

func (s *Service) AddMember(member *models.RoomMember) error {
	return s.DB.Create(member).Error
}

func (s *Service) RemoveMember(userID string, roomID int64) error {
	return s.DB.Where("user_id = ? AND room_id = ?", userID, roomID).
		Delete(&models.RoomMember{}).Error
}

func (s *Service) IsMember(userID string, roomID int64) (bool, error) {
	var count int64
	err := s.DB.Model(&models.RoomMember{}).
		Where("user_id = ? AND room_id = ?", userID, roomID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Service) UpdateMemberRole(userID string, roomID int64, role string) error {
	result := s.DB.Model(&models.RoomMember{}).
		Where("user_id = ? AND room_id = ?", userID, roomID).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) ListRoomMembers(roomID int64) ([]models.RoomMember, error) {
	var members []models.RoomMember
	if err := s.DB.Where("room_id = ?", roomID).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListCollaboratorsForAdmin flattens all member records of every room
// the given user administers.
func (s *Service) ListCollaboratorsForAdmin(adminID string) ([]models.Collaborator, error) {
	var collaborators []models.Collaborator
	err := s.DB.Model(&models.RoomMember{}).
		Select("room_members.user_id, users.name, users.email, rooms.id AS room_id, rooms.slug AS room_name, room_members.role").
		Joins("JOIN rooms ON rooms.id = room_members.room_id").
		Joins("JOIN users ON users.id = room_members.user_id").
		Where("rooms.admin_id = ?", adminID).
		Scan(&collaborators).Error
	if err != nil {
		return nil, err
	}
	return collaborators, nil
}
