package storage

import (
	"context"
	"errors"
	"time"

	"drawspace/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("storage: not found")

// Storage is everything the HTTP handlers and the relay need from the
// durable store. PostgreSQL (via GORM) owns all durable state; Redis
// carries only the fire-and-forget event feed and single-use invite
// marks.
type Storage interface {
	// Users
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetUsersByIDs(ids []string) ([]models.User, error)
	ListUsersExcept(userID string) ([]models.User, error)
	UpdateProfile(userID string, fields map[string]interface{}) (*models.User, error)
	UpdatePassword(userID, passwordHash string) error
	UpdateAvatar(userID, avatar string) (*models.User, error)

	// Rooms and membership
	CreateRoom(room *models.Room) error
	GetRoomByID(id int64) (*models.Room, error)
	GetRoomBySlug(slug string) (*models.Room, error)
	ListRoomsForUser(userID string) ([]models.Room, error)
	ListAdminRooms(userID string) ([]models.Room, error)
	DeleteRoom(roomID int64, adminID string) error
	AddMember(member *models.RoomMember) error
	RemoveMember(userID string, roomID int64) error
	IsMember(userID string, roomID int64) (bool, error)
	UpdateMemberRole(userID string, roomID int64, role string) error
	ListRoomMembers(roomID int64) ([]models.RoomMember, error)
	ListCollaboratorsForAdmin(adminID string) ([]models.Collaborator, error)

	// Drawing events
	AppendEvent(roomID int64, userID, payload string) (*models.DrawEvent, error)
	GetRoomEvents(roomID int64) ([]models.DrawEvent, error)
	DeleteEventsBefore(roomID int64, cutoff time.Time) (int64, error)

	// Redis
	PublishEvent(roomID int64, event *models.DrawEvent) error
	ConsumeInviteToken(jti string, ttl time.Duration) (bool, error)
}

// Service is the GORM + Redis implementation of Storage.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

func (s *Service) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUsersByIDs loads display metadata for a set of users in a single
// query. Unknown IDs are simply absent from the result; the caller
// decides how to degrade.
func (s *Service) GetUsersByIDs(ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []models.User
	if err := s.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) ListUsersExcept(userID string) ([]models.User, error) {
	var users []models.User
	if err := s.DB.Where("id <> ?", userID).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) UpdateProfile(userID string, fields map[string]interface{}) (*models.User, error) {
	if len(fields) > 0 {
		if err := s.DB.Model(&models.User{}).Where("id = ?", userID).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return s.GetUserByID(userID)
}

func (s *Service) UpdatePassword(userID, passwordHash string) error {
	return s.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("password", passwordHash).Error
}

func (s *Service) UpdateAvatar(userID, avatar string) (*models.User, error) {
	if err := s.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("avatar", avatar).Error; err != nil {
		return nil, err
	}
	return s.GetUserByID(userID)
}
