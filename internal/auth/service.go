package auth

import (
	"errors"
	"fmt"
	"time"

	"drawspace/backend/internal/config"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidToken is returned for any credential that fails
// verification: malformed, expired, unsigned, or carrying no identity.
var ErrInvalidToken = errors.New("auth: invalid token")

// Invite is the decoded content of an invitation token.
type Invite struct {
	// ID is the token's unique jti claim, used for single-use tracking.
	ID     string
	UserID string
	RoomID int64
	Role   string
}

// Service issues and verifies HS256 session and invitation tokens and
// wraps password hashing. Verification fails closed: anything that is
// not a valid, unexpired token signed with our key yields
// ErrInvalidToken, never a partial identity.
type Service struct {
	secret          []byte
	expiresIn       time.Duration
	inviteExpiresIn time.Duration
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		secret:          cfg.JWT.Secret,
		expiresIn:       cfg.JWT.ExpiresIn,
		inviteExpiresIn: cfg.JWT.InviteExpiresIn,
	}
}

// GenerateToken signs a session token for the given user.
func (s *Service) GenerateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(s.expiresIn).Unix(),
		"iat":     time.Now().Unix(),
		"iss":     "drawspace",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyToken validates a session token and returns the user ID it
// identifies.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", err
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}

// GenerateInviteToken signs an invitation for userID to join roomID
// with the given role. The token carries a jti so a redeemed invite can
// be marked used.
func (s *Service) GenerateInviteToken(userID string, roomID int64, role string) (string, error) {
	claims := jwt.MapClaims{
		"jti":     uuid.New().String(),
		"user_id": userID,
		"room_id": roomID,
		"role":    role,
		"exp":     time.Now().Add(s.inviteExpiresIn).Unix(),
		"iat":     time.Now().Unix(),
		"iss":     "drawspace",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyInviteToken validates an invitation token and returns its
// decoded claims.
func (s *Service) VerifyInviteToken(tokenString string) (*Invite, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}

	jti, _ := claims["jti"].(string)
	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	roomID, ok := claims["room_id"].(float64)
	if jti == "" || userID == "" || !ok {
		return nil, ErrInvalidToken
	}

	return &Invite{
		ID:     jti,
		UserID: userID,
		RoomID: int64(roomID),
		Role:   role,
	}, nil
}

func (s *Service) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
