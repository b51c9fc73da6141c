package boardhub_test

import (
	"encoding/json"
	"errors"
	"testing"

	"drawspace/backend/internal/boardhub"
	"drawspace/backend/internal/models"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEventStore is a testify double for the boardhub.EventStore
// interface.
type MockEventStore struct {
	mock.Mock
}

func (m *MockEventStore) AppendEvent(roomID int64, userID, payload string) (*models.DrawEvent, error) {
	args := m.Called(roomID, userID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DrawEvent), args.Error(1)
}

func (m *MockEventStore) PublishEvent(roomID int64, event *models.DrawEvent) error {
	args := m.Called(roomID, event)
	return args.Error(0)
}

// MockProfileSource is a testify double for boardhub.ProfileSource.
type MockProfileSource struct {
	mock.Mock
}

func (m *MockProfileSource) GetUsersByIDs(ids []string) ([]models.User, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// stubVerifier accepts the fixed token "valid-token" and rejects
// everything else.
type stubVerifier struct{}

func (stubVerifier) VerifyToken(token string) (string, error) {
	if token == "valid-token" {
		return "verified-user", nil
	}
	return "", errors.New("invalid token")
}

// relayFixture wires a full relay around mocks.
type relayFixture struct {
	registry *boardhub.Registry
	handler  *boardhub.Handler
	store    *MockEventStore
	profiles *MockProfileSource
}

func newRelayFixture() *relayFixture {
	registry := boardhub.NewRegistry()
	store := new(MockEventStore)
	profiles := new(MockProfileSource)
	presence := boardhub.NewPresence(registry, profiles)
	bcast := boardhub.NewBroadcaster(registry)
	return &relayFixture{
		registry: registry,
		handler:  boardhub.NewHandler(registry, presence, bcast, store, stubVerifier{}),
		store:    store,
		profiles: profiles,
	}
}

// join admits nothing by itself; it pushes a join-room frame through
// the protocol handler the way the read pump would.
func (f *relayFixture) join(t *testing.T, c *boardhub.Conn, roomID int64) {
	t.Helper()
	frame := []byte(`{"type":"join-room","roomId":` + jsonNumber(roomID) + `,"token":"valid-token"}`)
	require.True(t, f.handler.HandleMessage(c, frame))
}

func jsonNumber(n int64) string {
	data, _ := json.Marshal(n)
	return string(data)
}

// drainFrames empties a connection's outbound channel and decodes each
// frame into a generic map.
func drainFrames(t *testing.T, c *boardhub.Conn) []map[string]interface{} {
	t.Helper()
	var frames []map[string]interface{}
	for {
		select {
		case data := <-c.Outbound():
			var frame map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &frame))
			frames = append(frames, frame)
		default:
			return frames
		}
	}
}

// framesOfType filters drained frames by their type discriminator.
func framesOfType(frames []map[string]interface{}, kind string) []map[string]interface{} {
	var out []map[string]interface{}
	for _, f := range frames {
		if f["type"] == kind {
			out = append(out, f)
		}
	}
	return out
}
