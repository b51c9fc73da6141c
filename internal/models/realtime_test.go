package models_test

import (
	"encoding/json"
	"testing"

	"drawspace/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomID_AcceptsNumberAndString(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want models.RoomID
	}{
		{"number", `{"roomId":42}`, 42},
		{"string", `{"roomId":"42"}`, 42},
		{"null", `{"roomId":null}`, 0},
		{"absent", `{}`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var msg models.LeaveRoomMessage
			require.NoError(t, json.Unmarshal([]byte(tc.in), &msg))
			assert.Equal(t, tc.want, msg.RoomID)
		})
	}

	var msg models.LeaveRoomMessage
	assert.Error(t, json.Unmarshal([]byte(`{"roomId":"whiteboard"}`), &msg))
}

func TestRoomID_MarshalsAsNumber(t *testing.T) {
	data, err := json.Marshal(models.RoomUsersMessage{
		Type:   models.KindRoomUsers,
		RoomID: 7,
		Users:  []models.RoomUser{{ID: "u1", Name: "Ada"}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"room-users","roomId":7,"users":[{"id":"u1","name":"Ada"}]}`, string(data))
}

func TestSignalMessage_CarriesOpaquePayload(t *testing.T) {
	in := `{"type":"video-call","roomId":"9","targetUserId":"u2","callType":"ice-candidate","callData":{"candidate":"a=1"}}`
	var msg models.SignalMessage
	require.NoError(t, json.Unmarshal([]byte(in), &msg))

	assert.Equal(t, models.RoomID(9), msg.RoomID)
	assert.Equal(t, "u2", msg.TargetUserID)
	// The negotiation payload passes through byte-for-byte.
	assert.JSONEq(t, `{"candidate":"a=1"}`, string(msg.CallData))
}
