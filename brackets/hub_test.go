package brackets

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastToRoom(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	go hub.Run(ctx)

	groupA := NewClient(hub, nil, GroupRoom("A"))
	groupB := NewClient(hub, nil, GroupRoom("B"))
	require.True(t, hub.Join(groupA))
	require.True(t, hub.Join(groupB))
	require.Eventually(t, func() bool { return hub.RoomSize("group_A") == 1 && hub.RoomSize("group_B") == 1 },
		time.Second, 10*time.Millisecond)

	hub.BroadcastToRoom(GroupRoom("A"), WebSocketMessage{Type: MessageStandingsUpdated, Payload: []string{"X"}, RoomID: GroupRoom("A")})

	select {
	case raw := <-groupA.Send:
		var msg WebSocketMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, MessageStandingsUpdated, msg.Type)
		assert.Equal(t, "group_A", msg.RoomID)
	case <-time.After(time.Second):
		t.Fatal("client in room A got nothing")
	}
	assert.Empty(t, groupB.Send)

	hub.Leave(groupA)
	require.Eventually(t, func() bool { return hub.RoomSize("group_A") == 0 }, time.Second, 10*time.Millisecond)
	_, open := <-groupA.Send
	assert.False(t, open)

	cancel()
	require.Eventually(t, func() bool { return hub.RoomSize("group_B") == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_JoinAndLeaveAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	early := NewClient(hub, nil, StageRoom("playoffs"))
	require.True(t, hub.Join(early))
	cancel()
	<-stopped

	done := make(chan struct{})
	go func() {
		defer close(done)
		late := NewClient(hub, nil, StageRoom("playoffs"))
		assert.False(t, hub.Join(late))
		hub.Leave(late)
		_, open := <-late.Send
		assert.False(t, open)
		hub.Leave(early)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("join or leave blocked after the hub stopped")
	}
	_, open := <-early.Send
	assert.False(t, open)
	assert.Zero(t, hub.RoomSize("stage_playoffs"))
}

func TestRoomNames(t *testing.T) {
	assert.Equal(t, "group_A", GroupRoom("A"))
	assert.Equal(t, "stage_playoffs", StageRoom("playoffs"))
}
