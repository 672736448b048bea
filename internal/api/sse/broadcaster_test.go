package sse

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/services/game"
	"github.com/mcoot/gameportal/internal/testutil"
)

func TestBroadcaster_BroadcastGameEvent(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	t.Cleanup(manager.Close)
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	stream := NewStream()
	_, ok := manager.Subscribe("client-1", stream)
	require.True(t, ok)

	broadcaster.BroadcastGameEvent("client-1", game.Event{
		Type:     game.EventTick,
		Snapshot: game.Snapshot{GameID: model.GameTapCounter, State: game.StatePlaying},
	})

	msg := receive(t, stream)
	require.True(t, strings.HasPrefix(msg, "event: tick\ndata: "))

	var ev game.Event
	payload := strings.TrimSuffix(strings.TrimPrefix(msg, "event: tick\ndata: "), "\n\n")
	require.NoError(t, json.Unmarshal([]byte(payload), &ev))
	assert.Equal(t, model.GameTapCounter, ev.Snapshot.GameID)
	assert.Equal(t, game.StatePlaying, ev.Snapshot.State)
}

func TestBroadcaster_NoHubIsNoop(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	broadcaster.BroadcastGameEvent("nobody", game.Event{Type: game.EventReset})

	assert.Nil(t, manager.GetHub("nobody"))
}
