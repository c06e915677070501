package world

import (
	"context"
	"testing"
	"time"

	"github.com/annel0/park-engine/internal/eventbus"
	"github.com/annel0/park-engine/internal/tile"
	"github.com/annel0/park-engine/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusListener_PublishesChanges(t *testing.T) {
	bus := eventbus.NewMemoryBus(8)
	defer bus.Close()

	received := make(chan *eventbus.Envelope, 4)
	_, err := bus.Subscribe(context.Background(), eventbus.Filter{Sources: []string{"test-park"}}, func(ctx context.Context, ev *eventbus.Envelope) {
		received <- ev
	})
	require.NoError(t, err)

	m := newTestMap(t, 3, 3)
	m.SetListener(NewEventBusListener(bus, "test-park"))

	_, err = m.InsertElement(vec.Vec2{X: 2, Y: 1}, tile.TypeWall, 2, 6, 0b0001)
	require.NoError(t, err)
	require.NoError(t, m.ChangeSize(vec.Vec2{X: 4, Y: 4}, nil, nil))

	var envs []*eventbus.Envelope
	for len(envs) < 2 {
		select {
		case ev := <-received:
			envs = append(envs, ev)
		case <-time.After(time.Second):
			t.Fatalf("получено %d событий из 2", len(envs))
		}
	}

	assert.Equal(t, "ElementInserted", envs[0].EventType)
	var payload changePayload
	require.NoError(t, envs[0].Decode(&payload))
	assert.Equal(t, changePayload{X: 2, Y: 1, Index: 1, Element: "wall"}, payload)

	assert.Equal(t, "MapResized", envs[1].EventType)
	assert.Equal(t, 7, envs[1].Priority)
	var resized changePayload
	require.NoError(t, envs[1].Decode(&resized))
	assert.Equal(t, changePayload{X: 4, Y: 4}, resized)
}

func TestChangeKind_String(t *testing.T) {
	assert.Equal(t, "ElementRemoved", ChangeRemoved.String())
	assert.Equal(t, "ElementUpdated", ChangeUpdated.String())
	assert.Equal(t, "Unknown", ChangeKind(99).String())
}
