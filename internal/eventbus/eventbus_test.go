package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	env, err := NewEnvelope("main", "ElementInserted", map[string]int{"x": 3})
	require.NoError(t, err)

	_, err = uuid.Parse(env.ID)
	assert.NoError(t, err)
	assert.Equal(t, "main", env.Source)
	assert.Equal(t, PayloadVersion, env.Version)
	assert.Equal(t, time.UTC, env.Timestamp.Location())

	var payload map[string]int
	require.NoError(t, env.Decode(&payload))
	assert.Equal(t, 3, payload["x"])

	_, err = NewEnvelope("main", "Broken", make(chan int))
	assert.Error(t, err)
}

func TestMemoryBus_DeliversInOrder(t *testing.T) {
	bus := NewMemoryBus(16)
	defer bus.Close()

	got := make(chan string, 8)
	_, err := bus.Subscribe(context.Background(), Filter{Types: []string{"ElementInserted"}}, func(ctx context.Context, ev *Envelope) {
		got <- ev.ID
	})
	require.NoError(t, err)

	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		env, err := NewEnvelope("main", "ElementInserted", i)
		require.NoError(t, err)
		ids = append(ids, env.ID)
		require.NoError(t, bus.Publish(context.Background(), env))
	}
	other, _ := NewEnvelope("main", "MapResized", nil)
	require.NoError(t, bus.Publish(context.Background(), other))

	for _, want := range ids {
		select {
		case id := <-got:
			assert.Equal(t, want, id)
		case <-time.After(time.Second):
			t.Fatal("событие не доставлено")
		}
	}

	assert.Eventually(t, func() bool {
		return bus.Metrics().Consumed == 3
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, uint64(4), bus.Metrics().Published)
}

func TestMemoryBus_Unsubscribe(t *testing.T) {
	bus := NewMemoryBus(4)
	defer bus.Close()

	calls := make(chan struct{}, 4)
	sub, err := bus.Subscribe(context.Background(), Filter{}, func(ctx context.Context, ev *Envelope) {
		calls <- struct{}{}
	})
	require.NoError(t, err)
	sub.Unsubscribe()

	env, _ := NewEnvelope("main", "ElementRemoved", nil)
	require.NoError(t, bus.Publish(context.Background(), env))

	select {
	case <-calls:
		t.Fatal("отписанный обработчик вызван")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryBus_Closed(t *testing.T) {
	bus := NewMemoryBus(1)
	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())

	env, _ := NewEnvelope("main", "ElementRemoved", nil)
	assert.ErrorIs(t, bus.Publish(context.Background(), env), ErrBusClosed)
}

func TestMatchFilter(t *testing.T) {
	ev := &Envelope{EventType: "MapResized", Source: "main"}

	assert.True(t, matchFilter(ev, Filter{}))
	assert.True(t, matchFilter(ev, Filter{Types: []string{"ElementInserted", "MapResized"}}))
	assert.False(t, matchFilter(ev, Filter{Sources: []string{"backup"}}))
}

func TestSubjects(t *testing.T) {
	assert.Equal(t, "park.MapResized", Subject("MapResized"))
	assert.Equal(t, "MapResized", EventTypeFromSubject("park.MapResized"))
}

// stubBus отдаёт заранее заданную статистику
type stubBus struct {
	EventBus
	stats Stats
}

func (s *stubBus) Metrics() Stats { return s.stats }

func TestMetricsExporter_Collect(t *testing.T) {
	bus := &stubBus{stats: Stats{Published: 5, Consumed: 3, Dropped: 1, InFlight: 2}}
	me := NewMetricsExporter(bus, prometheus.NewRegistry())

	me.collect()
	assert.Equal(t, 5.0, testutil.ToFloat64(me.published))
	assert.Equal(t, 2.0, testutil.ToFloat64(me.inflight))

	bus.stats = Stats{Published: 8, Consumed: 3, Dropped: 1}
	me.collect()
	assert.Equal(t, 8.0, testutil.ToFloat64(me.published))
	assert.Equal(t, 3.0, testutil.ToFloat64(me.consumed))
	assert.Equal(t, 1.0, testutil.ToFloat64(me.dropped))
	assert.Zero(t, testutil.ToFloat64(me.inflight))
}

func TestGlobalBus(t *testing.T) {
	Init(nil)
	env, err := NewEnvelope("main", "MapSaved", nil)
	require.NoError(t, err)
	assert.NoError(t, Publish(context.Background(), env), "без шины событие отбрасывается")

	bus := NewMemoryBus(4)
	defer bus.Close()
	Init(bus)
	defer Init(nil)
	assert.Same(t, bus, Global())

	got := make(chan string, 1)
	_, err = bus.Subscribe(context.Background(), Filter{}, func(_ context.Context, ev *Envelope) {
		got <- ev.EventType
	})
	require.NoError(t, err)
	require.NoError(t, Publish(context.Background(), env))

	select {
	case typ := <-got:
		assert.Equal(t, "MapSaved", typ)
	case <-time.After(time.Second):
		t.Fatal("событие не доставлено")
	}
}
