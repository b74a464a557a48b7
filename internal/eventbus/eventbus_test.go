package eventbus

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/LordIdra/Netheopoiesis/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func breedEvent(t *testing.T, source string) *Envelope {
	t.Helper()
	ev, err := NewEnvelope(source, BreedResolvedType, BreedResolved{
		First: "NPS_SPINDLE", Second: "NPS_BEADED", Result: "breed", Child: "NPS_GRAINY",
	})
	require.NoError(t, err)
	return ev
}

func TestNewEnvelope(t *testing.T) {
	ev := breedEvent(t, "test")
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, 1, ev.Version)
	assert.Equal(t, BreedResolvedType, ev.EventType)

	var br BreedResolved
	require.NoError(t, ev.Decode(&br))
	assert.Equal(t, "NPS_GRAINY", br.Child)

	ev.Payload = []byte("{")
	assert.Error(t, ev.Decode(&br))
}

func TestMemoryBus_DeliversFiltered(t *testing.T) {
	bus := NewMemoryBus(16)

	var mu sync.Mutex
	var got []string
	_, err := bus.Subscribe(context.Background(), Filter{Sources: []string{"api"}}, func(ctx context.Context, ev *Envelope) {
		mu.Lock()
		got = append(got, ev.Source)
		mu.Unlock()
	})
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), breedEvent(t, "api")))
	require.NoError(t, bus.Publish(context.Background(), breedEvent(t, "cli")))
	require.NoError(t, bus.Close())

	assert.Equal(t, []string{"api"}, got)
	stats := bus.Metrics()
	assert.Equal(t, uint64(2), stats.Published)
	assert.Equal(t, uint64(1), stats.Consumed)

	assert.ErrorIs(t, bus.Publish(context.Background(), breedEvent(t, "api")), ErrClosed)
	_, err = bus.Subscribe(context.Background(), Filter{}, func(context.Context, *Envelope) {})
	assert.ErrorIs(t, err, ErrClosed)
	assert.NoError(t, bus.Close())
}

func TestMemoryBus_Unsubscribe(t *testing.T) {
	bus := NewMemoryBus(4)
	calls := 0
	sub, err := bus.Subscribe(context.Background(), Filter{}, func(context.Context, *Envelope) { calls++ })
	require.NoError(t, err)
	sub.Unsubscribe()

	require.NoError(t, bus.Publish(context.Background(), breedEvent(t, "api")))
	require.NoError(t, bus.Close())
	assert.Zero(t, calls)
}

func TestMemoryBus_DropsLowPriorityWhenFull(t *testing.T) {
	mb := &memoryBus{
		subscribers: make(map[int]subscriber),
		buffer:      make(chan *Envelope, 1),
		done:        make(chan struct{}),
	}
	// dispatchLoop не запущен, буфер никто не читает
	require.NoError(t, mb.Publish(context.Background(), breedEvent(t, "a")))
	require.NoError(t, mb.Publish(context.Background(), breedEvent(t, "b")))

	high := breedEvent(t, "c")
	high.Priority = 9
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, mb.Publish(ctx, high), context.DeadlineExceeded)

	stats := mb.Metrics()
	assert.Equal(t, uint64(1), stats.Published)
	assert.Equal(t, uint64(1), stats.Dropped)
	assert.Equal(t, 1, stats.InFlight)
}

func TestLoggingListener(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriterLogger("eventbus", &buf)
	logger.SetLevels(logging.DEBUG, logging.TRACE)

	bus := NewMemoryBus(4)
	_, err := StartLoggingListener(bus, logger)
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), breedEvent(t, "api")))
	require.NoError(t, bus.Close())

	assert.Contains(t, buf.String(), "NPS_SPINDLE + NPS_BEADED → breed NPS_GRAINY")
}

func TestMetricsExporter(t *testing.T) {
	reg := prometheus.NewRegistry()
	bus := NewMemoryBus(4)
	me := NewMetricsExporter(bus, reg)
	me.interval = time.Millisecond
	me.Start()

	require.NoError(t, bus.Publish(context.Background(), breedEvent(t, "api")))
	require.NoError(t, bus.Close())
	me.Stop()

	assert.Equal(t, 1.0, testutil.ToFloat64(me.published))
	assert.Equal(t, 0.0, testutil.ToFloat64(me.dropped))
}

func TestSubjectPrefix(t *testing.T) {
	jb := &JetStreamBus{prefix: subjectPrefix("NETHEO_EVENTS")}
	assert.Equal(t, "netheo_events.BreedResolved", jb.subject(BreedResolvedType))
}
