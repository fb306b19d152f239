package core

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atm-service/app/src/domain"
)

type stubLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *stubLogger) Printf(_ context.Context, format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, fmt.Sprintf(format, v...))
}

func (l *stubLogger) Println(_ context.Context, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, fmt.Sprintln(v...))
}

func (l *stubLogger) Warnf(_ context.Context, format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, "warn: "+fmt.Sprintf(format, v...))
}

func (l *stubLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}

func TestNewAircraftAppliesDefaults(t *testing.T) {
	logger := &stubLogger{}
	a := NewAircraft(AircraftConfig{}, logger)

	assert.Equal(t, 1, a.cfg.ID)
	assert.Equal(t, 120*time.Millisecond, a.cfg.MinInterval)
	assert.Equal(t, 120*time.Millisecond, a.cfg.MaxInterval)
	assert.NotNil(t, a.cfg.RandSource)
	assert.NotNil(t, a.rnd)
	assert.Equal(t, logger, a.logger)
}

func TestNewAircraftUsesProvidedConfig(t *testing.T) {
	source := rand.NewSource(1)
	cfg := AircraftConfig{
		ID:          7,
		MinInterval: 5 * time.Millisecond,
		MaxInterval: 9 * time.Millisecond,
		RandSource:  source,
	}

	a := NewAircraft(cfg, &stubLogger{})

	assert.Equal(t, 7, a.ID())
	assert.Equal(t, cfg.MinInterval, a.cfg.MinInterval)
	assert.Equal(t, cfg.MaxInterval, a.cfg.MaxInterval)
	assert.Equal(t, source, a.cfg.RandSource)
}

func TestAircraftRunEmitsSentinelLast(t *testing.T) {
	a := NewAircraft(AircraftConfig{
		ID:          3,
		MinInterval: time.Millisecond,
		MaxInterval: time.Millisecond,
		RandSource:  rand.NewSource(42),
	}, &stubLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan domain.Message, 256)
	done := make(chan struct{})

	go func() {
		a.Run(ctx, out)
		close(done)
	}()

	// Let a few ticks through before asserting the stop signal.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("aircraft did not exit after cancellation")
	}

	var msgs []domain.Message
	for len(out) > 0 {
		msgs = append(msgs, <-out)
	}

	require.NotEmpty(t, msgs)

	sentinels := 0
	for i, msg := range msgs {
		assert.Equal(t, 3, msg.AircraftID)
		if msg.IsSignOff() {
			sentinels++
			assert.Equal(t, len(msgs)-1, i, "sentinel must be the last emission")
			assert.Zero(t, msg.Latitude)
			assert.Zero(t, msg.AltitudeFt)
			assert.Zero(t, msg.SpeedKt)
		} else {
			assert.True(t, Validate(msg), "random walk must stay inside validation bounds")
		}
	}
	assert.Equal(t, 1, sentinels, "exactly one sentinel per producer")
}

func TestAircraftRunPreservesEmissionOrder(t *testing.T) {
	a := NewAircraft(AircraftConfig{
		ID:          1,
		MinInterval: time.Millisecond,
		MaxInterval: time.Millisecond,
		RandSource:  rand.NewSource(7),
	}, &stubLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan domain.Message, 256)
	done := make(chan struct{})

	go func() {
		a.Run(ctx, out)
		close(done)
	}()

	time.Sleep(15 * time.Millisecond)
	cancel()
	<-done

	var prev time.Time
	for len(out) > 0 {
		msg := <-out
		assert.False(t, msg.Timestamp.Before(prev), "per-producer order must be non-decreasing")
		prev = msg.Timestamp
	}
}

func TestAircraftBlocksOnFullChannel(t *testing.T) {
	a := NewAircraft(AircraftConfig{
		ID:          2,
		MinInterval: time.Millisecond,
		MaxInterval: time.Millisecond,
		RandSource:  rand.NewSource(11),
	}, &stubLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan domain.Message, 1)
	done := make(chan struct{})

	go func() {
		a.Run(ctx, out)
		close(done)
	}()

	// With nobody draining, the producer fills the single slot and then
	// suspends on the next send instead of dropping or exiting.
	time.Sleep(30 * time.Millisecond)
	assert.Len(t, out, 1, "channel must never exceed its capacity")

	select {
	case <-done:
		t.Fatal("producer exited while blocked on a full channel")
	default:
	}

	cancel()

	// Drain until the sentinel arrives; the blocked send and the final
	// sentinel both complete once there is room.
	deadline := time.After(time.Second)
	for {
		select {
		case msg := <-out:
			if msg.IsSignOff() {
				select {
				case <-done:
				case <-deadline:
					t.Fatal("producer did not exit after sentinel")
				}
				return
			}
		case <-deadline:
			t.Fatal("sentinel never arrived")
		}
	}
}

func TestAircraftLogWithNilLogger(t *testing.T) {
	a := &Aircraft{}
	assert.NotPanics(t, func() {
		a.log(context.Background(), "ignored")
	})
}
