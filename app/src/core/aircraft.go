package core

import (
	"context"
	"math"
	"math/rand"
	"time"

	"atm-service/app/src/domain"
	"atm-service/app/src/infra"
)

// warnProbability is the chance a tick reports WARN instead of OK,
// mimicking minor in-flight deviations.
const warnProbability = 0.02

type AircraftConfig struct {
	ID          int
	MinInterval time.Duration
	MaxInterval time.Duration
	RandSource  rand.Source
}

// Aircraft is a single telemetry producer. It owns a private flight
// state and shares nothing with other tasks but the outbound channel.
type Aircraft struct {
	cfg    AircraftConfig
	logger Logger
	rnd    *rand.Rand
}

func NewAircraft(cfg AircraftConfig, logger Logger) *Aircraft {
	if cfg.ID <= 0 {
		cfg.ID = 1
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = 120 * time.Millisecond
	}
	if cfg.MaxInterval < cfg.MinInterval {
		cfg.MaxInterval = cfg.MinInterval
	}

	source := cfg.RandSource
	if source == nil {
		source = rand.NewSource(int64(cfg.ID) * 7331)
	}
	cfg.RandSource = source

	return &Aircraft{cfg: cfg, logger: logger, rnd: rand.New(source)}
}

// ID returns the stable producer identity.
func (a *Aircraft) ID() int {
	return a.cfg.ID
}

// Run emits telemetry until ctx is cancelled, then pushes exactly one
// TERMINATED sentinel and returns. Sends block while the channel is
// full: backpressure suspends this goroutine, messages are never
// dropped.
func (a *Aircraft) Run(ctx context.Context, out chan<- domain.Message) {
	infra.AircraftStarted()
	defer infra.AircraftFinished()

	state := a.initialState()

	for ctx.Err() == nil {
		state.advance(a.rnd)
		msg := a.report(state)

		// The send deliberately ignores cancellation: the tower keeps
		// draining until every sentinel has arrived, so a blocked send
		// always completes.
		out <- msg
		infra.IncMessagesProduced()

		if !a.wait(ctx) {
			break
		}
	}

	out <- domain.NewSignOff(a.cfg.ID)
	a.log(ctx, "aircraft %d: signed off", a.cfg.ID)
}

// flightState is the producer-private trajectory. Created at task
// entry, mutated every tick, discarded on exit.
type flightState struct {
	lat float64
	lon float64
	alt float64
	spd float64
	hdg float64
}

func (a *Aircraft) initialState() flightState {
	return flightState{
		lat: uniform(a.rnd, -60, 60),
		lon: uniform(a.rnd, -120, 120),
		alt: uniform(a.rnd, 10000, 39000),
		spd: uniform(a.rnd, 250, 480),
		hdg: uniform(a.rnd, 0, 360),
	}
}

// advance applies a small random walk: position drifts, altitude and
// speed are clamped to the validator bounds, heading wraps mod 360.
func (s *flightState) advance(rnd *rand.Rand) {
	s.lat += uniform(rnd, -0.05, 0.05)
	s.lon += uniform(rnd, -0.05, 0.05)
	s.alt = clamp(s.alt+uniform(rnd, -400, 400), MinAltitudeFt, MaxAltitudeFt)
	s.spd = clamp(s.spd+uniform(rnd, -10, 10), MinSpeedKt, MaxSpeedKt)
	s.hdg = math.Mod(s.hdg+uniform(rnd, -5, 5)+360, 360)
}

func (a *Aircraft) report(s flightState) domain.Message {
	status := domain.StatusOK
	if a.rnd.Float64() < warnProbability {
		status = domain.StatusWarn
	}

	return domain.Message{
		AircraftID: a.cfg.ID,
		Latitude:   s.lat,
		Longitude:  s.lon,
		AltitudeFt: s.alt,
		SpeedKt:    s.spd,
		HeadingDeg: s.hdg,
		Status:     status,
		Timestamp:  time.Now().UTC(),
	}
}

// wait sleeps a uniform random interval between ticks. It returns false
// when the context is cancelled before the interval elapses.
func (a *Aircraft) wait(ctx context.Context) bool {
	interval := a.cfg.MinInterval
	if spread := a.cfg.MaxInterval - a.cfg.MinInterval; spread > 0 {
		interval += time.Duration(a.rnd.Int63n(int64(spread) + 1))
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (a *Aircraft) log(ctx context.Context, format string, v ...any) {
	if a.logger != nil {
		a.logger.Printf(ctx, format, v...)
	}
}

func uniform(rnd *rand.Rand, lo, hi float64) float64 {
	return lo + rnd.Float64()*(hi-lo)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var _ domain.Producer = (*Aircraft)(nil)
