package core

import (
	"context"
	"time"

	"atm-service/app/src/domain"
	"atm-service/app/src/infra"
	"atm-service/app/src/shared/constants"
)

type TowerConfig struct {
	AircraftCount int
	PopTimeout    time.Duration
	ProgressEvery int
}

// Tower is the single consumer draining the shared channel. The tally
// counters are owned by the Run goroutine alone; other goroutines read
// them only through the StatusBoard snapshot.
type Tower struct {
	cfg      TowerConfig
	recorder domain.FlightRecorder
	board    *StatusBoard
	logger   Logger

	processed  int
	rejected   int
	terminated int
}

func NewTower(cfg TowerConfig, recorder domain.FlightRecorder, board *StatusBoard, logger Logger) *Tower {
	if cfg.AircraftCount < 0 {
		cfg.AircraftCount = 0
	}
	if cfg.PopTimeout <= 0 {
		cfg.PopTimeout = 500 * time.Millisecond
	}
	if cfg.ProgressEvery <= 0 {
		cfg.ProgressEvery = 50
	}
	return &Tower{cfg: cfg, recorder: recorder, board: board, logger: logger}
}

// Run drains messages until the stop context is cancelled AND every
// aircraft's sentinel has been observed, so no in-flight message is
// lost. Receive timeouts are a liveness probe, not an error: they only
// force the loop condition to be re-checked.
func (t *Tower) Run(ctx context.Context, in <-chan domain.Message) domain.TowerStats {
	timer := time.NewTimer(t.cfg.PopTimeout)
	defer timer.Stop()

	for ctx.Err() == nil || t.terminated < t.cfg.AircraftCount {
		select {
		case msg := <-in:
			t.handle(ctx, msg)
			infra.SetChannelDepth(len(in))
		case <-timer.C:
			timer.Reset(t.cfg.PopTimeout)
		}
	}

	stats := t.stats()
	t.log(ctx, "tower: final tally processed=%d rejected=%d terminated=%d",
		stats.Processed, stats.Rejected, stats.Terminated)
	return stats
}

func (t *Tower) handle(ctx context.Context, msg domain.Message) {
	if msg.IsSignOff() {
		t.terminated++
		if t.board != nil {
			t.board.recordSignOff()
		}
		infra.SignOffObserved()
		t.log(ctx, "tower: aircraft %d terminated at %s (%d/%d)",
			msg.AircraftID, msg.Timestamp.Format(constants.TimeFormat),
			t.terminated, t.cfg.AircraftCount)
		return
	}

	valid := Validate(msg)
	if valid {
		t.processed++
		infra.MessageProcessed()
		if t.processed%t.cfg.ProgressEvery == 0 {
			t.log(ctx, "tower: processed %d messages (rejected=%d)", t.processed, t.rejected)
		}
	} else {
		t.rejected++
		infra.MessageRejected()
		t.warn(ctx, "tower: rejected report from aircraft %d (lat=%.2f lon=%.2f alt=%.0f spd=%.1f hdg=%.1f)",
			msg.AircraftID, msg.Latitude, msg.Longitude, msg.AltitudeFt, msg.SpeedKt, msg.HeadingDeg)
	}
	if t.board != nil {
		t.board.record(valid)
	}

	t.append(ctx, msg, valid)
}

// append persists the message and verdict. Write failures are reported
// and tolerated: a malformed or unrecordable message is data, not a
// fault of the run.
func (t *Tower) append(ctx context.Context, msg domain.Message, valid bool) {
	if t.recorder == nil {
		return
	}
	if err := t.recorder.Append(ctx, msg, valid); err != nil {
		t.warn(ctx, "tower: failed to record report from aircraft %d: %v", msg.AircraftID, err)
	}
}

func (t *Tower) stats() domain.TowerStats {
	return domain.TowerStats{
		Processed:  t.processed,
		Rejected:   t.rejected,
		Terminated: t.terminated,
	}
}

func (t *Tower) log(ctx context.Context, format string, v ...any) {
	if t.logger != nil {
		t.logger.Printf(ctx, format, v...)
	}
}

func (t *Tower) warn(ctx context.Context, format string, v ...any) {
	if t.logger != nil {
		t.logger.Warnf(ctx, format, v...)
	}
}

var _ domain.Consumer = (*Tower)(nil)
