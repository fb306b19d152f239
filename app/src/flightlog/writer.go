package flightlog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"atm-service/app/src/domain"
	"atm-service/app/src/infra"
	"atm-service/app/src/shared/constants"
)

// header names the append-log columns: one row per consumer-observed
// data message. Sentinel sign-offs are never written as rows.
var header = []string{
	"aircraft_id",
	"latitude",
	"longitude",
	"altitude_ft",
	"speed_kt",
	"heading_deg",
	"status",
	"ts",
	"valid",
}

// Config contains the configuration required to open a flight log.
type Config struct {
	Path string
	// FlushEvery determines how many rows are buffered between flushes.
	FlushEvery int
	Logger     *infra.Logger
}

// Writer is a CSV-backed FlightRecorder. Appends come from the tower
// goroutine; Close may be called from the orchestrator on any exit path
// and is idempotent.
type Writer struct {
	mu         sync.Mutex
	file       *os.File
	csv        *csv.Writer
	logger     *infra.Logger
	flushEvery int
	pending    int
	closed     bool

	closeOnce sync.Once
	closeErr  error
}

// Open creates (or truncates) the log file and writes the header row.
// A failure here is fatal to the run: the orchestrator must not spawn
// any task without a usable log.
func Open(cfg Config) (*Writer, error) {
	if cfg.Path == "" {
		return nil, errors.New("flightlog: path is required")
	}

	flushEvery := cfg.FlushEvery
	if flushEvery <= 0 {
		flushEvery = 32
	}

	file, err := os.Create(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("flightlog: open %s: %w", cfg.Path, err)
	}

	w := &Writer{
		file:       file,
		csv:        csv.NewWriter(file),
		logger:     cfg.Logger,
		flushEvery: flushEvery,
	}

	if err := w.csv.Write(header); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("flightlog: write header: %w", err)
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("flightlog: flush header: %w", err)
	}

	return w, nil
}

// Append writes one data row together with its validation verdict.
func (w *Writer) Append(_ context.Context, msg domain.Message, valid bool) error {
	start := time.Now()

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return domain.ErrRecorderClosed
	}

	if err := w.csv.Write(row(msg, valid)); err != nil {
		return fmt.Errorf("flightlog: append: %w", err)
	}

	w.pending++
	if w.pending >= w.flushEvery {
		w.pending = 0
		w.csv.Flush()
		if err := w.csv.Error(); err != nil {
			return fmt.Errorf("flightlog: flush: %w", err)
		}
	}

	infra.RecordLogAppend(time.Since(start))
	return nil
}

// Close flushes buffered rows and releases the file. Safe to call on
// every exit path, including repeatedly during interrupted shutdown.
func (w *Writer) Close() error {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		defer w.mu.Unlock()

		w.closed = true
		w.csv.Flush()
		if err := w.csv.Error(); err != nil {
			w.closeErr = fmt.Errorf("flightlog: flush: %w", err)
		}
		if err := w.file.Close(); err != nil && w.closeErr == nil {
			w.closeErr = fmt.Errorf("flightlog: close: %w", err)
		}
		if w.logger != nil {
			w.logger.Println(context.Background(), "flight log closed")
		}
	})
	return w.closeErr
}

func row(msg domain.Message, valid bool) []string {
	validFlag := "0"
	if valid {
		validFlag = "1"
	}

	return []string{
		strconv.Itoa(msg.AircraftID),
		strconv.FormatFloat(msg.Latitude, 'f', -1, 64),
		strconv.FormatFloat(msg.Longitude, 'f', -1, 64),
		strconv.FormatFloat(msg.AltitudeFt, 'f', -1, 64),
		strconv.FormatFloat(msg.SpeedKt, 'f', -1, 64),
		strconv.FormatFloat(msg.HeadingDeg, 'f', -1, 64),
		string(msg.Status),
		msg.Timestamp.UTC().Format(constants.TimeFormat),
		validFlag,
	}
}

var _ domain.FlightRecorder = (*Writer)(nil)
