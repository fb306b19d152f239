package domain

import "time"

// Status classifies a telemetry message.
type Status string

const (
	StatusOK         Status = "OK"
	StatusWarn       Status = "WARN"
	StatusTerminated Status = "TERMINATED"
)

// Message is a single telemetry report emitted by an aircraft.
// Messages are immutable once constructed and carry no identity beyond
// their field values.
type Message struct {
	AircraftID int
	Latitude   float64
	Longitude  float64
	AltitudeFt float64
	SpeedKt    float64
	HeadingDeg float64
	Status     Status
	Timestamp  time.Time
}

// IsSignOff reports whether the message is a producer's terminal
// sentinel. Sentinels are lifecycle signals, never validated as data.
func (m Message) IsSignOff() bool {
	return m.Status == StatusTerminated
}

// NewSignOff builds the sentinel an aircraft emits exactly once as its
// last message. All numeric fields are zero.
func NewSignOff(aircraftID int) Message {
	return Message{
		AircraftID: aircraftID,
		Status:     StatusTerminated,
		Timestamp:  time.Now().UTC(),
	}
}
