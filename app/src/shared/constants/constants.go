package constants

import "time"

const (
	// TimeFormat defines the canonical timestamp format used in logs and
	// the flight log.
	TimeFormat = time.RFC3339Nano
)
