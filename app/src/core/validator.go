package core

import "atm-service/app/src/domain"

// Telemetry bounds accepted by Validate. All bounds are inclusive.
const (
	MinLatitude   = -90.0
	MaxLatitude   = 90.0
	MinLongitude  = -180.0
	MaxLongitude  = 180.0
	MinAltitudeFt = 0.0
	MaxAltitudeFt = 60000.0
	MinSpeedKt    = 0.0
	MaxSpeedKt    = 700.0
	MinHeadingDeg = 0.0
	MaxHeadingDeg = 360.0
)

// Validate reports whether a data message carries plausible telemetry.
// Pure function, no side effects. Callers must never pass a TERMINATED
// sentinel: it is a lifecycle signal, not data.
func Validate(msg domain.Message) bool {
	switch {
	case msg.Latitude < MinLatitude || msg.Latitude > MaxLatitude:
		return false
	case msg.Longitude < MinLongitude || msg.Longitude > MaxLongitude:
		return false
	case msg.AltitudeFt < MinAltitudeFt || msg.AltitudeFt > MaxAltitudeFt:
		return false
	case msg.SpeedKt < MinSpeedKt || msg.SpeedKt > MaxSpeedKt:
		return false
	case msg.HeadingDeg < MinHeadingDeg || msg.HeadingDeg > MaxHeadingDeg:
		return false
	}
	return true
}
