package domain

import "context"

// FlightRecorder persists consumer-observed data messages together with
// their validation verdict.
type FlightRecorder interface {
	Append(ctx context.Context, msg Message, valid bool) error
}

// Producer emits telemetry messages into the shared channel until the
// context is cancelled, then emits exactly one TERMINATED sentinel.
type Producer interface {
	Run(ctx context.Context, out chan<- Message)
}

// Consumer drains the shared channel until the context is cancelled and
// every producer's sentinel has been observed, then returns the final
// tallies.
type Consumer interface {
	Run(ctx context.Context, in <-chan Message) TowerStats
}

// StatusSource exposes a point-in-time snapshot of the tower tallies to
// transport layers.
type StatusSource interface {
	Snapshot() TowerStats
}
