package core

import (
	"sync/atomic"

	"atm-service/app/src/domain"
)

// StatusBoard mirrors the tower tallies for concurrent readers such as
// the HTTP status API. The tower goroutine is the only writer; readers
// take point-in-time snapshots.
type StatusBoard struct {
	processed  atomic.Int64
	rejected   atomic.Int64
	terminated atomic.Int64
}

func NewStatusBoard() *StatusBoard {
	return &StatusBoard{}
}

func (b *StatusBoard) record(valid bool) {
	if valid {
		b.processed.Add(1)
	} else {
		b.rejected.Add(1)
	}
}

func (b *StatusBoard) recordSignOff() {
	b.terminated.Add(1)
}

// Snapshot returns the current tallies.
func (b *StatusBoard) Snapshot() domain.TowerStats {
	return domain.TowerStats{
		Processed:  int(b.processed.Load()),
		Rejected:   int(b.rejected.Load()),
		Terminated: int(b.terminated.Load()),
	}
}

var _ domain.StatusSource = (*StatusBoard)(nil)
