package domain

// TowerStats are the tower's tallies. The tower goroutine owns the live
// counters; the struct is only ever handed out by value.
type TowerStats struct {
	Processed  int
	Rejected   int
	Terminated int
}
