package testhelpers

import "sync"

// FixedRNG replays a fixed sequence of draws, wrapping around when exhausted.
// Each draw is reduced modulo n.
type FixedRNG struct {
	mu    sync.Mutex
	draws []int
	next  int
	calls int
}

// NewFixedRNG creates an RNG that returns draws in order
func NewFixedRNG(draws ...int) *FixedRNG {
	return &FixedRNG{draws: draws}
}

func (r *FixedRNG) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if len(r.draws) == 0 {
		return 0
	}
	d := r.draws[r.next%len(r.draws)]
	r.next++
	return d % n
}

// Calls returns how many draws were taken
func (r *FixedRNG) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
