package domain

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests can freeze time via SetClock.
// Only serialized pipeline output is stamped; predictions themselves never read it.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used for output timestamps. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
