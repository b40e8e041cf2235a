package domain

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests and fixture tools can freeze
// time via SetClock. Production code uses the real clock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used for age and timestamp derivations.
// Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Clock returns the package time source. Other internal packages use it so
// every "now"-relative value in one run comes from the same clock.
func Clock() clockwork.Clock { return clock }
