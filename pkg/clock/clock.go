// Package clock provides the time source used by the autoplay scheduler and the
// gesture quiet period. The default implementation uses system time. Tests inject
// a Fake to control timing deterministically.
package clock

import "time"

// Clock provides the current time and one-shot timers.
type Clock interface {
	Now() time.Time
	// AfterFunc waits for d to elapse and then calls f in its own goroutine
	// (Real) or on the goroutine advancing the clock (Fake).
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancelable pending callback.
type Timer interface {
	// Stop prevents the Timer from firing. It returns false if the timer
	// has already fired or been stopped.
	Stop() bool
}

// realClock uses system time.
type realClock struct{}

// Real returns a Clock backed by the time package.
func Real() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
