// Package clock abstracts time source.
package clock

import "time"

// Timer abstracts a single event.
type Timer interface {
	C() <-chan time.Time
	Reset(d time.Duration)
	Stop() bool
}

// Ticker abstracts a channel that delivers ticks of a clock at intervals.
type Ticker interface {
	C() <-chan time.Time
	Reset(d time.Duration)
	Stop()
}

// Clock abstracts clock source.
type Clock interface {
	Now() time.Time
	Timer(d time.Duration) Timer
	Ticker(d time.Duration) Ticker
}
