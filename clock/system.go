package clock

import "time"

type systemTimer struct {
	timer *time.Timer
}

func (s systemTimer) C() <-chan time.Time   { return s.timer.C }
func (s systemTimer) Reset(d time.Duration) { s.timer.Reset(d) }
func (s systemTimer) Stop() bool            { return s.timer.Stop() }

type systemTicker struct {
	ticker *time.Ticker
}

func (s systemTicker) C() <-chan time.Time   { return s.ticker.C }
func (s systemTicker) Reset(d time.Duration) { s.ticker.Reset(d) }
func (s systemTicker) Stop()                 { s.ticker.Stop() }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Timer(d time.Duration) Timer {
	return systemTimer{timer: time.NewTimer(d)}
}

func (systemClock) Ticker(d time.Duration) Ticker {
	return systemTicker{ticker: time.NewTicker(d)}
}

// System is a Clock source backed by time package.
var System Clock = systemClock{}
