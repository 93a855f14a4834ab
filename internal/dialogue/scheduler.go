package dialogue

import "time"

// Timer is a pending callback.
type Timer interface {
	// Stop prevents the callback from running. It reports false if the callback already ran or was stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay. Callbacks may run on other goroutines.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type wallClock struct{}

func (wallClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// WallClock schedules with time.AfterFunc.
var WallClock Scheduler = wallClock{}
