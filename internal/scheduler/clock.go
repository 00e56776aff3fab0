package scheduler

import "time"

// Clock supplies the current time. Injected so tests can pin the instant
// both operations evaluate against.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
