package engine

import "time"

// Clock is the core's third narrow collaborator (spec.md §1): wall
// time for metrics and rate limits, injected so tests can control it.
type Clock interface {
	Now() time.Time
}

// systemClock is the production Clock, backed by time.Now.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
