package pacer

//go:generate mockgen -destination=mock_clock_test.go -package=pacer . Clock

import "time"

// Clock is the time source of a Pacer.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
