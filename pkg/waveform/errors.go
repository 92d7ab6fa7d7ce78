package waveform

import (
	"errors"
	"fmt"
)

// Names of the limits reported by ResourceLimitError.
const (
	LimitDuration     = "duration"
	LimitSampleRate   = "sampleRate"
	LimitTotalSamples = "totalSamples"
)

var (
	// ErrInvalidArgument is returned when the duration or sample rate is negative.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ResourceLimitError is returned by Generate when a request would exceed
// one of the sampling limits. No samples are computed in that case.
type ResourceLimitError struct {
	// Limit is one of LimitDuration, LimitSampleRate or LimitTotalSamples.
	Limit string
	// Reason is a human-readable description of the exceeded limit.
	Reason string
}

func (e *ResourceLimitError) Error() string {
	return fmt.Sprintf("resource limit exceeded: %s", e.Reason)
}
