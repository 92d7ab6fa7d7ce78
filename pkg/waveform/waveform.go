package waveform

import (
	"fmt"
	"math"
	"strings"
)

// Technique selects the curve computed by Generate.
type Technique string

const (
	// Box is a 16s trapezoid: 4s rise, 4s hold full, 4s fall, 4s hold empty.
	Box Technique = "box"
	// Diaphragmatic is a 10s raised cosine: 5s in, 5s out.
	Diaphragmatic Technique = "diaphragmatic"
	// Sine is the fallback curve used for every other technique name.
	Sine Technique = "sine"
)

const (
	// MaxDurationSeconds is the longest curve Generate accepts.
	MaxDurationSeconds = 3600
	// MaxSampleRate is the highest sample rate (Hz) Generate accepts.
	MaxSampleRate = 1000
	// MaxTotalSamples caps the number of samples of a single curve.
	MaxTotalSamples = 10_000_000

	boxPeriod           = 16.0
	boxSegment          = boxPeriod / 4
	diaphragmaticPeriod = 10.0
)

// Sample is one point of a curve.
type Sample struct {
	T      float64 `json:"t"`
	Volume float64 `json:"volume"`
}

// ParseTechnique maps a technique name to a Technique. Names other than
// "box" and "diaphragmatic" fall back to Sine.
func ParseTechnique(name string) Technique {
	switch Technique(strings.ToLower(strings.TrimSpace(name))) {
	case Box:
		return Box
	case Diaphragmatic:
		return Diaphragmatic
	default:
		return Sine
	}
}

// Title returns a display title for the curve.
func (t Technique) Title() string {
	switch t {
	case Box:
		return "Box Breathing (Trapezoidal)"
	case Diaphragmatic:
		return "Diaphragmatic (Smooth Sine)"
	default:
		return "Sine"
	}
}

// Period returns the period of the curve in seconds.
func Period(t Technique) float64 {
	switch t {
	case Box:
		return boxPeriod
	case Diaphragmatic:
		return diaphragmaticPeriod
	default:
		return 2 * math.Pi
	}
}

// Volume returns the normalized lung volume of technique t at time sec.
// The result is always within [0, 1].
func Volume(t Technique, sec float64) float64 {
	switch t {
	case Box:
		return boxVolume(sec)
	case Diaphragmatic:
		return (1 - math.Cos(2*math.Pi*sec/diaphragmaticPeriod)) / 2
	default:
		return 0.5*math.Sin(sec) + 0.5
	}
}

func boxVolume(sec float64) float64 {
	u := math.Mod(sec, boxPeriod)
	if u < 0 {
		u += boxPeriod
	}

	switch {
	case u < boxSegment:
		return u / boxSegment
	case u < 2*boxSegment:
		return 1
	case u < 3*boxSegment:
		return 1 - (u-2*boxSegment)/boxSegment
	default:
		return 0
	}
}

// Validate checks the sampling parameters in the same order Generate does.
func Validate(durationSeconds, sampleRate int) error {
	if durationSeconds > MaxDurationSeconds {
		return &ResourceLimitError{Limit: LimitDuration, Reason: "duration exceeds 1 hour"}
	}
	if sampleRate > MaxSampleRate {
		return &ResourceLimitError{Limit: LimitSampleRate, Reason: "sample rate exceeds 1000Hz"}
	}
	if durationSeconds*sampleRate > MaxTotalSamples {
		return &ResourceLimitError{Limit: LimitTotalSamples, Reason: "total samples exceed unsafe limit"}
	}
	if durationSeconds < 0 || sampleRate < 0 {
		return fmt.Errorf("%w: duration %d and sample rate %d must not be negative", ErrInvalidArgument, durationSeconds, sampleRate)
	}
	return nil
}

// Generate samples technique t over [0, durationSeconds] with
// durationSeconds*sampleRate evenly spaced points, both ends included.
// It returns the sample times and the volume at each of them.
func Generate(durationSeconds, sampleRate int, t Technique) ([]float64, []float64, error) {
	if err := Validate(durationSeconds, sampleRate); err != nil {
		return nil, nil, err
	}

	total := durationSeconds * sampleRate
	times := linspace(float64(durationSeconds), total)
	volumes := make([]float64, total)
	for i, sec := range times {
		volumes[i] = Volume(t, sec)
	}

	return times, volumes, nil
}

// linspace returns n evenly spaced values from 0 to stop inclusive.
func linspace(stop float64, n int) []float64 {
	times := make([]float64, n)
	if n == 1 {
		return times
	}
	for i := range times {
		times[i] = stop * float64(i) / float64(n-1)
	}
	return times
}

// Samples pairs times and volumes. The shorter slice bounds the result.
func Samples(times, volumes []float64) []Sample {
	n := min(len(times), len(volumes))
	s := make([]Sample, n)
	for i := range n {
		s[i] = Sample{T: times[i], Volume: volumes[i]}
	}
	return s
}
