package config

import "time"

type Config interface {
	DefaultTechnique() string
	DurationSeconds() int
	SampleRate() int
	DownsampleEvery() int
	BarWidth() int
	ProgressWidth() int
	TickInterval() time.Duration
	Color() bool

	SetDefaultTechnique(string)
	SetDurationSeconds(int)
	SetSampleRate(int)
	SetDownsampleEvery(int)
	SetBarWidth(int)
	SetProgressWidth(int)
	SetTickInterval(time.Duration)
	SetColor(bool)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
