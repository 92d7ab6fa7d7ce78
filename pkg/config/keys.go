package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charlie0129/breathe/pkg/technique"
	"github.com/charlie0129/breathe/pkg/waveform"
)

const (
	MaxWidth        = 200
	MinTickInterval = 10 * time.Millisecond
	MaxTickInterval = time.Second
)

// techniqueKey maps a preset name, alias or menu number to its key.
func techniqueKey(value string) (string, bool) {
	if t, ok := technique.Lookup(value); ok {
		return t.Key, true
	}
	switch strings.TrimSpace(value) {
	case "1", "2", "3":
		return technique.FromChoice(value).Key, true
	}
	return "", false
}

type setter func(c Config, value string) error

func intSetter(name string, lo, hi int, apply func(Config, int)) setter {
	return func(c Config, value string) error {
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %v", name, err)
		}
		if i < lo || i > hi {
			return fmt.Errorf("%s must be between %d and %d, got %d", name, lo, hi, i)
		}
		apply(c, i)
		return nil
	}
}

var setters = map[string]setter{
	"technique": func(c Config, value string) error {
		key, ok := techniqueKey(value)
		if !ok {
			return fmt.Errorf("unknown technique %q (available: %s, %s, %s or 1-3)",
				value, technique.KeyBox, technique.KeyDiaphragmatic, technique.KeyAlternateNostril)
		}
		c.SetDefaultTechnique(key)
		return nil
	},
	"duration":       intSetter("duration", 1, waveform.MaxDurationSeconds, Config.SetDurationSeconds),
	"sample-rate":    intSetter("sample rate", 1, waveform.MaxSampleRate, Config.SetSampleRate),
	"every":          intSetter("downsample step", 1, waveform.MaxTotalSamples, Config.SetDownsampleEvery),
	"bar-width":      intSetter("bar width", 1, MaxWidth, Config.SetBarWidth),
	"progress-width": intSetter("progress width", 1, MaxWidth, Config.SetProgressWidth),
	"tick-interval": func(c Config, value string) error {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid tick interval: %v", err)
		}
		if d < MinTickInterval || d > MaxTickInterval {
			return fmt.Errorf("tick interval must be between %s and %s, got %s", MinTickInterval, MaxTickInterval, d)
		}
		c.SetTickInterval(d)
		return nil
	},
	"color": func(c Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid color: %v", err)
		}
		c.SetColor(b)
		return nil
	},
}

// Keys lists the names accepted by Set.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set parses value and stores it under key. Unlike the typed setters it
// reports bad input as an error instead of panicking.
func Set(c Config, key, value string) error {
	s, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (available: %v)", key, Keys())
	}
	return s(c, value)
}
