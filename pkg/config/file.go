package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/breathe/pkg/utils/ptr"
	"github.com/charlie0129/breathe/pkg/waveform"
)

var (
	defaultFileConfig = &RawFileConfig{
		DefaultTechnique: ptr.To("box"),
		DurationSeconds:  ptr.To(32),
		SampleRate:       ptr.To(10),
		DownsampleEvery:  ptr.To(5),
		BarWidth:         ptr.To(40),
		ProgressWidth:    ptr.To(20),
		TickIntervalMs:   ptr.To(50),
		// Colors are still dropped automatically when stdout is not a terminal.
		Color: ptr.To(true),
	}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

type RawFileConfig struct {
	DefaultTechnique *string `json:"defaultTechnique,omitempty"`
	DurationSeconds  *int    `json:"durationSeconds,omitempty"`
	SampleRate       *int    `json:"sampleRate,omitempty"`
	DownsampleEvery  *int    `json:"downsampleEvery,omitempty"`
	BarWidth         *int    `json:"barWidth,omitempty"`
	ProgressWidth    *int    `json:"progressWidth,omitempty"`
	TickIntervalMs   *int    `json:"tickIntervalMs,omitempty"`
	Color            *bool   `json:"color,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	rawConfig := &RawFileConfig{
		DefaultTechnique: ptr.To(c.DefaultTechnique()),
		DurationSeconds:  ptr.To(c.DurationSeconds()),
		SampleRate:       ptr.To(c.SampleRate()),
		DownsampleEvery:  ptr.To(c.DownsampleEvery()),
		BarWidth:         ptr.To(c.BarWidth()),
		ProgressWidth:    ptr.To(c.ProgressWidth()),
		TickIntervalMs:   ptr.To(int(c.TickInterval() / time.Millisecond)),
		Color:            ptr.To(c.Color()),
	}

	return rawConfig, nil
}

// value returns the field of the loaded config, or its default when unset.
func value[T any](f *File, field func(*RawFileConfig) *T) T {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if v := field(f.c); v != nil {
		return *v
	}
	return *field(defaultFileConfig)
}

func set[T any](f *File, field func(*RawFileConfig) **T, v T) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	*field(f.c) = &v
}

func (f *File) DefaultTechnique() string {
	return value(f, func(c *RawFileConfig) *string { return c.DefaultTechnique })
}

func (f *File) DurationSeconds() int {
	return value(f, func(c *RawFileConfig) *int { return c.DurationSeconds })
}

func (f *File) SampleRate() int {
	return value(f, func(c *RawFileConfig) *int { return c.SampleRate })
}

func (f *File) DownsampleEvery() int {
	return value(f, func(c *RawFileConfig) *int { return c.DownsampleEvery })
}

func (f *File) BarWidth() int {
	return value(f, func(c *RawFileConfig) *int { return c.BarWidth })
}

func (f *File) ProgressWidth() int {
	return value(f, func(c *RawFileConfig) *int { return c.ProgressWidth })
}

func (f *File) TickInterval() time.Duration {
	ms := value(f, func(c *RawFileConfig) *int { return c.TickIntervalMs })
	return time.Duration(ms) * time.Millisecond
}

func (f *File) Color() bool {
	return value(f, func(c *RawFileConfig) *bool { return c.Color })
}

func (f *File) SetDefaultTechnique(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		panic("default technique must not be empty")
	}
	set(f, func(c *RawFileConfig) **string { return &c.DefaultTechnique }, s)
}

func (f *File) SetDurationSeconds(i int) {
	if i < 1 || i > waveform.MaxDurationSeconds {
		panic("duration must be between 1 and 3600 seconds")
	}
	set(f, func(c *RawFileConfig) **int { return &c.DurationSeconds }, i)
}

func (f *File) SetSampleRate(i int) {
	if i < 1 || i > waveform.MaxSampleRate {
		panic("sample rate must be between 1 and 1000")
	}
	set(f, func(c *RawFileConfig) **int { return &c.SampleRate }, i)
}

func (f *File) SetDownsampleEvery(i int) {
	if i < 1 {
		panic("downsample step must be at least 1")
	}
	set(f, func(c *RawFileConfig) **int { return &c.DownsampleEvery }, i)
}

func (f *File) SetBarWidth(i int) {
	if i < 1 || i > MaxWidth {
		panic("bar width must be between 1 and 200")
	}
	set(f, func(c *RawFileConfig) **int { return &c.BarWidth }, i)
}

func (f *File) SetProgressWidth(i int) {
	if i < 1 || i > MaxWidth {
		panic("progress width must be between 1 and 200")
	}
	set(f, func(c *RawFileConfig) **int { return &c.ProgressWidth }, i)
}

func (f *File) SetTickInterval(d time.Duration) {
	if d < MinTickInterval || d > MaxTickInterval {
		panic("tick interval must be between 10ms and 1s")
	}
	set(f, func(c *RawFileConfig) **int { return &c.TickIntervalMs }, int(d/time.Millisecond))
}

func (f *File) SetColor(b bool) {
	set(f, func(c *RawFileConfig) **bool { return &c.Color }, b)
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	if dir := filepath.Dir(f.filepath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return pkgerrors.Wrapf(err, "failed to create directory %s", dir)
		}
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	return logrus.Fields{
		"defaultTechnique": f.DefaultTechnique(),
		"durationSeconds":  f.DurationSeconds(),
		"sampleRate":       f.SampleRate(),
		"downsampleEvery":  f.DownsampleEvery(),
		"barWidth":         f.BarWidth(),
		"progressWidth":    f.ProgressWidth(),
		"tickInterval":     f.TickInterval(),
		"color":            f.Color(),
	}
}
