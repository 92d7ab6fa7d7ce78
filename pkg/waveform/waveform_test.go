package waveform

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

func TestGenerateLengthAndTimeAxis(t *testing.T) {
	tests := []struct {
		name       string
		duration   int
		sampleRate int
		technique  Technique
	}{
		{name: "box", duration: 32, sampleRate: 10, technique: Box},
		{name: "diaphragmatic", duration: 10, sampleRate: 10, technique: Diaphragmatic},
		{name: "sine", duration: 7, sampleRate: 3, technique: Sine},
		{name: "single sample", duration: 1, sampleRate: 1, technique: Box},
		{name: "at max duration", duration: 3600, sampleRate: 2, technique: Diaphragmatic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			times, volumes, err := Generate(tt.duration, tt.sampleRate, tt.technique)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			want := tt.duration * tt.sampleRate
			if len(times) != want || len(volumes) != want {
				t.Fatalf("len(times) = %d, len(volumes) = %d, want %d", len(times), len(volumes), want)
			}
			if times[0] != 0 {
				t.Errorf("times[0] = %v, want 0", times[0])
			}
			if want > 1 && math.Abs(times[len(times)-1]-float64(tt.duration)) > tolerance {
				t.Errorf("last time = %v, want %d", times[len(times)-1], tt.duration)
			}
			for i := 1; i < len(times); i++ {
				if times[i] < times[i-1] {
					t.Fatalf("times not monotonic at %d: %v < %v", i, times[i], times[i-1])
				}
			}
			for i, v := range volumes {
				if v < -tolerance || v > 1+tolerance {
					t.Fatalf("volume[%d] = %v out of [0, 1]", i, v)
				}
			}
		})
	}
}

func TestGenerateEmpty(t *testing.T) {
	times, volumes, err := Generate(0, 10, Box)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(times) != 0 || len(volumes) != 0 {
		t.Fatalf("expected empty curve, got %d/%d samples", len(times), len(volumes))
	}
}

func TestGenerateResourceLimits(t *testing.T) {
	tests := []struct {
		name       string
		duration   int
		sampleRate int
		wantLimit  string
	}{
		{name: "duration", duration: 3601, sampleRate: 1, wantLimit: LimitDuration},
		{name: "sample rate", duration: 1, sampleRate: 1001, wantLimit: LimitSampleRate},
		{name: "product over cap", duration: 10000, sampleRate: 1001, wantLimit: LimitDuration},
		{name: "duration checked first", duration: 3601, sampleRate: 5000, wantLimit: LimitDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			times, volumes, err := Generate(tt.duration, tt.sampleRate, Box)
			var limitErr *ResourceLimitError
			if !errors.As(err, &limitErr) {
				t.Fatalf("Generate() error = %v, want ResourceLimitError", err)
			}
			if limitErr.Limit != tt.wantLimit {
				t.Errorf("Limit = %q, want %q", limitErr.Limit, tt.wantLimit)
			}
			if times != nil || volumes != nil {
				t.Errorf("expected no partial result")
			}
		})
	}
}

func TestValidateLargestAcceptedRequest(t *testing.T) {
	if err := Validate(MaxDurationSeconds, MaxSampleRate); err != nil {
		t.Fatalf("Validate(%d, %d) = %v, want nil", MaxDurationSeconds, MaxSampleRate, err)
	}
}

func TestValidateTotalSamplesLimit(t *testing.T) {
	// Both factors pass the individual bounds because they are negative,
	// but their product is over the cap.
	err := Validate(-10001, -1001)
	var limitErr *ResourceLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("Validate() error = %v, want ResourceLimitError", err)
	}
	if limitErr.Limit != LimitTotalSamples {
		t.Errorf("Limit = %q, want %q", limitErr.Limit, LimitTotalSamples)
	}
	if limitErr.Reason != "total samples exceed unsafe limit" {
		t.Errorf("Reason = %q", limitErr.Reason)
	}
}

func TestValidateNegative(t *testing.T) {
	if err := Validate(-1, 10); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Validate(-1, 10) = %v, want ErrInvalidArgument", err)
	}
	if err := Validate(10, -1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Validate(10, -1) = %v, want ErrInvalidArgument", err)
	}
}

func TestResourceLimitErrorMessage(t *testing.T) {
	_, _, err := Generate(1, 1001, Box)
	if err == nil || err.Error() != "resource limit exceeded: sample rate exceeds 1000Hz" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBoxPhaseBoundaries(t *testing.T) {
	tests := []struct {
		sec  float64
		want float64
	}{
		{0, 0},
		{2, 0.5},
		{4, 1},
		{6, 1},
		{8, 1},
		{10, 0.5},
		{12, 0},
		{14, 0},
		{16, 0},
		{20, 1},
	}
	for _, tt := range tests {
		if got := Volume(Box, tt.sec); math.Abs(got-tt.want) > tolerance {
			t.Errorf("Volume(Box, %v) = %v, want %v", tt.sec, got, tt.want)
		}
	}
}

func TestBoxGeneratedNearBoundaries(t *testing.T) {
	times, volumes, err := Generate(16, 4, Box)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for _, tc := range []struct {
		sec  float64
		want float64
	}{{0, 0}, {4, 1}, {8, 1}, {12, 0}} {
		i := nearest(times, tc.sec)
		// One step of the time axis is 16/63 s, which moves the ramp by < 0.07.
		if math.Abs(volumes[i]-tc.want) > 0.07 {
			t.Errorf("volume near t=%v is %v (t=%v), want ~%v", tc.sec, volumes[i], times[i], tc.want)
		}
	}
}

func TestDiaphragmaticExtrema(t *testing.T) {
	if got := Volume(Diaphragmatic, 0); math.Abs(got) > tolerance {
		t.Errorf("Volume(Diaphragmatic, 0) = %v, want 0", got)
	}
	if got := Volume(Diaphragmatic, 5); math.Abs(got-1) > tolerance {
		t.Errorf("Volume(Diaphragmatic, 5) = %v, want 1", got)
	}

	times, volumes, err := Generate(10, 10, Diaphragmatic)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if volumes[0] != 0 {
		t.Errorf("volumes[0] = %v, want 0", volumes[0])
	}
	i := nearest(times, 5)
	if math.Abs(volumes[i]-1) > 0.01 {
		t.Errorf("volume near t=5 is %v, want ~1", volumes[i])
	}
}

func TestPeriodicity(t *testing.T) {
	for _, tech := range []Technique{Box, Diaphragmatic, Sine} {
		p := Period(tech)
		for sec := 0.0; sec < 40; sec += 0.37 {
			a, b := Volume(tech, sec), Volume(tech, sec+p)
			if math.Abs(a-b) > 1e-6 {
				t.Fatalf("%s: volume(%v) = %v, volume(%v) = %v", tech, sec, a, sec+p, b)
			}
		}
	}
}

func TestVolumeRange(t *testing.T) {
	for _, tech := range []Technique{Box, Diaphragmatic, Sine} {
		for sec := -20.0; sec < 100; sec += 0.01 {
			v := Volume(tech, sec)
			if v < 0 || v > 1 {
				t.Fatalf("%s: volume(%v) = %v out of range", tech, sec, v)
			}
		}
	}
}

func TestParseTechnique(t *testing.T) {
	tests := map[string]Technique{
		"box":            Box,
		" BOX ":          Box,
		"diaphragmatic":  Diaphragmatic,
		"Diaphragmatic":  Diaphragmatic,
		"alternate":      Sine,
		"":               Sine,
		"sine":           Sine,
		"something-else": Sine,
	}
	for in, want := range tests {
		if got := ParseTechnique(in); got != want {
			t.Errorf("ParseTechnique(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSamples(t *testing.T) {
	s := Samples([]float64{0, 1, 2}, []float64{0.1, 0.2})
	if len(s) != 2 {
		t.Fatalf("len = %d, want 2", len(s))
	}
	if s[1].T != 1 || s[1].Volume != 0.2 {
		t.Errorf("s[1] = %+v", s[1])
	}
}

func nearest(times []float64, sec float64) int {
	best := 0
	for i, v := range times {
		if math.Abs(v-sec) < math.Abs(times[best]-sec) {
			best = i
		}
	}
	return best
}
