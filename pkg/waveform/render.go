package waveform

import (
	"fmt"
	"io"
	"math"
	"strings"
)

const (
	DefaultEvery    = 5
	DefaultBarWidth = 40
)

// RenderOptions controls RenderBars.
type RenderOptions struct {
	// Every keeps one row per Every samples. Values below 1 use DefaultEvery.
	Every int
	// Width is the number of '#' drawn for a volume of 1. Values below 1
	// use DefaultBarWidth.
	Width int
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.Every < 1 {
		o.Every = DefaultEvery
	}
	if o.Width < 1 {
		o.Width = DefaultBarWidth
	}
	return o
}

// Bar returns the bar for a single volume.
func Bar(volume float64, width int) string {
	n := int(math.Round(volume * float64(width)))
	if n < 0 {
		n = 0
	}
	return strings.Repeat("#", n)
}

// RenderBars writes one "<t>s | ####" row per kept sample.
func RenderBars(w io.Writer, times, volumes []float64, opts RenderOptions) error {
	if len(times) != len(volumes) {
		return fmt.Errorf("times and volumes differ in length: %d != %d", len(times), len(volumes))
	}

	opts = opts.withDefaults()
	for i := 0; i < len(times); i += opts.Every {
		if _, err := fmt.Fprintf(w, "%.1fs | %s\n", times[i], Bar(volumes[i], opts.Width)); err != nil {
			return err
		}
	}
	return nil
}
