// Package pacer animates breathing phases on a plain text terminal.
package pacer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/breathe/pkg/events"
	"github.com/charlie0129/breathe/pkg/technique"
)

const (
	DefaultInterval = 50 * time.Millisecond
	DefaultWidth    = 20

	Farewell = "Namaste. 🙏"
)

// Pacer walks through the phases of a technique, redrawing a progress bar
// for the current phase on a single terminal line.
type Pacer struct {
	technique technique.Technique
	out       io.Writer
	clock     Clock
	interval  time.Duration
	width     int
	cycles    int
	colors    map[technique.Kind]*color.Color
	events    *events.Hub
}

var phaseAttrs = map[technique.Kind]color.Attribute{
	technique.KindInhale: color.FgGreen,
	technique.KindHold:   color.FgBlue,
	technique.KindExhale: color.FgRed,
}

// PhaseColor returns a new color for phases of kind k. Unknown kinds are
// drawn like a hold.
func PhaseColor(k technique.Kind) *color.Color {
	attr, ok := phaseAttrs[k]
	if !ok {
		attr = phaseAttrs[technique.KindHold]
	}
	return color.New(attr)
}

type Option func(*Pacer)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(p *Pacer) { p.clock = c }
}

// WithInterval sets the delay between two frames.
func WithInterval(d time.Duration) Option {
	return func(p *Pacer) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithWidth sets the number of cells of the progress bar.
func WithWidth(w int) Option {
	return func(p *Pacer) {
		if w > 0 {
			p.width = w
		}
	}
}

// WithCycles stops the pacer after n full cycles. Zero repeats until the
// context is cancelled.
func WithCycles(n int) Option {
	return func(p *Pacer) {
		if n >= 0 {
			p.cycles = n
		}
	}
}

// WithColor enables or disables ANSI colors regardless of the terminal.
func WithColor(enabled bool) Option {
	return func(p *Pacer) {
		for _, c := range p.colors {
			if enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
}

// WithEvents publishes phase changes and the end of the session to h.
func WithEvents(h *events.Hub) Option {
	return func(p *Pacer) { p.events = h }
}

// New creates a Pacer writing frames to out.
func New(t technique.Technique, out io.Writer, opts ...Option) *Pacer {
	p := &Pacer{
		technique: t,
		out:       out,
		clock:     realClock{},
		interval:  DefaultInterval,
		width:     DefaultWidth,
		colors: map[technique.Kind]*color.Color{
			technique.KindInhale: PhaseColor(technique.KindInhale),
			technique.KindHold:   PhaseColor(technique.KindHold),
			technique.KindExhale: PhaseColor(technique.KindExhale),
		},
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run animates the technique until ctx is cancelled or the configured
// number of cycles has elapsed. Either way it ends with a farewell line
// and returns nil; only write errors are reported.
func (p *Pacer) Run(ctx context.Context) error {
	if _, err := fmt.Fprintf(p.out, "Starting %s...\nPress Ctrl+C to stop.\n\n", p.technique.Name); err != nil {
		return err
	}
	if len(p.technique.Phases) == 0 {
		return p.farewell()
	}

	logrus.WithFields(logrus.Fields{
		"technique": p.technique.Key,
		"cycle":     p.technique.CycleDuration(),
		"cycles":    p.cycles,
		"interval":  p.interval,
	}).Debug("pacer started")

	cycle := 0
	for ; p.cycles == 0 || cycle < p.cycles; cycle++ {
		for _, ph := range p.technique.Phases {
			p.publishPhase(cycle+1, ph)
			stopped, err := p.runPhase(ctx, ph)
			if err != nil {
				return err
			}
			if stopped {
				logrus.Debugf("pacer stopped during cycle %d", cycle+1)
				p.publishEnd(cycle, true)
				return p.farewell()
			}
		}
	}

	p.publishEnd(cycle, false)
	return p.farewell()
}

func (p *Pacer) publishPhase(cycle int, ph technique.Phase) {
	p.events.Publish(events.PhaseChanged, events.PhaseChangedEvent{
		Technique:       p.technique.Key,
		Cycle:           cycle,
		Phase:           ph.Name,
		Kind:            string(ph.Kind()),
		DurationSeconds: int(ph.Duration / time.Second),
		Ts:              p.clock.Now().Unix(),
	})
}

func (p *Pacer) publishEnd(completed int, cancelled bool) {
	p.events.Publish(events.SessionEnded, events.SessionEndedEvent{
		Technique: p.technique.Key,
		Cycles:    completed,
		Cancelled: cancelled,
		Ts:        p.clock.Now().Unix(),
	})
}

// runPhase draws frames for one phase. It reports whether ctx was
// cancelled before the phase ran to completion.
func (p *Pacer) runPhase(ctx context.Context, ph technique.Phase) (bool, error) {
	start := p.clock.Now()
	for {
		if ctx.Err() != nil {
			return true, nil
		}

		elapsed := p.clock.Now().Sub(start)
		if elapsed >= ph.Duration {
			return false, nil
		}

		if _, err := io.WriteString(p.out, p.Frame(ph, elapsed)); err != nil {
			return false, err
		}

		select {
		case <-ctx.Done():
			return true, nil
		case <-p.clock.After(p.interval):
		}
	}
}

// Frame renders the terminal line for phase ph at elapsed time.
func (p *Pacer) Frame(ph technique.Phase, elapsed time.Duration) string {
	line := fmt.Sprintf("Phase: %s (%ds) [%s]", ph.Name, int(ph.Duration/time.Second), ProgressBar(elapsed, ph.Duration, p.width))
	return "\r" + p.colors[ph.Kind()].Sprint(line) + "    "
}

// ProgressBar fills int(elapsed/total*width) cells and pads the rest.
func ProgressBar(elapsed, total time.Duration, width int) string {
	filled := width
	if total > 0 {
		filled = int(float64(elapsed) / float64(total) * float64(width))
	}
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("-", width-filled)
}

func (p *Pacer) farewell() error {
	_, err := fmt.Fprintf(p.out, "\n\n%s\n", Farewell)
	return err
}
