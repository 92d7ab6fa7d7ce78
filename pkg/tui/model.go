// Package tui is a full-screen breathing pacer built on bubbletea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/x/ansi"

	"github.com/charlie0129/breathe/pkg/pacer"
	"github.com/charlie0129/breathe/pkg/technique"
)

const (
	minBarWidth = 20
	maxBarWidth = 60
)

type tickMsg time.Time

// Model animates one technique. The session clock is taken from tick
// message timestamps, so the model never reads the wall clock itself.
type Model struct {
	technique technique.Technique
	interval  time.Duration
	maxCycles int

	start   time.Time
	elapsed time.Duration

	bar      progress.Model
	spring   harmonica.Spring
	gauge    float64
	gaugeVel float64

	width    int
	quitting bool
	done     bool
}

type Option func(*Model)

// WithInterval sets the redraw interval.
func WithInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithCycles quits after n full cycles. Zero runs until the user quits.
func WithCycles(n int) Option {
	return func(m *Model) {
		if n >= 0 {
			m.maxCycles = n
		}
	}
}

// New creates a model for t.
func New(t technique.Technique, opts ...Option) Model {
	m := Model{
		technique: t,
		interval:  pacer.DefaultInterval,
		bar: progress.New(
			progress.WithScaledGradient("#58A6FF", "#3FB950"),
			progress.WithoutPercentage(),
		),
	}
	for _, o := range opts {
		o(&m)
	}
	m.bar.Width = minBarWidth

	fps := int(time.Second / m.interval)
	m.spring = harmonica.NewSpring(harmonica.FPS(max(fps, 1)), 6.0, 1.0)
	return m
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

func (m Model) Init() tea.Cmd {
	return tick(m.interval)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuit(msg) {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(max(msg.Width-8, minBarWidth), maxBarWidth)
		return m, nil

	case tickMsg:
		m = m.advance(time.Time(msg))
		if m.done {
			m.quitting = true
			return m, tea.Quit
		}
		return m, tick(m.interval)
	}

	return m, nil
}

func (m Model) advance(now time.Time) Model {
	if m.start.IsZero() {
		m.start = now
	}
	m.elapsed = now.Sub(m.start)

	if cycle := m.technique.CycleDuration(); m.maxCycles > 0 && cycle > 0 && m.elapsed >= time.Duration(m.maxCycles)*cycle {
		m.done = true
	}

	m.gauge, m.gaugeVel = m.spring.Update(m.gauge, m.gaugeVel, m.technique.VolumeAt(m.elapsed))
	return m
}

// Phase returns the active phase and the fraction of it already elapsed.
func (m Model) Phase() (technique.Phase, float64) {
	if len(m.technique.Phases) == 0 {
		return technique.Phase{}, 0
	}
	i, into := m.technique.PhaseAt(m.elapsed)
	p := m.technique.Phases[i]
	if p.Duration <= 0 {
		return p, 1
	}
	return p, float64(into) / float64(p.Duration)
}

// Cycle returns the 1-based number of the running cycle.
func (m Model) Cycle() int {
	cycle := m.technique.CycleDuration()
	if cycle <= 0 {
		return 1
	}
	return int(m.elapsed/cycle) + 1
}

// Gauge returns the spring-smoothed lung volume in [0, 1].
func (m Model) Gauge() float64 {
	return math.Max(0, math.Min(1, m.gauge))
}

// Done reports whether the cycle budget has been spent.
func (m Model) Done() bool { return m.done }

func (m Model) View() string {
	if m.quitting {
		return "\n  " + farewellStyle.Render(pacer.Farewell) + "\n\n"
	}

	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render(m.technique.Name) + "  " + timeStyle.Render(fmt.Sprintf("cycle %d", m.Cycle())) + "\n")
	b.WriteString("  " + descStyle.Render(m.clamp(m.technique.Description)) + "\n\n")

	p, frac := m.Phase()
	left := p.Duration - time.Duration(frac*float64(p.Duration))
	label := phaseStyles[p.Kind()].Render(p.Name)
	b.WriteString(fmt.Sprintf("  %s  %s\n", label, timeStyle.Render(fmt.Sprintf("%ds left", int(math.Ceil(left.Seconds()))))))
	b.WriteString("  " + m.bar.ViewAs(frac) + "\n\n")

	b.WriteString("  " + timeStyle.Render("lungs ") + gaugeBar(m.Gauge(), m.bar.Width) + "\n\n")
	b.WriteString("  " + helpStyle.Render("q quit") + "\n")
	return b.String()
}

func (m Model) clamp(s string) string {
	if m.width <= 4 || ansi.StringWidth(s) <= m.width-4 {
		return s
	}
	return ansi.Truncate(s, m.width-4, "…")
}

func gaugeBar(v float64, width int) string {
	filled := int(math.Round(v * float64(width)))
	filled = max(0, min(filled, width))
	return "▕" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "▏"
}

// Run shows the model full screen until the user quits, the cycle budget
// is spent, or ctx is cancelled. The farewell is written to out after the
// alternate screen has been left.
func Run(ctx context.Context, t technique.Technique, out io.Writer, opts ...Option) error {
	return run(ctx, New(t, opts...), out, tea.WithAltScreen())
}

func run(ctx context.Context, m Model, out io.Writer, extra ...tea.ProgramOption) error {
	popts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(out)}, extra...)
	_, err := tea.NewProgram(m, popts...).Run()
	if err != nil && !(errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return err
	}
	_, err = fmt.Fprintf(out, "\n\n%s\n", pacer.Farewell)
	return err
}
