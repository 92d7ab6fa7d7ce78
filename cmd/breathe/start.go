package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/breathe/pkg/config"
	"github.com/charlie0129/breathe/pkg/events"
	"github.com/charlie0129/breathe/pkg/pacer"
	"github.com/charlie0129/breathe/pkg/technique"
	"github.com/charlie0129/breathe/pkg/tui"
)

// pickTechnique resolves the technique to animate. An explicit argument
// wins, an interactive stdin gets the menu, and anything else falls back to
// the configured default.
func pickTechnique(args []string, in io.Reader, out io.Writer, conf config.Config) (technique.Technique, error) {
	if len(args) == 1 {
		return technique.Resolve(args[0]), nil
	}
	if isTerminal(in) {
		return pacer.Prompt(in, out)
	}
	return technique.Resolve(conf.DefaultTechnique()), nil
}

// logEvents writes session progress to the debug log until ch is closed.
func logEvents(ch <-chan events.Event) {
	for ev := range ch {
		switch ev.Name {
		case events.PhaseChanged:
			pc, err := events.DecodeAs[events.PhaseChangedEvent](ev)
			if err != nil {
				logrus.WithError(err).Warn("failed to decode phase event")
				continue
			}
			logrus.WithFields(logrus.Fields{
				"cycle":    pc.Cycle,
				"kind":     pc.Kind,
				"duration": pc.DurationSeconds,
			}).Debugf("phase %s", pc.Phase)
		case events.SessionEnded:
			se, err := events.DecodeAs[events.SessionEndedEvent](ev)
			if err != nil {
				logrus.WithError(err).Warn("failed to decode session event")
				continue
			}
			logrus.WithFields(logrus.Fields{
				"cycles":    se.Cycles,
				"cancelled": se.Cancelled,
			}).Debug("session ended")
		}
	}
}

// logSession logs the events of hub in the background. The returned func
// closes hub and blocks until every buffered event has been logged.
func logSession(hub *events.Hub) func() {
	ch := hub.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		logEvents(ch)
	}()
	return func() {
		hub.Close()
		<-done
	}
}

func NewStartCommand() *cobra.Command {
	var (
		useTUI   bool
		cycles   int
		interval time.Duration
		width    int
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:     "start [technique]",
		Aliases: []string{"visualize"},
		Short:   "Start a guided breathing session",
		GroupID: gBasic,
		Long: `Start a guided breathing session.

Available techniques are box, diaphragmatic and alternate-nostril. Without an
argument an interactive menu is shown, or the configured default technique is
used when stdin is not a terminal.

Press Ctrl+C to stop the session.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			t, err := pickTechnique(args, cmd.InOrStdin(), cmd.OutOrStdout(), conf)
			if err != nil {
				return fmt.Errorf("failed to select technique: %w", err)
			}

			if !cmd.Flags().Changed("interval") {
				interval = conf.TickInterval()
			}
			if !cmd.Flags().Changed("width") {
				width = conf.ProgressWidth()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logrus.WithFields(logrus.Fields{
				"technique": t.Key,
				"cycles":    cycles,
				"interval":  interval,
				"tui":       useTUI,
			}).Debug("starting session")

			if useTUI {
				return tui.Run(ctx, t, cmd.OutOrStdout(), tui.WithInterval(interval), tui.WithCycles(cycles))
			}

			hub := events.NewHub()
			wait := logSession(hub)
			defer wait()

			opts := []pacer.Option{
				pacer.WithEvents(hub),
				pacer.WithInterval(interval),
				pacer.WithWidth(width),
				pacer.WithCycles(cycles),
			}
			if noColor || !conf.Color() {
				opts = append(opts, pacer.WithColor(false))
			}
			return pacer.New(t, cmd.OutOrStdout(), opts...).Run(ctx)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&useTUI, "tui", false, "use the full-screen interface")
	f.IntVar(&cycles, "cycles", 0, "stop after this many cycles (0 runs until interrupted)")
	f.DurationVar(&interval, "interval", pacer.DefaultInterval, "delay between two frames")
	f.IntVar(&width, "width", pacer.DefaultWidth, "number of cells of the progress bar")
	f.BoolVar(&noColor, "no-color", false, "disable colored output")

	return cmd
}
