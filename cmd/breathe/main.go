package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/charlie0129/breathe/pkg/waveform"
)

var (
	logLevel   = "info"
	configPath = defaultConfigPath()
)

var (
	gBasic        = "Basic:"
	gAdvanced     = "Advanced:"
	commandGroups = []string{
		gBasic,
		gAdvanced,
	}
)

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "breathe.json"
	}
	return filepath.Join(dir, "breathe", "config.json")
}

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	var limitErr *waveform.ResourceLimitError
	if errors.As(err, &limitErr) {
		fmt.Fprintf(os.Stderr, "\nError: %s\n", limitErr.Reason)
		fmt.Fprintf(os.Stderr, "  - Duration must be at most %d seconds\n", waveform.MaxDurationSeconds)
		fmt.Fprintf(os.Stderr, "  - Sample rate must be at most %dHz\n", waveform.MaxSampleRate)
		fmt.Fprintf(os.Stderr, "  - A curve may hold at most %d samples\n", waveform.MaxTotalSamples)
	} else if errors.Is(err, waveform.ErrInvalidArgument) {
		fmt.Fprintln(os.Stderr, "\nError: duration and sample rate must not be negative")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breathe",
		Short: "breathe is a breathing-pace visualizer and lung-volume curve generator",
		Long: `breathe is a breathing-pace visualizer and lung-volume curve generator.

It animates box, diaphragmatic and alternate-nostril breathing in the terminal,
and computes normalized lung-volume curves that can be printed as ASCII bars,
JSON or a PDF plot.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewStartCommand(),
		NewCurveCommand(),
		NewTechniquesCommand(),
		NewConfigCommand(),
		NewVersionCommand(),
	)

	return cmd
}
