package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/breathe/pkg/report"
	"github.com/charlie0129/breathe/pkg/waveform"
)

type curve struct {
	Technique       waveform.Technique `json:"technique"`
	Title           string             `json:"title"`
	DurationSeconds int                `json:"durationSeconds"`
	SampleRate      int                `json:"sampleRate"`
	Samples         []waveform.Sample  `json:"samples"`

	times   []float64
	volumes []float64
}

func generateCurves(techniques []waveform.Technique, durationSeconds, sampleRate int) ([]curve, error) {
	start := time.Now()
	curves := make([]curve, 0, len(techniques))
	for _, t := range techniques {
		times, volumes, err := waveform.Generate(durationSeconds, sampleRate, t)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s curve: %w", t, err)
		}
		curves = append(curves, curve{
			Technique:       t,
			Title:           t.Title(),
			DurationSeconds: durationSeconds,
			SampleRate:      sampleRate,
			times:           times,
			volumes:         volumes,
		})
	}
	logrus.WithFields(logrus.Fields{
		"curves":     len(curves),
		"duration":   durationSeconds,
		"sampleRate": sampleRate,
	}).Infof("computed models in %s", time.Since(start))
	return curves, nil
}

// pdfPath derives one file per technique when several curves share a path.
func pdfPath(path string, t waveform.Technique, multiple bool) string {
	if !multiple {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + string(t) + ext
}

func writeCurvesText(w io.Writer, curves []curve, opts waveform.RenderOptions) error {
	for _, c := range curves {
		if _, err := fmt.Fprintf(w, "\n--- %s ---\n", c.Title); err != nil {
			return err
		}
		if err := waveform.RenderBars(w, c.times, c.volumes, opts); err != nil {
			return err
		}
	}
	return nil
}

func writeCurvesJSON(w io.Writer, curves []curve) error {
	for i := range curves {
		curves[i].Samples = waveform.Samples(curves[i].times, curves[i].volumes)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(curves)
}

func NewCurveCommand() *cobra.Command {
	var (
		techniqueName string
		duration      int
		sampleRate    int
		every         int
		width         int
		format        string
		pdf           string
	)

	cmd := &cobra.Command{
		Use:     "curve",
		Short:   "Compute lung-volume curves",
		GroupID: gBasic,
		Long: `Compute lung-volume curves.

The normalized lung volume (0 is empty, 1 is full) is sampled over time and
printed as ASCII bars or JSON, and can also be plotted to a PDF file.

Without --technique both the box and the diaphragmatic curves are computed.
Requests are capped at 3600 seconds, 1000Hz and 10000000 samples.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			flags := cmd.Flags()
			if !flags.Changed("duration") {
				duration = conf.DurationSeconds()
			}
			if !flags.Changed("sample-rate") {
				sampleRate = conf.SampleRate()
			}
			if !flags.Changed("every") {
				every = conf.DownsampleEvery()
			}
			if !flags.Changed("width") {
				width = conf.BarWidth()
			}
			if format != "text" && format != "json" {
				return fmt.Errorf("unknown format %q, expected text or json", format)
			}

			techniques := []waveform.Technique{waveform.Box, waveform.Diaphragmatic}
			if techniqueName != "" {
				techniques = []waveform.Technique{waveform.ParseTechnique(techniqueName)}
			}

			curves, err := generateCurves(techniques, duration, sampleRate)
			if err != nil {
				return err
			}

			if pdf != "" {
				for _, c := range curves {
					path := pdfPath(pdf, c.Technique, len(curves) > 1)
					if err := report.WriteFile(path, c.Title, c.times, c.volumes); err != nil {
						return fmt.Errorf("failed to write pdf: %w", err)
					}
					logrus.Infof("wrote %s curve to %s", c.Technique, path)
				}
			}

			if format == "json" {
				return writeCurvesJSON(cmd.OutOrStdout(), curves)
			}
			return writeCurvesText(cmd.OutOrStdout(), curves, waveform.RenderOptions{Every: every, Width: width})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&techniqueName, "technique", "t", "", "technique to compute (box, diaphragmatic, sine)")
	f.IntVarP(&duration, "duration", "d", 32, "duration in seconds")
	f.IntVarP(&sampleRate, "sample-rate", "r", 10, "samples per second")
	f.IntVar(&every, "every", waveform.DefaultEvery, "print every n-th sample")
	f.IntVar(&width, "width", waveform.DefaultBarWidth, "width of a full bar")
	f.StringVar(&format, "format", "text", "output format (text, json)")
	f.StringVar(&pdf, "pdf", "", "also plot the curve to this PDF file")

	return cmd
}
