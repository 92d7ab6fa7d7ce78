// Package report renders sampled breathing curves as PDF documents.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Plot area on an A4 landscape page, in millimetres.
const (
	plotLeft   = 25.0
	plotTop    = 40.0
	plotWidth  = 240.0
	plotHeight = 110.0
)

// Summary describes a sampled curve.
type Summary struct {
	Samples  int
	Duration float64
	Min      float64
	Max      float64
	Mean     float64
}

// Summarize computes a Summary of the curve.
func Summarize(times, volumes []float64) Summary {
	s := Summary{Samples: len(volumes)}
	if len(volumes) == 0 {
		return s
	}
	if len(times) > 0 {
		s.Duration = times[len(times)-1]
	}

	s.Min, s.Max = volumes[0], volumes[0]
	var sum float64
	for _, v := range volumes {
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
		sum += v
	}
	s.Mean = sum / float64(len(volumes))
	return s
}

// Write renders a one-page report with a framed plot of the curve.
func Write(w io.Writer, title string, times, volumes []float64) error {
	if len(times) != len(volumes) {
		return pkgerrors.Errorf("times and volumes differ in length: %d != %d", len(times), len(volumes))
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	s := Summarize(times, volumes)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Samples: %d   Duration: %.1fs   Volume min/max/mean: %.2f / %.2f / %.2f",
		s.Samples, s.Duration, s.Min, s.Max, s.Mean))
	pdf.Ln(8)

	drawAxes(pdf, s.Duration)
	drawCurve(pdf, times, volumes, s.Duration)

	if err := pdf.Output(w); err != nil {
		return pkgerrors.Wrap(err, "failed to render pdf")
	}
	return nil
}

// WriteFile renders the report to path.
func WriteFile(path, title string, times, volumes []float64) error {
	fp, err := os.Create(path)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to create file %s", path)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", path)
		}
	}(fp)

	if err := Write(fp, title, times, volumes); err != nil {
		return pkgerrors.Wrapf(err, "failed to write report to %s", path)
	}

	logrus.WithFields(logrus.Fields{
		"path":    path,
		"samples": len(volumes),
	}).Debug("pdf report written")
	return nil
}

func drawAxes(pdf *fpdf.Fpdf, duration float64) {
	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.3)
	pdf.Rect(plotLeft, plotTop, plotWidth, plotHeight, "D")

	pdf.SetFont("Arial", "", 8)
	pdf.SetDrawColor(220, 220, 220)
	for _, v := range []float64{0, 0.25, 0.5, 0.75, 1} {
		y := plotTop + plotHeight*(1-v)
		pdf.Line(plotLeft, y, plotLeft+plotWidth, y)
		pdf.Text(plotLeft-10, y+1, fmt.Sprintf("%.2f", v))
	}

	ticks := 8
	for i := 0; i <= ticks; i++ {
		x := plotLeft + plotWidth*float64(i)/float64(ticks)
		pdf.Text(x-3, plotTop+plotHeight+6, fmt.Sprintf("%.1fs", duration*float64(i)/float64(ticks)))
	}
	pdf.Text(plotLeft+plotWidth/2-10, plotTop+plotHeight+13, "time (s)")
}

func drawCurve(pdf *fpdf.Fpdf, times, volumes []float64, duration float64) {
	if len(times) < 2 || duration <= 0 {
		return
	}

	pdf.SetDrawColor(40, 110, 220)
	pdf.SetLineWidth(0.5)

	px := func(i int) (float64, float64) {
		return plotLeft + plotWidth*times[i]/duration, plotTop + plotHeight*(1-volumes[i])
	}
	x0, y0 := px(0)
	for i := 1; i < len(times); i++ {
		x1, y1 := px(i)
		pdf.Line(x0, y0, x1, y1)
		x0, y0 = x1, y1
	}
}
