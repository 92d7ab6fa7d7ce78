package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/charlie0129/breathe/pkg/waveform"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{0, 1, 2, 3}, []float64{0, 1, 0.5, 0.5})
	if s.Samples != 4 || s.Duration != 3 {
		t.Errorf("Summarize() = %+v", s)
	}
	if s.Min != 0 || s.Max != 1 || math.Abs(s.Mean-0.5) > 1e-9 {
		t.Errorf("Summarize() = %+v", s)
	}

	if empty := Summarize(nil, nil); empty.Samples != 0 || empty.Mean != 0 {
		t.Errorf("Summarize(empty) = %+v", empty)
	}
}

func TestWrite(t *testing.T) {
	times, volumes, err := waveform.Generate(32, 10, waveform.Box)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, "Box Breathing", times, volumes); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestWriteEmptyCurve(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "Empty", nil, nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected a document even without samples")
	}
}

func TestWriteLengthMismatch(t *testing.T) {
	if err := Write(&bytes.Buffer{}, "bad", []float64{0}, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestWriteFile(t *testing.T) {
	times, volumes, err := waveform.Generate(10, 10, waveform.Diaphragmatic)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "curve.pdf")
	if err := WriteFile(path, "Diaphragmatic", times, volumes); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("empty pdf file")
	}
}
