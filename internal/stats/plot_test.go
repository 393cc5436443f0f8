package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Test Plot", []Series{
		{Name: "A", Values: []float64{1, 2, 3, 2, 1}},
		{Name: "B", Values: []float64{1, 1, 2, 3, 4}},
	}, PlotOptions{Width: 10, Height: 4})
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Test Plot") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "Range: 1.00 to 4.00") {
		t.Fatalf("expected shared range in output, got:\n%s", out)
	}
	if !strings.Contains(out, "Legend:") {
		t.Fatalf("expected legend in output")
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1+1+4+1 {
		t.Fatalf("expected %d lines of output, got %d", 7, len(lines))
	}
	if !strings.HasPrefix(lines[2], "     4.00 │ ") {
		t.Fatalf("expected top axis label, got %q", lines[2])
	}
}

func TestPlotSeriesSkipsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "Empty", []Series{{Name: "A"}}, PlotOptions{Width: 10}); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestPlotBars(t *testing.T) {
	var buf bytes.Buffer
	err := PlotBars(&buf, "Bars", []Bar{
		{Label: "long", Value: 10},
		{Label: "half", Value: 5},
		{Label: "none", Value: 0},
	}, PlotOptions{Width: 40})
	if err != nil {
		t.Fatalf("PlotBars failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected title and 3 bars, got %d lines", len(lines))
	}
	full := strings.Count(lines[1], string(barFull))
	half := strings.Count(lines[2], string(barFull))
	if full == 0 || half != full/2 {
		t.Fatalf("expected half-length bar, got %d and %d", full, half)
	}
	if strings.ContainsRune(lines[3], barFull) {
		t.Fatalf("expected empty bar for zero value")
	}
	for _, line := range lines[1:] {
		if got := runewidth.StringWidth(line); got != runewidth.StringWidth(lines[1]) {
			t.Fatalf("expected rows of equal width, got %d for %q", got, line)
		}
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got != 80-axisLabelWidth-3 {
		t.Fatalf("unexpected width %d", got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{1, 1, 1}); got != "+++" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
	got := Sparkline([]float64{0, 10})
	if got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
}
