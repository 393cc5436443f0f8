package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/lssstats/internal/model"
	"github.com/verte-zerg/lssstats/internal/splittime"
)

const sparkChars = " .:-=+*#%@"

// ChartOptions sizes the graphs.
type ChartOptions struct {
	// TotalWidth is the terminal width to fit; 0 detects it.
	TotalWidth int
	Height     int
	// Window is the moving-average window for curves.
	Window int
	Color  bool
}

func (o ChartOptions) plot() PlotOptions {
	width := 0
	if o.TotalWidth > 0 {
		width = PlotWidthFor(o.TotalWidth)
	}
	return PlotOptions{Width: width, Height: o.Height, Color: o.Color, Format: ClockLabel}
}

func (o ChartOptions) bars(format func(float64) string) PlotOptions {
	return PlotOptions{Width: o.TotalWidth, Color: o.Color, Format: format}
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 || len(values) == 0 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(min(i+1, window))
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := seriesMinMax([]Series{{Values: values}})
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// ClockLabel renders seconds as HH:MM:SS.
func ClockLabel(seconds float64) string {
	return splittime.FromSeconds(seconds).Display(0, "")
}

// PreciseClockLabel renders seconds as HH:MM:SS.ff.
func PreciseClockLabel(seconds float64) string {
	return splittime.FromSeconds(seconds).Display(DefaultPrecision, "")
}

// PercentLabel renders a 0..1 fraction as a percentage.
func PercentLabel(fraction float64) string {
	return fmt.Sprintf("%.2f%%", fraction*100)
}

// SegmentCurve returns the segment's durations in seconds, in history order.
func SegmentCurve(seg model.SegmentRecord) []float64 {
	return historySeconds(seg.History)
}

// RunCurve returns finishing times in seconds of completed attempts, oldest first.
func RunCurve(run model.RunSummary) []float64 {
	finished := run.FinishedRuns()
	out := make([]float64, 0, len(finished))
	for _, a := range finished {
		if s, ok := a.FinishingTime.Seconds(); ok {
			out = append(out, s)
		}
	}
	return out
}

// RenderSegmentCurve plots one segment's duration across attempts with its moving average.
func RenderSegmentCurve(w io.Writer, seg model.SegmentRecord, opts ChartOptions) error {
	values := SegmentCurve(seg)
	if len(values) == 0 {
		_, err := fmt.Fprintf(w, "No history for segment %d. %s\n\n", seg.Index, seg.Name)
		return err
	}
	return PlotSeries(w, fmt.Sprintf("Segment %d. %s: duration per attempt", seg.Index, seg.Name), []Series{
		{Name: "Duration", Values: values},
		{Name: fmt.Sprintf("Moving avg (%d)", max(opts.Window, 1)), Values: MovingAverage(values, opts.Window)},
	}, opts.plot())
}

// RenderRunCurve plots the finishing time of every completed run.
func RenderRunCurve(w io.Writer, run model.RunSummary, opts ChartOptions) error {
	values := RunCurve(run)
	if len(values) == 0 {
		_, err := fmt.Fprintln(w, "No finished runs.")
		return err
	}
	return PlotSeries(w, "Run duration over time", []Series{
		{Name: "Finishing time", Values: values},
		{Name: fmt.Sprintf("Moving avg (%d)", max(opts.Window, 1)), Values: MovingAverage(values, opts.Window)},
	}, opts.plot())
}

// RenderStdDevChart draws the standard deviation of every segment.
func RenderStdDevChart(w io.Writer, run model.RunSummary, opts ChartOptions) error {
	return PlotBars(w, "Standard deviation per segment", segmentBars(run, func(seg model.SegmentRecord) float64 {
		s, _ := seg.Stats.StdDev.Seconds()
		return s
	}), opts.bars(PreciseClockLabel))
}

// RenderAboveAverageChart draws how often each segment beats its average.
func RenderAboveAverageChart(w io.Writer, run model.RunSummary, opts ChartOptions) error {
	return PlotBars(w, "Above average rate per segment", segmentBars(run, func(seg model.SegmentRecord) float64 {
		return seg.Stats.AboveAverageRate
	}), opts.bars(PercentLabel))
}

// RenderTimeSaveChart draws the possible time save of every segment.
func RenderTimeSaveChart(w io.Writer, run model.RunSummary, opts ChartOptions) error {
	return PlotBars(w, "Possible time save per segment", segmentBars(run, func(seg model.SegmentRecord) float64 {
		s, _ := seg.PossibleTimeSave.Seconds()
		return s
	}), opts.bars(PreciseClockLabel))
}

// RenderAllCharts prints every per-run graph followed by the run curve.
func RenderAllCharts(w io.Writer, run model.RunSummary, opts ChartOptions) error {
	renderers := []func(io.Writer, model.RunSummary, ChartOptions) error{
		RenderStdDevChart,
		RenderAboveAverageChart,
		RenderTimeSaveChart,
		RenderRunCurve,
	}
	for _, render := range renderers {
		if err := render(w, run, opts); err != nil {
			return err
		}
	}
	return nil
}

func segmentBars(run model.RunSummary, value func(model.SegmentRecord) float64) []Bar {
	bars := make([]Bar, 0, len(run.Segments))
	for _, seg := range run.Segments {
		bars = append(bars, Bar{
			Label: fmt.Sprintf("%d. %s", seg.Index, seg.Name),
			Value: value(seg),
		})
	}
	return bars
}
