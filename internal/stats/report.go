package stats

import (
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/lssstats/internal/model"
	"github.com/verte-zerg/lssstats/internal/splittime"
)

// DefaultPrecision is the number of fractional digits reports print.
const DefaultPrecision = 2

const (
	dateLayout = "01/02/2006"
	timeLayout = "15:04:05"
	missing    = "-"
)

// ReportOptions controls the text report.
type ReportOptions struct {
	Precision int
	// Table appends a one-line-per-segment overview.
	Table bool
}

// reportWriter keeps the first write error so the report reads top to bottom.
type reportWriter struct {
	w   io.Writer
	err error
}

func (r *reportWriter) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

// RenderReport prints run metadata followed by every segment's statistics.
func RenderReport(w io.Writer, run model.RunSummary, opts ReportOptions) error {
	p := opts.Precision
	r := &reportWriter{w: w}
	r.printf("Game Name:      %s\n", run.GameName)
	r.printf("Category Name:  %s\n", run.CategoryName)
	r.printf("Layout Path:    %s\n", run.LayoutPath)
	r.printf("Timer Offset:   %s\n", run.Offset)
	r.printf("Runs Started:   %d\n", run.AttemptsStarted)
	r.printf("Runs Finished:  %d (%s)\n", run.AttemptsFinished, run.CompletionRate())
	r.printf("Sum of Best:    %s\n", run.SumOfBest.Display(p, missing))
	r.printf("Total Runtime:  %s\n", splittime.FormatPrecision(run.TotalRuntime, p))
	r.printf("Total Playtime: %s\n", splittime.FormatPrecision(run.TotalPlaytime, p))
	r.printf("\nSegments\n")
	for _, seg := range run.Segments {
		r.printf("%d. %s\n", seg.Index, seg.Name)
		r.printf("    - Split Time (PB):    %s\n", seg.SplitTimePB.Display(p, missing))
		r.printf("    - Segment Time (PB):  %s\n", seg.SegmentTimePB.Display(p, missing))
		r.printf("    - Best Time:          %s\n", describeSegmentTime(seg.Gold, p))
		r.printf("    - Worst Time:         %s\n", describeSegmentTime(seg.Worst, p))
		r.printf("    - Average Time:       %s\n", seg.Stats.Average.Display(p, missing))
		r.printf("    - Median Time:        %s\n", seg.Stats.Median.Display(p, missing))
		r.printf("    - Std Deviation:      %s\n", seg.Stats.StdDev.Display(p, missing))
		r.printf("    - Possible Time Save: %s\n", seg.PossibleTimeSave.Display(p, missing))
		r.printf("    - This segment is completed %s of the time.\n", seg.Stats.FinishRate)
		r.printf("    - This segment is above average %s of the time.\n\n", PercentLabel(seg.Stats.AboveAverageRate))
	}
	if r.err != nil {
		return r.err
	}
	if opts.Table {
		return RenderSegmentTable(w, run, p)
	}
	return nil
}

func describeSegmentTime(st model.SegmentTime, precision int) string {
	if !st.Time.IsSet() {
		return missing
	}
	text := st.Time.Display(precision, missing)
	switch {
	case st.Manual:
		return text + " (manually edited, no attempt recorded)."
	case st.StartedAt.IsZero():
		return fmt.Sprintf("%s, on attempt %d.", text, st.AttemptID)
	}
	return fmt.Sprintf("%s, on attempt %d, which started on %s at %s.",
		text, st.AttemptID, st.StartedAt.Format(dateLayout), st.StartedAt.Format(timeLayout))
}

// RenderSegmentTable prints one aligned row per segment.
func RenderSegmentTable(w io.Writer, run model.RunSummary, precision int) error {
	if len(run.Segments) == 0 {
		_, err := fmt.Fprintln(w, "No segments found.")
		return err
	}
	headers := []string{"#", "Segment", "PB Split", "PB Segment", "Best", "Average", "Std Dev", "Save", "Done", "Trend"}
	rows := make([][]string, 0, len(run.Segments))
	for _, seg := range run.Segments {
		rows = append(rows, []string{
			strconv.Itoa(seg.Index),
			seg.Name,
			seg.SplitTimePB.Display(precision, missing),
			seg.SegmentTimePB.Display(precision, missing),
			seg.Gold.Time.Display(precision, missing),
			seg.Stats.Average.Display(precision, missing),
			seg.Stats.StdDev.Display(precision, missing),
			seg.PossibleTimeSave.Display(precision, missing),
			seg.Stats.FinishRate.String(),
			Sparkline(lastN(SegmentCurve(seg), sparklineWidth)),
		})
	}
	rightAlign := map[int]bool{0: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

const sparklineWidth = 20

func lastN(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}
