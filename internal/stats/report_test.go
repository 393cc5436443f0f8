package stats_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/lssstats/internal/lss"
	"github.com/verte-zerg/lssstats/internal/model"
	"github.com/verte-zerg/lssstats/internal/stats"
	"github.com/verte-zerg/lssstats/internal/testutil"
)

func readSample(t *testing.T) model.RunSummary {
	t.Helper()
	run, err := lss.NewReader().Read(testutil.WriteSample(t))
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	return run
}

func TestRenderReport(t *testing.T) {
	run := readSample(t)
	var buf bytes.Buffer
	if err := stats.RenderReport(&buf, run, stats.ReportOptions{Precision: stats.DefaultPrecision}); err != nil {
		t.Fatalf("render report: %v", err)
	}
	out := buf.String()
	want := []string{
		"Game Name:      Sample Quest\n",
		"Category Name:  Any%\n",
		"Runs Started:   3\n",
		"Runs Finished:  2 (66.67%)\n",
		"Sum of Best:    00:24:00.00\n",
		"Total Playtime: 01:00:54.00\n",
		"1. Forest\n",
		"    - Split Time (PB):    00:09:30.00\n",
		"    - Best Time:          00:09:30.00, on attempt 3, which started on 09/17/2022 at 20:00:00.\n",
		"    - Worst Time:         00:11:00.00, on attempt 2, which started on 09/16/2022 at 10:00:00.\n",
		"    - This segment is above average 66.67% of the time.\n",
		"2. Temple\n",
		"    - Best Time:          00:08:00.00 (manually edited, no attempt recorded).\n",
		"    - Possible Time Save: 00:01:00.00\n",
		"    - This segment is completed 66.67% of the time.\n",
	}
	for _, line := range want {
		if !strings.Contains(out, line) {
			t.Fatalf("expected report to contain %q, got:\n%s", line, out)
		}
	}
	if strings.Contains(out, "Trend") {
		t.Fatalf("segment table must be opt-in")
	}
}

func TestRenderReportWithTable(t *testing.T) {
	run := readSample(t)
	var buf bytes.Buffer
	if err := stats.RenderReport(&buf, run, stats.ReportOptions{Precision: 0, Table: true}); err != nil {
		t.Fatalf("render report: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Trend") {
		t.Fatalf("expected segment table header")
	}
	if !strings.Contains(out, "    - Average Time:       00:10:10\n") {
		t.Fatalf("expected whole-second precision, got:\n%s", out)
	}
}

func TestRenderReportAbsentValues(t *testing.T) {
	run := model.RunSummary{
		GameName: "Empty",
		Segments: []model.SegmentRecord{{Index: 1, Name: "Nothing"}},
	}
	var buf bytes.Buffer
	if err := stats.RenderReport(&buf, run, stats.ReportOptions{Precision: 2}); err != nil {
		t.Fatalf("render report: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "    - Best Time:          -\n") {
		t.Fatalf("expected placeholder for absent gold, got:\n%s", out)
	}
	if !strings.Contains(out, "Runs Finished:  0 (? %)\n") {
		t.Fatalf("expected undefined completion rate, got:\n%s", out)
	}
}

func TestRenderCharts(t *testing.T) {
	run := readSample(t)
	var buf bytes.Buffer
	opts := stats.ChartOptions{TotalWidth: 60, Height: 4, Window: 2}
	if err := stats.RenderAllCharts(&buf, run, opts); err != nil {
		t.Fatalf("render charts: %v", err)
	}
	out := buf.String()
	for _, title := range []string{
		"Standard deviation per segment",
		"Above average rate per segment",
		"Possible time save per segment",
		"Run duration over time",
	} {
		if !strings.Contains(out, title) {
			t.Fatalf("expected %q in output", title)
		}
	}
	if !strings.Contains(out, "2. Temple") {
		t.Fatalf("expected segment labels in bar charts")
	}

	buf.Reset()
	if err := stats.RenderSegmentCurve(&buf, run.Segments[0], opts); err != nil {
		t.Fatalf("render curve: %v", err)
	}
	if !strings.Contains(buf.String(), "Segment 1. Forest") || !strings.Contains(buf.String(), "Moving avg (2)") {
		t.Fatalf("unexpected curve output:\n%s", buf.String())
	}
}

func TestRunCurveNoFinishedRuns(t *testing.T) {
	var buf bytes.Buffer
	if err := stats.RenderRunCurve(&buf, model.RunSummary{}, stats.ChartOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "No finished runs.\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
