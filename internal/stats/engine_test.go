package stats

import (
	"testing"
	"time"

	"github.com/verte-zerg/lssstats/internal/model"
	"github.com/verte-zerg/lssstats/internal/splittime"
)

func history(pairs ...any) []model.HistoryEntry {
	out := make([]model.HistoryEntry, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		d, _ := splittime.MustParse(pairs[i+1].(string)).Duration()
		out = append(out, model.HistoryEntry{AttemptID: pairs[i].(int), Duration: d})
	}
	return out
}

func TestTwoAttemptScenario(t *testing.T) {
	h := history(1, "00:01:30.00", 2, "00:01:20.00")

	if got := Average(h).String(); got != "00:01:25.0000000" {
		t.Fatalf("unexpected average %q", got)
	}
	if got := Median(h).String(); got != "00:01:25.0000000" {
		t.Fatalf("unexpected median %q", got)
	}
	best, ok := Best(h)
	if !ok || best.AttemptID != 2 || best.Duration != 80*time.Second {
		t.Fatalf("unexpected best %+v", best)
	}
	worst, ok := Worst(h)
	if !ok || worst.AttemptID != 1 {
		t.Fatalf("unexpected worst %+v", worst)
	}
	if got := FinishRate(len(h), 2).String(); got != "100.00%" {
		t.Fatalf("unexpected finish rate %q", got)
	}
	if got := AboveAverageRate(h); got != 0.5 {
		t.Fatalf("unexpected above average rate %v", got)
	}
	if got := StdDev(h).String(); got != "00:00:05.0000000" {
		t.Fatalf("unexpected std dev %q", got)
	}
}

func TestSingleSample(t *testing.T) {
	h := history(7, "00:00:42.1234567")
	if Average(h).String() != "00:00:42.1234567" || Median(h).String() != "00:00:42.1234567" {
		t.Fatalf("average and median must equal the only sample: %q %q", Average(h), Median(h))
	}
	d, ok := StdDev(h).Duration()
	if !ok || d != 0 {
		t.Fatalf("expected zero std dev, got %v (set=%v)", d, ok)
	}
}

func TestEmptyHistory(t *testing.T) {
	if Average(nil).IsSet() || Median(nil).IsSet() || StdDev(nil).IsSet() {
		t.Fatalf("expected absent aggregates for empty history")
	}
	if AboveAverageRate(nil) != 0 {
		t.Fatalf("expected zero above average rate")
	}
	if _, ok := Best(nil); ok {
		t.Fatalf("expected no best entry")
	}
}

func TestMedianBounds(t *testing.T) {
	h := history(3, "00:00:10", 1, "00:00:50", 9, "00:00:20", 4, "00:00:35", 2, "00:00:11")
	med, _ := Median(h).Duration()
	best, _ := Best(h)
	worst, _ := Worst(h)
	if med < best.Duration || med > worst.Duration {
		t.Fatalf("median %v outside [%v, %v]", med, best.Duration, worst.Duration)
	}
	if med != 20*time.Second {
		t.Fatalf("expected odd-count median 20s, got %v", med)
	}
	if sd, _ := StdDev(h).Duration(); sd < 0 {
		t.Fatalf("negative std dev %v", sd)
	}
}

func TestTiesPreferLowestAttemptID(t *testing.T) {
	h := history(9, "00:00:10", 4, "00:00:10", 6, "00:00:30", 2, "00:00:30")
	best, _ := Best(h)
	if best.AttemptID != 4 {
		t.Fatalf("expected best attempt 4, got %d", best.AttemptID)
	}
	worst, _ := Worst(h)
	if worst.AttemptID != 2 {
		t.Fatalf("expected worst attempt 2, got %d", worst.AttemptID)
	}
	id, ok := GoldAttribution(h, 10*time.Second)
	if !ok || id != 4 {
		t.Fatalf("expected gold attribution 4, got %d (%v)", id, ok)
	}
	if _, ok := GoldAttribution(h, 11*time.Second); ok {
		t.Fatalf("expected no attribution for unmatched gold")
	}
}

func TestFinishRateUndefinedWithoutAttempts(t *testing.T) {
	if got := FinishRate(0, 0).String(); got != "? %" {
		t.Fatalf("expected sentinel, got %q", got)
	}
	if got := FinishRate(1, 3).String(); got != "33.33%" {
		t.Fatalf("unexpected rate %q", got)
	}
}

func TestPossibleTimeSaveClamps(t *testing.T) {
	pb := splittime.MustParse("00:00:45.00")
	gold := splittime.MustParse("00:00:50.00")
	if got := PossibleTimeSave(pb, gold).String(); got != splittime.ZeroText {
		t.Fatalf("expected clamped save, got %q", got)
	}
	if PossibleTimeSave(splittime.None, gold).IsSet() {
		t.Fatalf("expected absent save without PB segment")
	}
}

func TestHistoryTotal(t *testing.T) {
	h := history(1, "00:00:10", 2, "00:00:05.5")
	if got := HistoryTotal(h); got != 15500*time.Millisecond {
		t.Fatalf("unexpected total %v", got)
	}
}

func TestAboveAverageRateUsesReportedAverage(t *testing.T) {
	h := history(1, "00:00:00.0000000", 2, "00:00:00.0000000", 3, "00:00:00.0000001")
	if got := Average(h).String(); got != "00:00:00.0000000" {
		t.Fatalf("expected average to round to zero, got %q", got)
	}
	if got := AboveAverageRate(h); got != 0 {
		t.Fatalf("expected no entry faster than the printed average, got %v", got)
	}
}
