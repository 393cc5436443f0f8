package model

import (
	"testing"

	"github.com/verte-zerg/lssstats/internal/splittime"
)

func TestRateString(t *testing.T) {
	if got := (Rate{}).String(); got != "? %" {
		t.Fatalf("expected undefined sentinel, got %q", got)
	}
	if got := (Rate{Percent: 66.666, Defined: true}).String(); got != "66.67%" {
		t.Fatalf("unexpected rate %q", got)
	}
}

func TestRunSummaryHelpers(t *testing.T) {
	run := RunSummary{
		AttemptsStarted:  4,
		AttemptsFinished: 1,
		Attempts: []AttemptRecord{
			{ID: 1},
			{ID: 2, FinishingTime: splittime.MustParse("00:30:00")},
			{ID: 3},
			{ID: 4},
		},
	}
	if got := run.CompletionRate().String(); got != "25.00%" {
		t.Fatalf("unexpected completion rate %q", got)
	}
	finished := run.FinishedRuns()
	if len(finished) != 1 || finished[0].ID != 2 {
		t.Fatalf("unexpected finished runs: %+v", finished)
	}
	if (RunSummary{}).CompletionRate().Defined {
		t.Fatalf("expected undefined completion rate without attempts")
	}
}
