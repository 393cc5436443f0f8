// Package model defines shared data structures.
package model

import (
	"fmt"
	"time"

	"github.com/verte-zerg/lssstats/internal/splittime"
)

// ReportConfig defines presentation settings.
type ReportConfig struct {
	SplitName   string
	Precision   int
	PlotHeight  int
	CurveWindow int
	Color       bool
}

// AttemptRecord is one run attempt from the attempt history.
type AttemptRecord struct {
	ID            int
	Started       time.Time
	Ended         time.Time
	FinishingTime splittime.Time
}

// Finished reports whether the attempt reached the last split.
func (a AttemptRecord) Finished() bool {
	return a.FinishingTime.IsSet()
}

// HistoryEntry is one observed segment duration.
type HistoryEntry struct {
	AttemptID int
	Duration  time.Duration
}

// SegmentTime attributes a segment duration to the attempt it came from.
type SegmentTime struct {
	Time      splittime.Time
	AttemptID int
	StartedAt time.Time
	// Manual is set when no history entry matches the time, e.g. an edited gold.
	Manual bool
}

// Rate is a percentage that may be undefined.
type Rate struct {
	Percent float64
	Defined bool
}

// String renders the rate with two decimals, or "? %" when undefined.
func (r Rate) String() string {
	if !r.Defined {
		return "? %"
	}
	return fmt.Sprintf("%.2f%%", r.Percent)
}

// SegmentStats holds descriptive statistics for one segment.
type SegmentStats struct {
	Average          splittime.Time
	Median           splittime.Time
	StdDev           splittime.Time
	FinishRate       Rate
	AboveAverageRate float64
}

// SegmentRecord is one segment of the run, in document order.
type SegmentRecord struct {
	Index            int
	Name             string
	SplitTimePB      splittime.Time
	SegmentTimePB    splittime.Time
	Gold             SegmentTime
	Worst            SegmentTime
	History          []HistoryEntry
	Stats            SegmentStats
	PossibleTimeSave splittime.Time
}

// RunSummary is the aggregate read from one splits file.
// It is built once and must be treated as read-only.
type RunSummary struct {
	Source           string
	GameName         string
	CategoryName     string
	LayoutPath       string
	Offset           string
	AttemptsStarted  int
	AttemptsFinished int
	Attempts         []AttemptRecord
	TotalPlaytime    time.Duration
	SumOfBest        splittime.Time
	TotalRuntime     time.Duration
	Segments         []SegmentRecord
}

// CompletionRate is finished attempts over started attempts.
func (r RunSummary) CompletionRate() Rate {
	if r.AttemptsStarted == 0 {
		return Rate{}
	}
	return Rate{
		Percent: float64(r.AttemptsFinished) / float64(r.AttemptsStarted) * 100,
		Defined: true,
	}
}

// FinishedRuns returns completed attempts in document order.
func (r RunSummary) FinishedRuns() []AttemptRecord {
	out := make([]AttemptRecord, 0, r.AttemptsFinished)
	for _, a := range r.Attempts {
		if a.Finished() {
			out = append(out, a)
		}
	}
	return out
}

// RecentFile is a splits file the user opened before.
type RecentFile struct {
	Path         string
	GameName     string
	CategoryName string
	OpenedAt     time.Time
	OpenCount    int
}
