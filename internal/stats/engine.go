// Package stats contains statistics calculations and reporting.
package stats

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/verte-zerg/lssstats/internal/model"
	"github.com/verte-zerg/lssstats/internal/splittime"
)

// Average returns the mean segment duration, or None for an empty history.
func Average(history []model.HistoryEntry) splittime.Time {
	if len(history) == 0 {
		return splittime.None
	}
	return splittime.FromSeconds(stat.Mean(historySeconds(history), nil))
}

// Median returns the middle duration; for an even count the mean of the two central values.
func Median(history []model.HistoryEntry) splittime.Time {
	n := len(history)
	if n == 0 {
		return splittime.None
	}
	durations := make([]time.Duration, n)
	for i, e := range history {
		durations[i] = e.Duration
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
	if n%2 == 1 {
		return splittime.Of(durations[n/2])
	}
	return splittime.Of((durations[n/2-1] + durations[n/2]) / 2)
}

// StdDev returns the population standard deviation (divides by N).
func StdDev(history []model.HistoryEntry) splittime.Time {
	switch len(history) {
	case 0:
		return splittime.None
	case 1:
		return splittime.Of(0)
	}
	return splittime.FromSeconds(stat.PopStdDev(historySeconds(history), nil))
}

// Best returns the fastest entry. Ties go to the lowest attempt id.
func Best(history []model.HistoryEntry) (model.HistoryEntry, bool) {
	return extreme(history, func(a, b time.Duration) bool { return a < b })
}

// Worst returns the slowest entry. Ties go to the lowest attempt id.
func Worst(history []model.HistoryEntry) (model.HistoryEntry, bool) {
	return extreme(history, func(a, b time.Duration) bool { return a > b })
}

func extreme(history []model.HistoryEntry, better func(a, b time.Duration) bool) (model.HistoryEntry, bool) {
	if len(history) == 0 {
		return model.HistoryEntry{}, false
	}
	pick := history[0]
	for _, e := range history[1:] {
		if better(e.Duration, pick.Duration) || (e.Duration == pick.Duration && e.AttemptID < pick.AttemptID) {
			pick = e
		}
	}
	return pick, true
}

// GoldAttribution finds the lowest attempt id whose duration equals gold exactly.
func GoldAttribution(history []model.HistoryEntry, gold time.Duration) (int, bool) {
	found := false
	id := 0
	for _, e := range history {
		if e.Duration != gold {
			continue
		}
		if !found || e.AttemptID < id {
			id = e.AttemptID
			found = true
		}
	}
	return id, found
}

// FinishRate is completed segment count over attempts started.
func FinishRate(completed, attemptsStarted int) model.Rate {
	if attemptsStarted <= 0 {
		return model.Rate{}
	}
	return model.Rate{
		Percent: float64(completed) / float64(attemptsStarted) * 100,
		Defined: true,
	}
}

// AboveAverageRate is the fraction of entries strictly faster than the average.
// The average is the tick-rounded value Average reports.
func AboveAverageRate(history []model.HistoryEntry) float64 {
	mean, ok := Average(history).Duration()
	if !ok {
		return 0
	}
	count := 0
	for _, e := range history {
		if e.Duration < mean {
			count++
		}
	}
	return float64(count) / float64(len(history))
}

// PossibleTimeSave is the PB segment time minus the gold, clamped to zero.
func PossibleTimeSave(pbSegment, gold splittime.Time) splittime.Time {
	return splittime.Sub(pbSegment, gold)
}

// HistoryTotal sums all durations in the history.
func HistoryTotal(history []model.HistoryEntry) time.Duration {
	var total time.Duration
	for _, e := range history {
		total += e.Duration
	}
	return total
}

// SegmentStatistics computes the derived statistics block for a segment.
func SegmentStatistics(history []model.HistoryEntry, attemptsStarted int) model.SegmentStats {
	return model.SegmentStats{
		Average:          Average(history),
		Median:           Median(history),
		StdDev:           StdDev(history),
		FinishRate:       FinishRate(len(history), attemptsStarted),
		AboveAverageRate: AboveAverageRate(history),
	}
}

func historySeconds(history []model.HistoryEntry) []float64 {
	out := make([]float64, len(history))
	for i, e := range history {
		out[i] = e.Duration.Seconds()
	}
	return out
}
