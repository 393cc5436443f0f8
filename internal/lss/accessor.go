package lss

import (
	"strconv"
	"strings"

	"github.com/verte-zerg/lssstats/internal/model"
	"github.com/verte-zerg/lssstats/internal/splittime"
)

// RealTimeOf returns the RealTime child of an element.
// Missing elements and malformed text both yield None.
func RealTimeOf(e *TimeElement) splittime.Time {
	if e == nil || e.RealTime == nil {
		return splittime.None
	}
	t, err := splittime.Parse(*e.RealTime)
	if err != nil {
		return splittime.None
	}
	return t
}

// SplitTimePB returns the RealTime of the split labelled name.
func SplitTimePB(splitTimes []SplitTime, name string) splittime.Time {
	for i := range splitTimes {
		if splitTimes[i].Name == name {
			return RealTimeOf(&splitTimes[i].TimeElement)
		}
	}
	return splittime.None
}

// SegmentHistoryOf lists the segment's observed durations in document order.
// Entries without a RealTime, with a non-integer id, or repeating an id are dropped.
func SegmentHistoryOf(seg Segment) []model.HistoryEntry {
	out := make([]model.HistoryEntry, 0, len(seg.SegmentHistory))
	seen := make(map[int]struct{}, len(seg.SegmentHistory))
	for i := range seg.SegmentHistory {
		entry := &seg.SegmentHistory[i]
		id, err := strconv.Atoi(strings.TrimSpace(entry.ID))
		if err != nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		d, ok := RealTimeOf(&entry.TimeElement).Duration()
		if !ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, model.HistoryEntry{AttemptID: id, Duration: d})
	}
	return out
}

func attemptRecord(a Attempt) model.AttemptRecord {
	rec := model.AttemptRecord{FinishingTime: RealTimeOf(&a.TimeElement)}
	if id, err := strconv.Atoi(strings.TrimSpace(a.ID)); err == nil {
		rec.ID = id
	}
	if t, ok := parseAttemptTime(a.Started); ok {
		rec.Started = t
	}
	if t, ok := parseAttemptTime(a.Ended); ok {
		rec.Ended = t
	}
	return rec
}
