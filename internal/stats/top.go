package stats

import (
	"sort"

	"github.com/verte-zerg/lssstats/internal/model"
	"github.com/verte-zerg/lssstats/internal/splittime"
)

// TopTimeSaves returns up to n segments with the largest possible time save.
// Segments without a time save are skipped.
func TopTimeSaves(segments []model.SegmentRecord, n int) []model.SegmentRecord {
	return topSegments(segments, n, func(seg model.SegmentRecord) splittime.Time {
		return seg.PossibleTimeSave
	})
}

// MostInconsistent returns up to n segments with the highest standard deviation.
func MostInconsistent(segments []model.SegmentRecord, n int) []model.SegmentRecord {
	return topSegments(segments, n, func(seg model.SegmentRecord) splittime.Time {
		return seg.Stats.StdDev
	})
}

func topSegments(segments []model.SegmentRecord, n int, key func(model.SegmentRecord) splittime.Time) []model.SegmentRecord {
	if n <= 0 || len(segments) == 0 {
		return nil
	}
	type item struct {
		seg model.SegmentRecord
		key float64
	}
	items := make([]item, 0, len(segments))
	for _, seg := range segments {
		v, ok := key(seg).Seconds()
		if !ok {
			continue
		}
		items = append(items, item{seg: seg, key: v})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].key == items[j].key {
			return items[i].seg.Index < items[j].seg.Index
		}
		return items[i].key > items[j].key
	})
	n = min(n, len(items))
	out := make([]model.SegmentRecord, 0, n)
	for _, it := range items[:n] {
		out = append(out, it.seg)
	}
	return out
}
