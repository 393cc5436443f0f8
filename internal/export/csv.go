package export

import (
	"io"

	"github.com/gocarina/gocsv"

	"github.com/verte-zerg/lssstats/internal/model"
)

// SplitRow is one CSV line of the PB splits export.
// Times use the canonical seven-digit form; absent times are empty.
type SplitRow struct {
	Index       int    `csv:"Index"`
	Segment     string `csv:"Segment"`
	SplitTime   string `csv:"Split Time (PB)"`
	SegmentTime string `csv:"Segment Time (PB)"`
	BestSegment string `csv:"Best Segment"`
}

// SplitRows flattens the run's segments in document order.
func SplitRows(run model.RunSummary) []SplitRow {
	rows := make([]SplitRow, 0, len(run.Segments))
	for _, seg := range run.Segments {
		rows = append(rows, SplitRow{
			Index:       seg.Index,
			Segment:     seg.Name,
			SplitTime:   seg.SplitTimePB.String(),
			SegmentTime: seg.SegmentTimePB.String(),
			BestSegment: seg.Gold.Time.String(),
		})
	}
	return rows
}

// WriteCSV writes the PB splits table with a header row.
func WriteCSV(w io.Writer, run model.RunSummary) error {
	return gocsv.Marshal(SplitRows(run), w)
}
