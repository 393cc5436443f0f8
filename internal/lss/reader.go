package lss

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/lssstats/internal/model"
	"github.com/verte-zerg/lssstats/internal/splittime"
	"github.com/verte-zerg/lssstats/internal/stats"
)

// Reader turns splits files into run summaries.
type Reader struct {
	logger    zerolog.Logger
	splitName string
}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Reader) {
		r.logger = logger
	}
}

// WithSplitName sets the comparison whose split times are treated as the PB.
func WithSplitName(name string) Option {
	return func(r *Reader) {
		if name != "" {
			r.splitName = name
		}
	}
}

// NewReader returns a Reader with a no-op logger and the "Personal Best" comparison.
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		logger:    zerolog.Nop(),
		splitName: DefaultSplitName,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read validates, parses and summarizes the splits file at path.
func (r *Reader) Read(path string) (model.RunSummary, error) {
	if err := CheckPath(path); err != nil {
		return model.RunSummary{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.RunSummary{}, fmt.Errorf("failed to read splits file: %w", err)
	}
	return r.ReadBytes(path, data)
}

// ReadBytes validates, parses and summarizes an in-memory splits file.
func (r *Reader) ReadBytes(name string, data []byte) (model.RunSummary, error) {
	if err := CheckHeader(data); err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Path = name
		}
		return model.RunSummary{}, err
	}
	doc, err := Decode(bytes.NewReader(data))
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = name
		}
		return model.RunSummary{}, err
	}
	summary := r.Summarize(doc)
	summary.Source = name
	r.logger.Info().
		Str("path", name).
		Str("game", summary.GameName).
		Str("category", summary.CategoryName).
		Int("segments", len(summary.Segments)).
		Int("attempts", summary.AttemptsStarted).
		Msg("splits file read")
	return summary, nil
}

// Summarize walks the document once and builds the run summary.
func (r *Reader) Summarize(doc *Document) model.RunSummary {
	summary := model.RunSummary{
		GameName:     doc.GameName,
		CategoryName: doc.CategoryName,
		LayoutPath:   doc.LayoutPath,
		Offset:       doc.Offset,
		Attempts:     make([]model.AttemptRecord, 0, len(doc.AttemptHistory)),
		Segments:     make([]model.SegmentRecord, 0, len(doc.Segments)),
	}

	for _, a := range doc.AttemptHistory {
		rec := attemptRecord(a)
		summary.Attempts = append(summary.Attempts, rec)
		summary.AttemptsStarted++
		if rec.Finished() {
			summary.AttemptsFinished++
		}
		if !rec.Started.IsZero() && !rec.Ended.IsZero() && !rec.Ended.Before(rec.Started) {
			summary.TotalPlaytime += rec.Ended.Sub(rec.Started)
		}
	}

	previous := splittime.Of(0)
	for i, seg := range doc.Segments {
		split := SplitTimePB(seg.SplitTimes, r.splitName)
		segmentPB := splittime.Sub(split, previous)
		// A skipped split keeps the accumulator so the next segment covers both.
		if split.IsSet() {
			previous = split
		}

		history := SegmentHistoryOf(seg)
		gold := r.goldTime(doc, seg, history)
		worst := worstTime(doc, history)

		record := model.SegmentRecord{
			Index:            i + 1,
			Name:             seg.Name,
			SplitTimePB:      split,
			SegmentTimePB:    segmentPB,
			Gold:             gold,
			Worst:            worst,
			History:          history,
			Stats:            stats.SegmentStatistics(history, summary.AttemptsStarted),
			PossibleTimeSave: stats.PossibleTimeSave(segmentPB, gold.Time),
		}
		summary.SumOfBest = splittime.Add(summary.SumOfBest, gold.Time)
		summary.TotalRuntime += stats.HistoryTotal(history)
		summary.Segments = append(summary.Segments, record)

		r.logger.Debug().
			Int("index", record.Index).
			Str("segment", record.Name).
			Int("history", len(history)).
			Bool("manual_gold", gold.Manual).
			Msg("segment read")
	}
	return summary
}

func (r *Reader) goldTime(doc *Document, seg Segment, history []model.HistoryEntry) model.SegmentTime {
	gold := RealTimeOf(seg.BestSegmentTime)
	if !gold.IsSet() {
		best, ok := stats.Best(history)
		if !ok {
			return model.SegmentTime{}
		}
		gold = splittime.Of(best.Duration)
	}
	d, _ := gold.Duration()
	id, ok := stats.GoldAttribution(history, d)
	if !ok {
		return model.SegmentTime{Time: gold, Manual: true}
	}
	return attributed(doc, gold, id)
}

func worstTime(doc *Document, history []model.HistoryEntry) model.SegmentTime {
	worst, ok := stats.Worst(history)
	if !ok {
		return model.SegmentTime{}
	}
	return attributed(doc, splittime.Of(worst.Duration), worst.AttemptID)
}

func attributed(doc *Document, t splittime.Time, attemptID int) model.SegmentTime {
	st := model.SegmentTime{Time: t, AttemptID: attemptID}
	if started, ok := doc.AttemptStartedAt(attemptID); ok {
		st.StartedAt = started
	}
	return st
}
