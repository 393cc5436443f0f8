package export

import (
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/lssstats/internal/model"
	"github.com/verte-zerg/lssstats/internal/splittime"
)

// Document is the YAML shape of a run summary.
type Document struct {
	Source           string            `yaml:"source,omitempty"`
	Game             string            `yaml:"game"`
	Category         string            `yaml:"category"`
	LayoutPath       string            `yaml:"layout_path,omitempty"`
	Offset           string            `yaml:"offset,omitempty"`
	AttemptsStarted  int               `yaml:"attempts_started"`
	AttemptsFinished int               `yaml:"attempts_finished"`
	CompletionRate   string            `yaml:"completion_rate"`
	SumOfBest        splittime.Time    `yaml:"sum_of_best,omitempty"`
	TotalRuntime     string            `yaml:"total_runtime"`
	TotalPlaytime    string            `yaml:"total_playtime"`
	Segments         []SegmentDocument `yaml:"segments"`
}

// SegmentDocument is the YAML shape of one segment.
// Absent times are omitted.
type SegmentDocument struct {
	Index            int             `yaml:"index"`
	Name             string          `yaml:"name"`
	SplitTimePB      splittime.Time  `yaml:"split_time_pb,omitempty"`
	SegmentTimePB    splittime.Time  `yaml:"segment_time_pb,omitempty"`
	Best             *AttributedTime `yaml:"best,omitempty"`
	Worst            *AttributedTime `yaml:"worst,omitempty"`
	Average          splittime.Time  `yaml:"average,omitempty"`
	Median           splittime.Time  `yaml:"median,omitempty"`
	StdDev           splittime.Time  `yaml:"std_dev,omitempty"`
	PossibleTimeSave splittime.Time  `yaml:"possible_time_save,omitempty"`
	FinishRate       string          `yaml:"finish_rate"`
	AboveAverageRate float64         `yaml:"above_average_rate"`
	History          []HistoryPoint  `yaml:"history,omitempty"`
}

// AttributedTime is a time with the attempt it came from.
type AttributedTime struct {
	Time      splittime.Time `yaml:"time"`
	Attempt   int            `yaml:"attempt,omitempty"`
	StartedAt *time.Time     `yaml:"started_at,omitempty"`
	Manual    bool           `yaml:"manual,omitempty"`
}

// HistoryPoint is one observed segment duration.
type HistoryPoint struct {
	Attempt  int    `yaml:"attempt"`
	Duration string `yaml:"duration"`
}

// NewDocument converts a run summary into its YAML shape.
func NewDocument(run model.RunSummary) Document {
	doc := Document{
		Source:           run.Source,
		Game:             run.GameName,
		Category:         run.CategoryName,
		LayoutPath:       run.LayoutPath,
		Offset:           run.Offset,
		AttemptsStarted:  run.AttemptsStarted,
		AttemptsFinished: run.AttemptsFinished,
		CompletionRate:   run.CompletionRate().String(),
		SumOfBest:        run.SumOfBest,
		TotalRuntime:     splittime.Format(run.TotalRuntime),
		TotalPlaytime:    splittime.Format(run.TotalPlaytime),
		Segments:         make([]SegmentDocument, 0, len(run.Segments)),
	}
	for _, seg := range run.Segments {
		sd := SegmentDocument{
			Index:            seg.Index,
			Name:             seg.Name,
			SplitTimePB:      seg.SplitTimePB,
			SegmentTimePB:    seg.SegmentTimePB,
			Best:             attributedTime(seg.Gold),
			Worst:            attributedTime(seg.Worst),
			Average:          seg.Stats.Average,
			Median:           seg.Stats.Median,
			StdDev:           seg.Stats.StdDev,
			PossibleTimeSave: seg.PossibleTimeSave,
			FinishRate:       seg.Stats.FinishRate.String(),
			AboveAverageRate: seg.Stats.AboveAverageRate,
		}
		for _, h := range seg.History {
			sd.History = append(sd.History, HistoryPoint{
				Attempt:  h.AttemptID,
				Duration: splittime.Format(h.Duration),
			})
		}
		doc.Segments = append(doc.Segments, sd)
	}
	return doc
}

func attributedTime(st model.SegmentTime) *AttributedTime {
	if !st.Time.IsSet() {
		return nil
	}
	at := &AttributedTime{Time: st.Time, Manual: st.Manual}
	if !st.Manual {
		at.Attempt = st.AttemptID
	}
	if !st.StartedAt.IsZero() {
		started := st.StartedAt
		at.StartedAt = &started
	}
	return at
}

// WriteYAML writes the full summary as a YAML document.
func WriteYAML(w io.Writer, run model.RunSummary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(run)); err != nil {
		return err
	}
	return enc.Close()
}
