package lss

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/lssstats/internal/testutil"
)

func TestDecodeWrongRootIsParseError(t *testing.T) {
	_, err := Decode(strings.NewReader(`<Layout version="1.6"></Layout>`))
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestAttemptStartedAt(t *testing.T) {
	doc, err := Decode(strings.NewReader(testutil.SampleLSS))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	started, ok := doc.AttemptStartedAt(2)
	if !ok {
		t.Fatalf("expected attempt 2")
	}
	if want := time.Date(2022, 9, 16, 10, 0, 0, 0, time.UTC); !started.Equal(want) {
		t.Fatalf("expected %v, got %v", want, started)
	}
	if _, ok := doc.AttemptStartedAt(42); ok {
		t.Fatalf("expected unknown attempt to be absent")
	}
}

func TestAccessors(t *testing.T) {
	doc, err := Decode(strings.NewReader(testutil.SampleLSS))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	seg := doc.Segments[2]
	if got := SplitTimePB(seg.SplitTimes, DefaultSplitName).String(); got != "00:25:00.0000000" {
		t.Fatalf("unexpected PB split %q", got)
	}
	if SplitTimePB(seg.SplitTimes, "Missing").IsSet() {
		t.Fatalf("expected unknown comparison to be absent")
	}
	if RealTimeOf(nil).IsSet() {
		t.Fatalf("expected nil element to be absent")
	}
	bad := "not a time"
	if RealTimeOf(&TimeElement{RealTime: &bad}).IsSet() {
		t.Fatalf("expected malformed time to be absent")
	}
	history := SegmentHistoryOf(seg)
	if len(history) != 2 || history[0].AttemptID != 1 || history[1].AttemptID != 3 {
		t.Fatalf("unexpected history %+v", history)
	}
}

func TestSegmentHistoryDropsDuplicatesAndBadIDs(t *testing.T) {
	one := "00:00:01"
	two := "00:00:02"
	seg := Segment{SegmentHistory: []HistoryTime{
		{ID: "5", TimeElement: TimeElement{RealTime: &one}},
		{ID: "5", TimeElement: TimeElement{RealTime: &two}},
		{ID: "x", TimeElement: TimeElement{RealTime: &two}},
		{ID: "-1", TimeElement: TimeElement{RealTime: &two}},
	}}
	history := SegmentHistoryOf(seg)
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %+v", history)
	}
	if history[0].AttemptID != 5 || history[0].Duration != time.Second {
		t.Fatalf("expected first occurrence to win, got %+v", history[0])
	}
	if history[1].AttemptID != -1 {
		t.Fatalf("expected non-positive ids to be kept, got %+v", history[1])
	}
}

func TestCheckPath(t *testing.T) {
	if err := CheckPath("run.LSS"); err != nil {
		t.Fatalf("expected upper-case extension to pass: %v", err)
	}
	if err := CheckPath("run.lsl"); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
}
