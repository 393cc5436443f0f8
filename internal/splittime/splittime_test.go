package splittime

import (
	"errors"
	"testing"
	"time"
)

func TestParseCanonical(t *testing.T) {
	got, err := Parse("01:02:03.4567890")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Hour + 2*time.Minute + 3*time.Second + 456789000*time.Nanosecond
	d, ok := got.Duration()
	if !ok || d != want {
		t.Fatalf("expected %v, got %v (set=%v)", want, d, ok)
	}
}

func TestParseShortFractionAndDays(t *testing.T) {
	got, err := Parse("00:01:30.5")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d, _ := got.Duration(); d != 90*time.Second+500*time.Millisecond {
		t.Fatalf("unexpected duration %v", d)
	}

	got, err = Parse("1.02:00:00")
	if err != nil {
		t.Fatalf("parse day form: %v", err)
	}
	if d, _ := got.Duration(); d != 26*time.Hour {
		t.Fatalf("expected 26h, got %v", d)
	}
}

func TestParseEmptyIsAbsent(t *testing.T) {
	got, err := Parse("   ")
	if err != nil {
		t.Fatalf("parse empty: %v", err)
	}
	if got.IsSet() {
		t.Fatalf("expected absent time")
	}
	if got.String() != "" {
		t.Fatalf("expected empty text for absent time, got %q", got.String())
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, text := range []string{
		"12:34",
		"aa:00:00",
		"00:61:00",
		"00:00:75",
		"00:00:01.12345678",
		"00:00:01.x",
		"-00:00:01",
		"1:2:3:4",
		"3000000:00:00",
		"999999999999.00:00:00",
		"2562047:59:59",
	} {
		_, err := Parse(text)
		if err == nil {
			t.Fatalf("expected error for %q", text)
		}
		if !errors.Is(err, ErrFormat) {
			t.Fatalf("expected ErrFormat for %q, got %v", text, err)
		}
		var fe *FormatError
		if !errors.As(err, &fe) || fe.Text != text {
			t.Fatalf("expected FormatError carrying %q, got %v", text, err)
		}
	}
}

func TestParseLargestHours(t *testing.T) {
	got, err := Parse("2562046:59:59.9999999")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.String() != "2562046:59:59.9999999" {
		t.Fatalf("unexpected value %q", got.String())
	}
	if _, err := Parse("106751.23:00:00"); err == nil {
		t.Fatalf("expected day form past the range to fail")
	}
}

func TestRoundTrip(t *testing.T) {
	for _, text := range []string{
		"00:00:00.0000001",
		"00:01:20.0000000",
		"00:12:34.5678901",
		"02:59:59.9999999",
		"123:00:00.5000000",
	} {
		parsed, err := Parse(text)
		if err != nil {
			t.Fatalf("parse %q: %v", text, err)
		}
		if got := parsed.String(); got != text {
			t.Fatalf("round trip of %q produced %q", text, got)
		}
	}
}

func TestZeroAndAbsentDiverge(t *testing.T) {
	if got := Format(0); got != ZeroText {
		t.Fatalf("expected zero sentinel, got %q", got)
	}
	if got := Of(0).String(); got != ZeroText {
		t.Fatalf("expected zero sentinel for present zero, got %q", got)
	}
	if None.String() != "" {
		t.Fatalf("absent time must not format as zero")
	}
	back := MustParse(ZeroText)
	if !back.IsSet() {
		t.Fatalf("zero sentinel must parse as present zero")
	}
}

func TestFormatPrecision(t *testing.T) {
	d := 85*time.Second + 126*time.Millisecond
	if got := FormatPrecision(d, 2); got != "00:01:25.12" {
		t.Fatalf("unexpected 2-digit form %q", got)
	}
	if got := FormatPrecision(d, 0); got != "00:01:25" {
		t.Fatalf("unexpected 0-digit form %q", got)
	}
	if got := FormatPrecision(d, 12); got != "00:01:25.1260000" {
		t.Fatalf("unexpected clamped form %q", got)
	}
	if got := None.Display(2, "-"); got != "-" {
		t.Fatalf("expected placeholder, got %q", got)
	}
}

func TestSubClampsAndPropagatesAbsence(t *testing.T) {
	pb := MustParse("00:00:45.00")
	gold := MustParse("00:00:50.00")
	if got := Sub(pb, gold); got.String() != ZeroText {
		t.Fatalf("expected clamped zero, got %q", got.String())
	}
	if got := Sub(gold, pb); got.String() != "00:00:05.0000000" {
		t.Fatalf("unexpected difference %q", got.String())
	}
	if Sub(None, gold).IsSet() || Sub(pb, None).IsSet() {
		t.Fatalf("expected absent result when a side is absent")
	}
}

func TestAddTreatsAbsentAsNoContribution(t *testing.T) {
	a := MustParse("00:00:10")
	if got := Add(a, None); got != a {
		t.Fatalf("expected %v, got %v", a, got)
	}
	if got := Add(None, None); got.IsSet() {
		t.Fatalf("expected absent sum")
	}
	if got := Add(a, a).String(); got != "00:00:20.0000000" {
		t.Fatalf("unexpected sum %q", got)
	}
}

func TestFromSeconds(t *testing.T) {
	if got := FromSeconds(85).String(); got != "00:01:25.0000000" {
		t.Fatalf("unexpected %q", got)
	}
	if got := FromSeconds(-3).String(); got != ZeroText {
		t.Fatalf("expected negative seconds to clamp, got %q", got)
	}
}

func TestTextMarshaling(t *testing.T) {
	text, err := MustParse("01:02:03.5").MarshalText()
	if err != nil || string(text) != "01:02:03.5000000" {
		t.Fatalf("unexpected text %q (%v)", text, err)
	}
	var got Time
	if err := got.UnmarshalText([]byte("00:00:07.25")); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.String() != "00:00:07.2500000" {
		t.Fatalf("unexpected value %q", got.String())
	}
	if err := got.UnmarshalText([]byte("")); err != nil || got.IsSet() {
		t.Fatalf("expected empty text to decode as absent, got %v (%v)", got, err)
	}
	if err := got.UnmarshalText([]byte("bad")); err == nil {
		t.Fatalf("expected error for malformed text")
	}
}
