// Package splittime converts between LiveSplit time text and durations.
package splittime

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Tick is the resolution LiveSplit writes times with.
const Tick = 100 * time.Nanosecond

// ZeroText is what a zero duration formats to.
const ZeroText = "00:00:00.0000000"

const maxFractionDigits = 7

// maxHours bounds the hour count so a parsed total fits in a time.Duration.
const maxHours = math.MaxInt64 / int64(time.Hour)

// ErrFormat is returned (wrapped) for malformed time text.
var ErrFormat = errors.New("invalid time format")

// FormatError describes why a time string could not be parsed.
type FormatError struct {
	Text   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid time %q: %s", e.Text, e.Reason)
}

// Unwrap returns ErrFormat.
func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// Time is a non-negative duration that may be absent.
// The zero value is None.
type Time struct {
	d   time.Duration
	set bool
}

// None is the absent time.
var None = Time{}

// Of wraps a duration. Negative durations are clamped to zero.
func Of(d time.Duration) Time {
	if d < 0 {
		d = 0
	}
	return Time{d: d, set: true}
}

// FromSeconds converts seconds to a Time rounded to the nearest tick.
func FromSeconds(seconds float64) Time {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return None
	}
	if seconds < 0 {
		seconds = 0
	}
	ticks := math.Round(seconds * float64(time.Second/Tick))
	return Of(time.Duration(ticks) * Tick)
}

// IsSet reports whether the time is present.
func (t Time) IsSet() bool {
	return t.set
}

// Duration returns the duration and whether it is present.
func (t Time) Duration() (time.Duration, bool) {
	return t.d, t.set
}

// Seconds returns the duration in seconds and whether it is present.
func (t Time) Seconds() (float64, bool) {
	return t.d.Seconds(), t.set
}

// String returns the canonical text, or "" when absent.
func (t Time) String() string {
	if !t.set {
		return ""
	}
	return Format(t.d)
}

// Display formats with the given number of fractional digits.
// Absent times render as placeholder.
func (t Time) Display(digits int, placeholder string) string {
	if !t.set {
		return placeholder
	}
	return FormatPrecision(t.d, digits)
}

// MarshalText implements encoding.TextMarshaler.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Time) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Sub returns a-b clamped to zero. The result is absent if either side is.
func Sub(a, b Time) Time {
	if !a.set || !b.set {
		return None
	}
	return Of(a.d - b.d)
}

// Add returns a+b, treating an absent side as no contribution.
func Add(a, b Time) Time {
	switch {
	case !a.set:
		return b
	case !b.set:
		return a
	}
	return Of(a.d + b.d)
}

// Format renders d as HH:MM:SS.fffffff. Negative durations render as zero.
func Format(d time.Duration) string {
	if d <= 0 {
		return ZeroText
	}
	d = d.Round(Tick)
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second
	return fmt.Sprintf("%02d:%02d:%02d.%07d", hours, minutes, seconds, d/Tick)
}

// FormatPrecision renders d with 0-7 fractional digits. Extra digits are truncated.
func FormatPrecision(d time.Duration, digits int) string {
	if digits < 0 {
		digits = 0
	}
	if digits > maxFractionDigits {
		digits = maxFractionDigits
	}
	full := Format(d)
	dot := strings.LastIndexByte(full, '.')
	if digits == 0 {
		return full[:dot]
	}
	return full[:dot+1+digits]
}

// Parse reads HH:MM:SS[.fffffff] or D.HH:MM:SS[.fffffff].
// Empty text yields None without error.
func Parse(text string) (Time, error) {
	raw := text
	text = strings.TrimSpace(text)
	if text == "" {
		return None, nil
	}
	parts := strings.Split(text, ":")
	if len(parts) != 3 {
		return None, &FormatError{Text: raw, Reason: "expected HH:MM:SS"}
	}

	var days int64
	hourField := parts[0]
	if dayField, rest, ok := strings.Cut(hourField, "."); ok {
		n, ok := parseDigits(dayField)
		if !ok {
			return None, &FormatError{Text: raw, Reason: "invalid days"}
		}
		days = n
		hourField = rest
	}
	hours, ok := parseDigits(hourField)
	if !ok {
		return None, &FormatError{Text: raw, Reason: "invalid hours"}
	}
	minutes, ok := parseDigits(parts[1])
	if !ok || minutes >= 60 {
		return None, &FormatError{Text: raw, Reason: "invalid minutes"}
	}

	secField, fracField, hasFrac := strings.Cut(parts[2], ".")
	seconds, ok := parseDigits(secField)
	if !ok || seconds >= 60 {
		return None, &FormatError{Text: raw, Reason: "invalid seconds"}
	}
	var ticks int64
	if hasFrac {
		if len(fracField) > maxFractionDigits {
			return None, &FormatError{Text: raw, Reason: "too many fractional digits"}
		}
		n, ok := parseDigits(fracField)
		if !ok {
			return None, &FormatError{Text: raw, Reason: "invalid fractional seconds"}
		}
		for i := len(fracField); i < maxFractionDigits; i++ {
			n *= 10
		}
		ticks = n
	}

	// The remainder below an hour still has to fit after the hour term.
	totalHours := days*24 + hours
	if totalHours >= maxHours {
		return None, &FormatError{Text: raw, Reason: "duration out of range"}
	}
	d := time.Duration(totalHours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(ticks)*Tick
	return Of(d), nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(text string) Time {
	t, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return t
}

func parseDigits(s string) (int64, bool) {
	if s == "" || len(s) > 12 {
		return 0, false
	}
	var n int64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int64(c-'0')
	}
	return n, true
}
