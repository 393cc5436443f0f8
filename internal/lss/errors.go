package lss

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat marks files rejected before parsing (extension, header lines).
	ErrFormat = errors.New("invalid splits file format")
	// ErrParse marks documents that are not well-formed splits XML.
	ErrParse = errors.New("failed to parse splits file")
)

// FormatError is returned when a file fails the extension or header checks.
type FormatError struct {
	Path   string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %s", ErrFormat, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %s", ErrFormat, e.Path, e.Reason)
}

// Unwrap returns ErrFormat.
func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// ParseError wraps the XML decoder failure.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", ErrParse, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", ErrParse, e.Path, e.Err)
}

// Unwrap returns both ErrParse and the decoder error.
func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}
