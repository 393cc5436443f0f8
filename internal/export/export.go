// Package export writes run summaries to files: PB splits as CSV, the whole
// summary as YAML, and the text report.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/lssstats/internal/model"
	"github.com/verte-zerg/lssstats/internal/stats"
)

// Format names an export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
	FormatText Format = "txt"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatCSV, FormatYAML, FormatText:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown export format %q (want csv, yaml or txt)", name)
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Write encodes run in the given format.
func Write(w io.Writer, run model.RunSummary, format Format, precision int) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, run)
	case FormatYAML:
		return WriteYAML(w, run)
	case FormatText:
		return stats.RenderReport(w, run, stats.ReportOptions{Precision: precision, Table: true})
	}
	return fmt.Errorf("unknown export format %q", format)
}

// WriteFile creates path (and its directory) and encodes run into it.
func WriteFile(path string, run model.RunSummary, format Format, precision int) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()
	if err := Write(f, run, format, precision); err != nil {
		return fmt.Errorf("failed to write %s export: %w", format, err)
	}
	return nil
}
