package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/lssstats/internal/config"
	"github.com/verte-zerg/lssstats/internal/export"
	"github.com/verte-zerg/lssstats/internal/model"
	"github.com/verte-zerg/lssstats/internal/stats"
	"github.com/verte-zerg/lssstats/internal/store"
)

const mainMenu = `
Choose from 1 of the following options:
1 - print statistics and data parsed from the .lss file
2 - print statistics and data parsed from the .lss file, output results to text file
3 - show graphs based on statistics and data parsed from the .lss file
4 - output PB split times to a .csv file
[Q] Return to previous Menu [O] Show options
`

const graphsMenu = `
Statistical Plot Choices
1 - Line graph - segment duration over time (for a given segment)
2 - Bar graph - standard deviation of all segments
3 - Bar graph - percentage of above average segments
4 - Bar graph - possible time save in PB
5 - Line graph - run duration over time
[Q] Return to previous Menu [O] Show options
`

// prompt drives the interactive menus over a line-oriented reader.
type prompt struct {
	in       *bufio.Scanner
	out      io.Writer
	settings model.ReportConfig
	read     func(ctx context.Context, path string) (model.RunSummary, error)
	recent   func(ctx context.Context) []model.RecentFile
}

func runPromptCmd(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	p := &prompt{
		in:       bufio.NewScanner(cmd.InOrStdin()),
		out:      cmd.OutOrStdout(),
		settings: a.settings,
		read:     a.readRun,
		recent:   a.recentFiles,
	}
	return p.run(cmd.Context())
}

// recentFiles lists remembered files that still exist.
func (a *app) recentFiles(ctx context.Context) []model.RecentFile {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		a.logger.Debug().Err(err).Msg("recent files unavailable")
		return nil
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			// Best-effort close.
			_ = cerr
		}
	}()
	files, err := st.ListRecent(ctx, store.DefaultRecentLimit)
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to list recent files")
		return nil
	}
	return pruneMissing(ctx, st, files, a.logger)
}

// pruneMissing drops files that no longer exist and forgets them in st.
func pruneMissing(ctx context.Context, st *store.Store, files []model.RecentFile, logger zerolog.Logger) []model.RecentFile {
	kept := files[:0]
	for _, f := range files {
		if fileExists(f.Path) {
			kept = append(kept, f)
			continue
		}
		if err := st.Forget(ctx, f.Path); err != nil {
			logger.Warn().Err(err).Str("path", f.Path).Msg("failed to forget recent file")
		}
	}
	return kept
}

// run asks for splits files until the user quits or input ends.
func (p *prompt) run(ctx context.Context) error {
	for {
		recent := p.listRecent(ctx)
		line, ok := p.ask(`Enter the path to a valid .lss file (or "q" to quit): `)
		if !ok || isQuit(line) {
			return p.in.Err()
		}
		path := line
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(recent) {
			path = recent[n-1].Path
		}
		run, err := p.read(ctx, path)
		if err != nil {
			p.printf("Error: %v\n", err)
			continue
		}
		if !p.chooseOption(run) {
			return p.in.Err()
		}
	}
}

func (p *prompt) listRecent(ctx context.Context) []model.RecentFile {
	if p.recent == nil {
		return nil
	}
	files := p.recent(ctx)
	if len(files) == 0 {
		return nil
	}
	p.printf("\nRecent files:\n")
	for i, f := range files {
		p.printf("%d - %s\n", i+1, describeRecent(f))
	}
	return files
}

// chooseOption runs the per-file menu. It returns false once input is exhausted.
func (p *prompt) chooseOption(run model.RunSummary) bool {
	p.printf("%s", mainMenu)
	for {
		choice, ok := p.ask("Enter your choice: ")
		if !ok {
			return false
		}
		switch {
		case isQuit(choice):
			return true
		case isOptions(choice):
			p.printf("%s", mainMenu)
		case choice == "1":
			p.report(run)
		case choice == "2":
			p.report(run)
			if !p.saveAs(run, export.FormatText, config.DefaultReportPath(run.Source)) {
				return false
			}
		case choice == "3":
			if !p.showGraphs(run) {
				return false
			}
		case choice == "4":
			if !p.saveAs(run, export.FormatCSV, config.DefaultExportPath(run.Source, export.FormatCSV.Ext())) {
				return false
			}
		default:
			p.printf("Error: choice must be in range [1, 4], enter \"q\" to choose another file.\n")
		}
	}
}

func (p *prompt) report(run model.RunSummary) {
	if err := stats.RenderReport(p.out, run, stats.ReportOptions{Precision: p.settings.Precision}); err != nil {
		p.printf("Error: %v\n", err)
	}
}

// saveAs asks for an output path until a write succeeds or the user backs out.
func (p *prompt) saveAs(run model.RunSummary, format export.Format, fallback string) bool {
	for {
		path, ok := p.ask(fmt.Sprintf("Enter the name of the output file (blank for %s): ", fallback))
		if !ok {
			return false
		}
		if isQuit(path) {
			return true
		}
		if path == "" {
			path = fallback
		}
		if err := export.WriteFile(path, run, format, p.settings.Precision); err != nil {
			p.printf("Invalid path. Please provide a valid path or a file name. (%v)\n", err)
			continue
		}
		p.printf("Output written to %s\n", path)
		return true
	}
}

func (p *prompt) showGraphs(run model.RunSummary) bool {
	opts := chartOptions(p.settings)
	p.printf("%s", graphsMenu)
	for {
		choice, ok := p.ask("Enter your choice: ")
		if !ok {
			return false
		}
		var err error
		switch {
		case isQuit(choice):
			return true
		case isOptions(choice):
			p.printf("%s", graphsMenu)
		case choice == "1":
			if !p.segmentCurves(run, opts) {
				return false
			}
		case choice == "2":
			err = stats.RenderStdDevChart(p.out, run, opts)
		case choice == "3":
			err = stats.RenderAboveAverageChart(p.out, run, opts)
		case choice == "4":
			err = stats.RenderTimeSaveChart(p.out, run, opts)
		case choice == "5":
			err = stats.RenderRunCurve(p.out, run, opts)
		default:
			p.printf("Error: choice must be in range [1, 5].\n")
		}
		if err != nil {
			p.printf("Error: %v\n", err)
		}
	}
}

func (p *prompt) segmentCurves(run model.RunSummary, opts stats.ChartOptions) bool {
	for _, seg := range run.Segments {
		p.printf("%d. %s\n", seg.Index, seg.Name)
	}
	for {
		choice, ok := p.ask(`Enter the number for the segment you would like to see statistics for (or "q" to go back): `)
		if !ok {
			return false
		}
		if isQuit(choice) {
			return true
		}
		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(run.Segments) {
			p.printf("Error: choice must be in range [1, %d]\n", len(run.Segments))
			continue
		}
		if err := stats.RenderSegmentCurve(p.out, run.Segments[n-1], opts); err != nil {
			p.printf("Error: %v\n", err)
		}
	}
}

// ask prints label and returns the next trimmed line. ok is false at end of input.
func (p *prompt) ask(label string) (string, bool) {
	p.printf("%s", label)
	if !p.in.Scan() {
		p.printf("\n")
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}

func (p *prompt) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(p.out, format, args...); err != nil {
		// Best-effort write.
		_ = err
	}
}

func isQuit(s string) bool {
	s = strings.ToLower(s)
	return s == "q" || s == "quit"
}

func isOptions(s string) bool {
	s = strings.ToLower(s)
	return s == "o" || s == "options"
}
