package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/lssstats/internal/config"
	"github.com/verte-zerg/lssstats/internal/export"
	"github.com/verte-zerg/lssstats/internal/model"
	"github.com/verte-zerg/lssstats/internal/stats"
	"github.com/verte-zerg/lssstats/internal/statsui"
	"github.com/verte-zerg/lssstats/internal/store"
	"github.com/verte-zerg/lssstats/internal/watch"
)

var (
	reportOut   string
	reportTable bool

	graphsSegment int
	graphsHeight  int
	graphsWindow  int

	exportFormat string
	exportOut    string

	uiWatch bool

	watchDebounce time.Duration

	recentLimit int
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <file.lss>",
		Short: "Print run and segment statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  runReportCmd,
	}
	cmd.Flags().StringVarP(&reportOut, "out", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&reportTable, "table", false, "append the compact segment table")
	return cmd
}

func runReportCmd(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	run, err := a.readRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	opts := stats.ReportOptions{Precision: a.settings.Precision, Table: reportTable}
	if reportOut == "" {
		return stats.RenderReport(cmd.OutOrStdout(), run, opts)
	}
	if err := export.WriteFile(reportOut, run, export.FormatText, a.settings.Precision); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved report to %s\n", reportOut)
	return nil
}

func newGraphsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graphs <file.lss>",
		Short: "Draw terminal graphs",
		Long:  "Draws the run curve and per-segment bar charts. With --segment only that segment's curve is drawn.",
		Args:  cobra.ExactArgs(1),
		RunE:  runGraphsCmd,
	}
	cmd.Flags().IntVar(&graphsSegment, "segment", 0, "1-based segment number to plot")
	cmd.Flags().IntVar(&graphsHeight, "height", defaultPlotHeight, "plot height in rows")
	cmd.Flags().IntVar(&graphsWindow, "window", defaultCurveWindow, "moving average window")
	return cmd
}

func runGraphsCmd(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("height") {
		a.settings.PlotHeight = graphsHeight
	}
	if cmd.Flags().Changed("window") {
		a.settings.CurveWindow = graphsWindow
	}
	if err := validateSettings(a.settings); err != nil {
		return err
	}
	run, err := a.readRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	opts := chartOptions(a.settings)
	out := cmd.OutOrStdout()
	if graphsSegment == 0 {
		return stats.RenderAllCharts(out, run, opts)
	}
	if graphsSegment < 1 || graphsSegment > len(run.Segments) {
		return fmt.Errorf("--segment must be in range [1, %d]", len(run.Segments))
	}
	return stats.RenderSegmentCurve(out, run.Segments[graphsSegment-1], opts)
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file.lss>",
		Short: "Export statistics as csv, yaml or txt",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVarP(&exportFormat, "format", "f", string(export.FormatCSV), "output format (csv, yaml, txt)")
	cmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default next to the splits file, - for stdout)")
	return cmd
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	run, err := a.readRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if exportOut == "-" {
		return export.Write(cmd.OutOrStdout(), run, format, a.settings.Precision)
	}
	path := exportOut
	if path == "" {
		path = config.DefaultExportPath(args[0], format.Ext())
	}
	if err := export.WriteFile(path, run, format, a.settings.Precision); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s to %s\n", format, path)
	return nil
}

func newUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui <file.lss>",
		Short: "Browse statistics in a terminal UI",
		Args:  cobra.ExactArgs(1),
		RunE:  runUICmd,
	}
	cmd.Flags().BoolVar(&uiWatch, "watch", false, "reload when the splits file changes")
	return cmd
}

func runUICmd(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	path := args[0]
	run, err := a.readRun(cmd.Context(), path)
	if err != nil {
		return err
	}
	load := func() (model.RunSummary, error) {
		return a.reader.Read(path)
	}
	program := tea.NewProgram(statsui.NewModel(run, a.settings, load), tea.WithAltScreen())

	if uiWatch {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go func() {
			cfg := watch.Config{Path: path, Logger: a.logger}
			err := watch.Run(ctx, cfg, func(context.Context) {
				next, err := load()
				program.Send(statsui.RunLoadedMsg{Run: next, Err: err})
			})
			if err != nil {
				a.logger.Warn().Err(err).Msg("watch stopped")
			}
		}()
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run ui: %w", err)
	}
	return nil
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file.lss>",
		Short: "Reprint the report whenever the splits file is saved",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatchCmd,
	}
	cmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "quiet period before re-reading")
	return cmd
}

func runWatchCmd(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	path := args[0]
	out := cmd.OutOrStdout()
	opts := stats.ReportOptions{Precision: a.settings.Precision}
	render := func(run model.RunSummary) {
		fmt.Fprintf(out, "\n=== %s ===\n", time.Now().Format(time.TimeOnly))
		if err := stats.RenderReport(out, run, opts); err != nil {
			logErrf("Error: %v\n", err)
		}
	}

	run, err := a.readRun(cmd.Context(), path)
	if err != nil {
		return err
	}
	render(run)
	cfg := watch.Config{Path: path, Debounce: watchDebounce, Logger: a.logger}
	return watch.Run(cmd.Context(), cfg, func(context.Context) {
		next, err := a.reader.Read(path)
		if err != nil {
			logErrf("Error: %v\n", err)
			return
		}
		render(next)
	})
}

func newRecentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently opened splits files",
		Args:  cobra.NoArgs,
		RunE:  runRecentCmd,
	}
	cmd.Flags().IntVarP(&recentLimit, "limit", "n", store.DefaultRecentLimit, "number of files to list")
	return cmd
}

func runRecentCmd(cmd *cobra.Command, _ []string) error {
	if recentLimit < 1 {
		return fmt.Errorf("--limit must be > 0")
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			// Best-effort close.
			_ = cerr
		}
	}()
	files, err := st.ListRecent(cmd.Context(), recentLimit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(files) == 0 {
		fmt.Fprintln(out, "No recent files.")
		return nil
	}
	for i, f := range files {
		fmt.Fprintf(out, "%d. %s\n", i+1, describeRecent(f))
	}
	return nil
}

func chartOptions(s model.ReportConfig) stats.ChartOptions {
	return stats.ChartOptions{Height: s.PlotHeight, Window: s.CurveWindow, Color: s.Color}
}

func recentFileOf(run model.RunSummary) model.RecentFile {
	path := run.Source
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return model.RecentFile{
		Path:         path,
		GameName:     run.GameName,
		CategoryName: run.CategoryName,
		OpenedAt:     time.Now(),
	}
}

func describeRecent(f model.RecentFile) string {
	title := strings.TrimSpace(strings.Join([]string{f.GameName, f.CategoryName}, " - "))
	title = strings.Trim(title, " -")
	if title == "" {
		return f.Path
	}
	return fmt.Sprintf("%s (%s)", title, f.Path)
}

// fileExists reports whether path names a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
