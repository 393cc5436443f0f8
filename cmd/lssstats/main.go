// Package main provides the CLI entrypoint for lssstats.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/lssstats/internal/config"
	"github.com/verte-zerg/lssstats/internal/logging"
	"github.com/verte-zerg/lssstats/internal/lss"
	"github.com/verte-zerg/lssstats/internal/model"
	"github.com/verte-zerg/lssstats/internal/stats"
	"github.com/verte-zerg/lssstats/internal/store"
)

const (
	defaultPlotHeight  = 10
	defaultCurveWindow = 5
)

var (
	globalLogLevel  string
	globalSplitName string
	globalPrecision int
	globalColor     bool
)

// app is the per-invocation state shared by every command.
type app struct {
	settings model.ReportConfig
	logger   zerolog.Logger
	reader   *lss.Reader
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lssstats",
		Short:         "Statistics for LiveSplit splits files",
		Long:          "Reads a LiveSplit .lss file and reports per-segment statistics.\nWithout a subcommand an interactive prompt asks for files.",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPromptCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globalLogLevel, "log-level", logging.DefaultLevel, "diagnostics level (debug, info, warn, error)")
	flags.StringVar(&globalSplitName, "split-name", lss.DefaultSplitName, "comparison whose split times are the PB")
	flags.IntVar(&globalPrecision, "precision", stats.DefaultPrecision, "fractional digits in printed times (0-7)")
	flags.BoolVar(&globalColor, "color", false, "force colored graphs")

	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newGraphsCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newUICmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newRecentCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// loadApp merges the config file under the command-line flags and builds the reader.
func loadApp(cmd *cobra.Command) (*app, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "log-level", &globalLogLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "split-name", &globalSplitName, fileCfg.Report.SplitName)
	applyIntConfig(cmd, "precision", &globalPrecision, fileCfg.Report.Precision)
	applyBoolConfig(cmd, "color", &globalColor, fileCfg.Report.Color)

	settings := model.ReportConfig{
		SplitName:   globalSplitName,
		Precision:   globalPrecision,
		PlotHeight:  defaultPlotHeight,
		CurveWindow: defaultCurveWindow,
		Color:       globalColor,
	}
	if fileCfg.Report.PlotHeight != nil {
		settings.PlotHeight = *fileCfg.Report.PlotHeight
	}
	if fileCfg.Report.CurveWindow != nil {
		settings.CurveWindow = *fileCfg.Report.CurveWindow
	}
	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	logger, err := logging.NewStderr(globalLogLevel)
	if err != nil {
		return nil, err
	}
	return &app{
		settings: settings,
		logger:   logger,
		reader:   lss.NewReader(lss.WithLogger(logger), lss.WithSplitName(settings.SplitName)),
	}, nil
}

func validateSettings(s model.ReportConfig) error {
	if strings.TrimSpace(s.SplitName) == "" {
		return fmt.Errorf("--split-name must not be empty")
	}
	if s.Precision < 0 || s.Precision > 7 {
		return fmt.Errorf("--precision must be between 0 and 7")
	}
	if s.PlotHeight < 1 {
		return fmt.Errorf("--height must be > 0")
	}
	if s.CurveWindow < 1 {
		return fmt.Errorf("--window must be > 0")
	}
	return nil
}

// readRun reads path and remembers it in the recent list.
func (a *app) readRun(ctx context.Context, path string) (model.RunSummary, error) {
	run, err := a.reader.Read(path)
	if err != nil {
		return model.RunSummary{}, err
	}
	a.remember(ctx, run)
	return run, nil
}

// remember records run as recently opened. Failures only log.
func (a *app) remember(ctx context.Context, run model.RunSummary) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		a.logger.Warn().Err(err).Msg("recent files unavailable")
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			a.logger.Warn().Err(cerr).Msg("failed to close db")
		}
	}()
	if err := st.RecordFile(ctx, recentFileOf(run)); err != nil {
		a.logger.Warn().Err(err).Msg("failed to record recent file")
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := config.EnsureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
