// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Report ReportConfig `toml:"report"`
	Log    LogConfig    `toml:"log"`
}

// ReportConfig maps report and graph settings.
type ReportConfig struct {
	SplitName   *string `toml:"split-name"`
	Precision   *int    `toml:"precision"`
	PlotHeight  *int    `toml:"plot-height"`
	CurveWindow *int    `toml:"curve-window"`
	Color       *bool   `toml:"color"`
}

// LogConfig maps diagnostics settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// Template is written when the config command creates a new file.
const Template = `# lssstats configuration

[report]
# split-name = "Personal Best"
# precision = 2
# plot-height = 10
# curve-window = 5
# color = false

[log]
# level = "warn"
`

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

func (c FileConfig) validate() error {
	r := c.Report
	if r.Precision != nil && (*r.Precision < 0 || *r.Precision > 7) {
		return fmt.Errorf("report.precision must be between 0 and 7")
	}
	if r.PlotHeight != nil && *r.PlotHeight < 1 {
		return fmt.Errorf("report.plot-height must be positive")
	}
	if r.CurveWindow != nil && *r.CurveWindow < 1 {
		return fmt.Errorf("report.curve-window must be positive")
	}
	return nil
}

// EnsureConfigFile creates the config file from Template when it does not exist.
func EnsureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(Template), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
