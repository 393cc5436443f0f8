// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "lssstats"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultDBPath returns the default path for the recent-files database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, appName+".db")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// DefaultReportPath returns where a report for the splits file is written
// when no output path is given: next to the file, with a .txt extension.
func DefaultReportPath(splitsPath string) string {
	return replaceExt(splitsPath, ".txt")
}

// DefaultExportPath returns the export path for the given format extension.
func DefaultExportPath(splitsPath, ext string) string {
	return replaceExt(splitsPath, ext)
}

func replaceExt(path, ext string) string {
	return path[:len(path)-len(filepath.Ext(path))] + ext
}
