// Package settings manages persistent user settings for the netcheck CLI.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds persistent user preferences
type Settings struct {
	// ExpectationsFile is the default override expectation document
	ExpectationsFile string `json:"expectations_file,omitempty"`

	// SnapshotsDir is the default snapshot directory for state input
	SnapshotsDir string `json:"snapshots_dir,omitempty"`

	// RedisAddr is the default Redis address for state input
	RedisAddr string `json:"redis_addr,omitempty"`

	// ReportDir is where markdown and JUnit reports are written
	ReportDir string `json:"report_dir,omitempty"`

	// RunLogPath overrides the default run-history log location
	RunLogPath string `json:"run_log_path,omitempty"`
}

// DefaultSettingsPath returns the default path for the settings file
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "netcheck_settings.json"
	}
	return filepath.Join(home, ".netcheck", "settings.json")
}

// DefaultRunLogPath returns the default run-history log path
func DefaultRunLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "netcheck_runs.jsonl"
	}
	return filepath.Join(home, ".netcheck", "runs.jsonl")
}

// Load reads settings from the default location
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty settings if file doesn't exist
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Save writes settings to the default location
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path
func (s *Settings) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetReportDir returns the report directory (with fallback)
func (s *Settings) GetReportDir() string {
	if s.ReportDir != "" {
		return s.ReportDir
	}
	return "reports"
}

// GetRunLogPath returns the run-history log path (with fallback)
func (s *Settings) GetRunLogPath() string {
	if s.RunLogPath != "" {
		return s.RunLogPath
	}
	return DefaultRunLogPath()
}

// Clear resets all settings to defaults
func (s *Settings) Clear() {
	*s = Settings{}
}
