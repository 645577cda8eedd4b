package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSettings_Defaults(t *testing.T) {
	s := &Settings{}

	if got := s.GetReportDir(); got != "reports" {
		t.Errorf("GetReportDir() default = %q, want %q", got, "reports")
	}
	if s.ExpectationsFile != "" {
		t.Errorf("ExpectationsFile should be empty, got %q", s.ExpectationsFile)
	}
	if s.SnapshotsDir != "" {
		t.Errorf("SnapshotsDir should be empty, got %q", s.SnapshotsDir)
	}
}

func TestSettings_Clear(t *testing.T) {
	s := &Settings{
		ExpectationsFile: "/etc/netcheck/expected.yaml",
		SnapshotsDir:     "/var/lib/netcheck/snapshots",
		RedisAddr:        "localhost:6379",
		ReportDir:        "/tmp/reports",
	}

	s.Clear()

	if s.ExpectationsFile != "" || s.SnapshotsDir != "" || s.RedisAddr != "" || s.ReportDir != "" {
		t.Error("Clear() should reset all fields to empty")
	}
}

func TestSettings_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	original := &Settings{
		ExpectationsFile: "/etc/netcheck/expected.yaml",
		SnapshotsDir:     "/var/lib/netcheck/snapshots",
		RedisAddr:        "localhost:6379",
		ReportDir:        "/tmp/reports",
	}

	if err := original.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}

	if loaded.ExpectationsFile != original.ExpectationsFile {
		t.Errorf("ExpectationsFile mismatch: got %q, want %q", loaded.ExpectationsFile, original.ExpectationsFile)
	}
	if loaded.SnapshotsDir != original.SnapshotsDir {
		t.Errorf("SnapshotsDir mismatch: got %q, want %q", loaded.SnapshotsDir, original.SnapshotsDir)
	}
	if loaded.RedisAddr != original.RedisAddr {
		t.Errorf("RedisAddr mismatch: got %q, want %q", loaded.RedisAddr, original.RedisAddr)
	}
}

func TestSettings_LoadNonExistent(t *testing.T) {
	s, err := LoadFrom("/nonexistent/path/settings.json")
	if err != nil {
		t.Fatalf("LoadFrom() non-existent should not error: %v", err)
	}
	if s == nil {
		t.Fatal("LoadFrom() should return non-nil Settings")
	}
	if s.SnapshotsDir != "" {
		t.Error("LoadFrom() non-existent should return empty settings")
	}
}

func TestSettings_LoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("invalid json {"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() with invalid JSON should error")
	}
}

func TestSettings_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "nested", "settings.json")

	s := &Settings{SnapshotsDir: "/var/lib/netcheck"}
	if err := s.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() should create directories: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("SaveTo() should have created the file")
	}
}

func TestDefaultSettingsPath_NoHome(t *testing.T) {
	originalHome := os.Getenv("HOME")
	defer os.Setenv("HOME", originalHome)

	os.Unsetenv("HOME")

	if path := DefaultSettingsPath(); path != "netcheck_settings.json" {
		t.Errorf("DefaultSettingsPath() with no HOME = %q, want %q", path, "netcheck_settings.json")
	}
}

func TestSettings_GetRunLogPath(t *testing.T) {
	s := &Settings{RunLogPath: "/custom/runs.jsonl"}
	if got := s.GetRunLogPath(); got != "/custom/runs.jsonl" {
		t.Errorf("GetRunLogPath() = %q", got)
	}

	empty := &Settings{}
	if got := empty.GetRunLogPath(); got == "" {
		t.Error("GetRunLogPath() fallback should not be empty")
	}
}
