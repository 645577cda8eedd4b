package runlog

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/netcheck-network/netcheck/pkg/model"
	"github.com/netcheck-network/netcheck/pkg/reconcile"
)

func TestRecord_New(t *testing.T) {
	record := NewRecord("alice", "snapshots:/var/lib/netcheck", []string{"router1", "router2"})

	if record.User != "alice" {
		t.Errorf("User = %q, want %q", record.User, "alice")
	}
	if record.Source != "snapshots:/var/lib/netcheck" {
		t.Errorf("Source = %q", record.Source)
	}
	if len(record.Devices) != 2 {
		t.Errorf("Devices = %v", record.Devices)
	}
	if record.ID == "" {
		t.Error("ID should not be empty")
	}
	if record.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestRecord_Chaining(t *testing.T) {
	summary := &reconcile.Summary{Verdicts: []reconcile.Verdict{
		{Device: "router1", Kind: model.KindBGPPeer, Outcome: reconcile.OutcomePass},
		{Device: "router1", Kind: model.KindLDPPeer, Outcome: reconcile.OutcomeNotFound},
	}}

	record := NewRecord("alice", "redis:localhost:6379", []string{"router1"}).
		WithSummary(summary).
		WithDuration(time.Second)

	if record.Checked != 2 || record.Passed != 1 || record.Failed != 1 {
		t.Errorf("tallies = %d/%d/%d", record.Checked, record.Passed, record.Failed)
	}
	if record.ByOutcome[reconcile.OutcomeNotFound] != 1 {
		t.Errorf("ByOutcome = %v", record.ByOutcome)
	}
	if record.Duration != time.Second {
		t.Errorf("Duration = %v", record.Duration)
	}
	if record.Succeeded() {
		t.Error("run with a failing verdict should not be Succeeded")
	}
}

func TestRecord_WithError(t *testing.T) {
	record := NewRecord("alice", "snapshots:x", nil).WithError(errors.New("boom"))
	if record.Error != "boom" {
		t.Errorf("Error = %q", record.Error)
	}
	if record.Succeeded() {
		t.Error("errored run should not be Succeeded")
	}

	clean := NewRecord("alice", "snapshots:x", nil).WithError(nil)
	if clean.Error != "" {
		t.Errorf("Error should be empty with nil error, got %q", clean.Error)
	}
}

func TestFileLogger_LogAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	logger, err := NewFileLogger(path, RotationConfig{})
	if err != nil {
		t.Fatalf("NewFileLogger error: %v", err)
	}
	defer logger.Close()

	pass := NewRecord("alice", "snapshots:x", []string{"router1"})
	pass.Checked, pass.Passed = 3, 3

	fail := NewRecord("bob", "snapshots:x", []string{"router2"})
	fail.Checked, fail.Passed, fail.Failed = 3, 1, 2

	for _, r := range []*Record{pass, fail} {
		if err := logger.Log(r); err != nil {
			t.Fatalf("Log error: %v", err)
		}
	}

	all, err := logger.Query(Filter{})
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Query returned %d records, want 2", len(all))
	}

	failing, err := logger.Query(Filter{FailureOnly: true})
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	if len(failing) != 1 || failing[0].User != "bob" {
		t.Errorf("FailureOnly query = %+v", failing)
	}

	byDevice, err := logger.Query(Filter{Device: "router1"})
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	if len(byDevice) != 1 || byDevice[0].User != "alice" {
		t.Errorf("Device query = %+v", byDevice)
	}
}

func TestFileLogger_QueryLimitOffset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	logger, err := NewFileLogger(path, RotationConfig{})
	if err != nil {
		t.Fatal(err)
	}
	defer logger.Close()

	for i := 0; i < 5; i++ {
		if err := logger.Log(NewRecord("alice", "snapshots:x", nil)); err != nil {
			t.Fatal(err)
		}
	}

	got, err := logger.Query(Filter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("got %d records, want 2", len(got))
	}

	empty, err := logger.Query(Filter{Offset: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Errorf("offset past end should return nothing, got %d", len(empty))
	}
}

func TestFileLogger_Rotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	logger, err := NewFileLogger(path, RotationConfig{MaxSize: 1, MaxBackups: 2})
	if err != nil {
		t.Fatal(err)
	}
	defer logger.Close()

	// Every write after the first exceeds MaxSize and forces a rotate.
	for i := 0; i < 3; i++ {
		if err := logger.Log(NewRecord("alice", "snapshots:x", nil)); err != nil {
			t.Fatalf("Log error on write %d: %v", i, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	matches, err := filepath.Glob(path + ".*")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) == 0 {
		t.Error("expected rotated log files")
	}
}
