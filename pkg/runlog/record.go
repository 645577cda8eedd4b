// Package runlog provides a persistent history of reconciliation runs.
package runlog

import (
	"fmt"
	"time"

	"github.com/netcheck-network/netcheck/pkg/reconcile"
)

// Record captures one reconciliation run for the history log.
type Record struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`

	// Source names where state came from: "snapshots:<dir>" or
	// "redis:<addr>".
	Source string `json:"source"`

	Devices []string `json:"devices"`
	Checked int      `json:"checked"`
	Passed  int      `json:"passed"`
	Failed  int      `json:"failed"`

	ByOutcome map[reconcile.Outcome]int `json:"by_outcome,omitempty"`

	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// Filter defines criteria for querying run records.
type Filter struct {
	Device      string // matches runs that include this device
	User        string
	StartTime   time.Time
	EndTime     time.Time
	SuccessOnly bool
	FailureOnly bool
	Limit       int
	Offset      int
}

// NewRecord creates a record for a run over the given devices.
func NewRecord(user, source string, devices []string) *Record {
	return &Record{
		ID:        generateID(),
		Timestamp: time.Now(),
		User:      user,
		Source:    source,
		Devices:   devices,
	}
}

// WithSummary fills in the verdict tallies.
func (r *Record) WithSummary(s *reconcile.Summary) *Record {
	r.Checked = len(s.Verdicts)
	r.Passed = s.PassCount()
	r.Failed = s.FailCount()
	r.ByOutcome = s.ByOutcome()
	return r
}

// WithDuration sets the run duration.
func (r *Record) WithDuration(d time.Duration) *Record {
	r.Duration = d
	return r
}

// WithError records a run-level failure.
func (r *Record) WithError(err error) *Record {
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// Succeeded reports whether the run completed with no failing verdicts.
func (r *Record) Succeeded() bool {
	return r.Error == "" && r.Failed == 0
}

func generateID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}
