// Package reconcile compares declared network intent against observed
// device state and produces per-entity verdicts.
package reconcile

import (
	"encoding/json"
	"fmt"

	"github.com/netcheck-network/netcheck/pkg/model"
	"github.com/netcheck-network/netcheck/pkg/util"
)

// Outcome classifies a verdict.
type Outcome string

const (
	OutcomePass          Outcome = "pass"
	OutcomeNotFound      Outcome = "fail_not_found"
	OutcomeStateMismatch Outcome = "fail_state_mismatch"
	OutcomeParseError    Outcome = "fail_parse_error"

	// OutcomeUnexpected flags an entity present on the device that no
	// expectation declares. Emitted in addition to the one verdict per
	// expected entity, never instead of it.
	OutcomeUnexpected Outcome = "fail_unexpected"
)

// Failed reports whether the outcome is any of the failure classes.
func (o Outcome) Failed() bool {
	return o != OutcomePass
}

// Verdict is the reconciliation result for one expected entity.
type Verdict struct {
	Device   string           `json:"device"`
	Kind     model.EntityKind `json:"kind"`
	Key      string           `json:"key,omitempty"`
	Outcome  Outcome          `json:"outcome"`
	Expected string           `json:"expected,omitempty"`
	Actual   string           `json:"actual,omitempty"`
	Command  string           `json:"command,omitempty"`
	Strategy string           `json:"strategy,omitempty"` // traversal strategy that located the entity
	Detail   string           `json:"detail,omitempty"`
}

// Label identifies the verdict's subject for report lines.
func (v Verdict) Label() string {
	if v.Key == "" {
		return string(v.Kind)
	}
	return fmt.Sprintf("%s %s", v.Kind, v.Key)
}

// Err maps a failed verdict to its failure-class sentinel from pkg/util
// so callers can classify with errors.Is instead of switching on the
// outcome string. Passing verdicts return nil.
func (v Verdict) Err() error {
	var sentinel error
	switch v.Outcome {
	case OutcomePass:
		return nil
	case OutcomeNotFound:
		sentinel = util.ErrNotFound
	case OutcomeParseError:
		sentinel = util.ErrShapeViolation
	default:
		sentinel = util.ErrStateMismatch
	}
	return fmt.Errorf("%s %s: %w", v.Device, v.Label(), sentinel)
}

// Summary aggregates one reconciliation run. Verdict order is device
// declaration order, then entity declaration order within each device,
// so two runs over the same registry produce identical reports.
type Summary struct {
	Verdicts []Verdict `json:"verdicts"`
}

// PassCount counts passing verdicts.
func (s *Summary) PassCount() int {
	n := 0
	for _, v := range s.Verdicts {
		if v.Outcome == OutcomePass {
			n++
		}
	}
	return n
}

// FailCount counts failing verdicts of any class.
func (s *Summary) FailCount() int {
	return len(s.Verdicts) - s.PassCount()
}

// Failed reports whether any verdict failed.
func (s *Summary) Failed() bool {
	return s.FailCount() > 0
}

// ByOutcome tallies verdicts per outcome.
func (s *Summary) ByOutcome() map[Outcome]int {
	out := make(map[Outcome]int)
	for _, v := range s.Verdicts {
		out[v.Outcome]++
	}
	return out
}

// MarshalJSON emits the aggregate counts alongside the verdicts so JSON
// consumers need not recompute them.
func (s *Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Verdicts  []Verdict `json:"verdicts"`
		PassCount int       `json:"pass_count"`
		FailCount int       `json:"fail_count"`
	}{s.Verdicts, s.PassCount(), s.FailCount()})
}
