// Package util provides utility functions and common error types.
package util

import (
	"errors"
	"fmt"
)

// Sentinel errors for reconciliation failure classes. None of these abort
// a run; they classify per-entity verdicts and registry load fallbacks.
var (
	ErrNotFound       = errors.New("expected entity not found")
	ErrStateMismatch  = errors.New("entity in unexpected state")
	ErrShapeViolation = errors.New("state tree is not a recognized container")
	ErrRegistryLoad   = errors.New("expectation override could not be loaded")
)

// ShapeViolationError reports that the state tree handed in for one
// device/command was not a container at all, which usually means the
// upstream parse failed.
type ShapeViolationError struct {
	Device  string
	Command string
	Got     string // description of what was received instead
}

func (e *ShapeViolationError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("%s: output of %q is not a parsed container (%s)", e.Device, e.Command, e.Got)
	}
	return fmt.Sprintf("%s: state tree is not a parsed container (%s)", e.Device, e.Got)
}

func (e *ShapeViolationError) Unwrap() error {
	return ErrShapeViolation
}

// NewShapeViolationError creates a shape violation error
func NewShapeViolationError(device, command, got string) *ShapeViolationError {
	return &ShapeViolationError{Device: device, Command: command, Got: got}
}

// RegistryLoadError reports a malformed expectation override document.
// Callers log it and fall back to the hard-coded defaults.
type RegistryLoadError struct {
	Source string
	Err    error
}

func (e *RegistryLoadError) Error() string {
	return fmt.Sprintf("loading expectation overrides from %s: %v", e.Source, e.Err)
}

func (e *RegistryLoadError) Unwrap() error {
	return ErrRegistryLoad
}

// NewRegistryLoadError creates a registry load error
func NewRegistryLoadError(source string, err error) *RegistryLoadError {
	return &RegistryLoadError{Source: source, Err: err}
}

// ValidationError collects every problem found while checking one
// expectation document section, so a malformed override reports all of
// its defects at once instead of one per load attempt.
type ValidationError struct {
	Subject  string // what was being validated, usually a device name
	Problems []string
}

func (e *ValidationError) Error() string {
	msg := "invalid expectations"
	if e.Subject != "" {
		msg = e.Subject + ": " + msg
	}
	for _, p := range e.Problems {
		msg += "\n  - " + p
	}
	return msg
}

// Validation accumulates problems while a document is checked.
type Validation struct {
	subject  string
	problems []string
}

// NewValidation starts a validation pass over the named subject.
func NewValidation(subject string) *Validation {
	return &Validation{subject: subject}
}

// Require records the problem when condition is false.
func (v *Validation) Require(condition bool, problem string) *Validation {
	if !condition {
		v.problems = append(v.problems, problem)
	}
	return v
}

// Problemf records a formatted problem unconditionally.
func (v *Validation) Problemf(format string, args ...interface{}) *Validation {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
	return v
}

// Err returns the accumulated ValidationError, or nil when the subject
// checked out clean.
func (v *Validation) Err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return &ValidationError{Subject: v.subject, Problems: v.problems}
}
