package main

import (
	"fmt"

	"github.com/pkg/errors"
)

// Errors
var (
	ErrInvalidCPUs     = errors.New("ncpus must be a positive integer")
	ErrScriptNotFound  = errors.New("workload script not found")
	ErrEmptyJobID      = errors.New("no job id in submit output")
	ErrEmptySweep      = errors.New("no cpu counts to sweep")
	ErrMalformedTiming = errors.New("malformed timing line")
)

// ValidationError is returned when an input is rejected before
// anything is handed to the scheduler
type ValidationError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// SubmissionError is returned when the submit command cannot be run,
// exits nonzero, or reports no job id
type SubmissionError struct {
	Cmd string
	Err error
}

func (e *SubmissionError) Error() string {
	if e.Cmd == "" {
		return fmt.Sprintf("submission failed: %v", e.Err)
	}
	return fmt.Sprintf("submission failed on %q: %v", e.Cmd, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
