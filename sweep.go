package main

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// ValidateCPUs checks every count in cpus and reports all of the bad
// ones at once
func ValidateCPUs(cpus []int) error {
	if len(cpus) == 0 {
		return ErrEmptySweep
	}
	var result *multierror.Error
	for _, c := range cpus {
		if _, err := NewRequest(c); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Sweep submits one job per entry in cpus, in order. Nothing is
// submitted unless every count is valid, and the sweep stops at the
// first failed submission, returning the job ids submitted before it.
func Sweep(ctx context.Context, js JobSubmitter, cpus []int) ([]JobHandle, error) {
	if err := ValidateCPUs(cpus); err != nil {
		return nil, err
	}
	jobs := make([]JobHandle, 0, len(cpus))
	for _, c := range cpus {
		jobid, err := js.Submit(ctx, c)
		if err != nil {
			return jobs, errors.Wrapf(err, "sweep stopped at ncpus=%d", c)
		}
		jobs = append(jobs, jobid)
	}
	return jobs, nil
}
