package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// JobSubmitter turns a cpu count into a single scheduler submission.
// If CheckScript is set, the workload script must exist in Dir before
// anything is submitted.
type JobSubmitter struct {
	Sched       Scheduler
	Dir         string
	CheckScript bool
}

// Submit requests cpus cpus and MEM_PER_CPU GB of memory per cpu for
// the workload script. A failed submission is returned as a
// *SubmissionError and never retried.
func (js JobSubmitter) Submit(ctx context.Context, cpus int) (JobHandle, error) {
	req, err := NewRequest(cpus)
	if err != nil {
		return "", err
	}
	if js.CheckScript {
		path := filepath.Join(js.Dir, req.Script)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				err = ErrScriptNotFound
			}
			return "", &ValidationError{
				Field: "script",
				Value: path,
				Err:   err,
			}
		}
	}
	logger := log.WithFields(log.Fields{
		"ncpus": req.CPUs,
		"mem":   req.MemoryGB,
	})
	logger.Debugf("submitting %s", req.Script)
	jobid, err := js.Sched.Submit(ctx, req.Spec(), req.LogPath, req.Script)
	if err != nil {
		var se *SubmissionError
		if !errors.As(err, &se) {
			err = &SubmissionError{Err: err}
		}
		return "", err
	}
	logger.WithField("jobid", jobid).Info("job submitted")
	return jobid, nil
}
