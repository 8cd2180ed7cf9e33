package main

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var SUBMIT_CMD string = "qsub"

// handle returned by a dry run
const DRY_RUN JobHandle = "dry-run"

// how long to wait on qsub's output after it is killed
const WAIT_DELAY = time.Second

// JobHandle is the job id reported by the scheduler
type JobHandle string

// Scheduler hands a job to a batch queue
type Scheduler interface {
	Submit(ctx context.Context, spec, logPath, script string) (JobHandle, error)
}

// PBS submits jobs with qsub. Cmd defaults to SUBMIT_CMD and Stderr to
// os.Stderr. The submit command is run in Dir, or the current
// directory if Dir is empty.
type PBS struct {
	Cmd    string
	Dir    string
	Stderr io.Writer
	DryRun bool
}

// Command returns the qsub invocation for a job without running it
func (p PBS) Command(ctx context.Context, spec, logPath, script string) *exec.Cmd {
	name := p.Cmd
	if name == "" {
		name = SUBMIT_CMD
	}
	cmd := exec.CommandContext(ctx, name, "-l", spec, "-o", logPath, script)
	cmd.Dir = p.Dir
	cmd.WaitDelay = WAIT_DELAY
	setProcessGroup(cmd)
	cmd.Stderr = p.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	return cmd
}

// Submit runs qsub and returns the job id it prints. Anything qsub
// writes to stderr is passed through untouched. Cancelling ctx kills
// qsub along with anything it started.
func (p PBS) Submit(ctx context.Context, spec, logPath, script string) (JobHandle, error) {
	cmd := p.Command(ctx, spec, logPath, script)
	if p.DryRun {
		log.WithField("cmd", cmd.String()).Info("dry run, not submitting")
		return DRY_RUN, nil
	}
	log.WithField("cmd", cmd.String()).Debug("running submit command")
	byts, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			err = errors.Wrap(ctx.Err(), err.Error())
		}
		return "", &SubmissionError{Cmd: cmd.String(), Err: err}
	}
	// output like "12345.pbsserver"
	jobid := strings.TrimSpace(string(byts))
	if jobid == "" {
		return "", &SubmissionError{Cmd: cmd.String(), Err: ErrEmptyJobID}
	}
	return JobHandle(jobid), nil
}
