package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	spec, logPath, script string
}

// fakeSched records its calls and fails once fails reaches zero
type fakeSched struct {
	calls []call
	fails int
	err   error
}

func (f *fakeSched) Submit(ctx context.Context, spec, logPath, script string) (JobHandle, error) {
	f.calls = append(f.calls, call{spec, logPath, script})
	if f.err != nil && len(f.calls) > f.fails {
		return "", f.err
	}
	return JobHandle("job." + spec), nil
}

func TestJobSubmitter(t *testing.T) {
	sched := &fakeSched{}
	js := JobSubmitter{Sched: sched}
	got, err := js.Submit(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, JobHandle("job.ncpus=2,mem=8gb"), got)
	assert.Equal(t, []call{{"ncpus=2,mem=8gb", "log", "run_climtas.sh"}}, sched.calls)
}

func TestJobSubmitterInvalid(t *testing.T) {
	for _, c := range []int{0, -1} {
		sched := &fakeSched{}
		_, err := JobSubmitter{Sched: sched}.Submit(context.Background(), c)
		var ve *ValidationError
		assert.True(t, errors.As(err, &ve))
		assert.Empty(t, sched.calls)
	}
}

func TestJobSubmitterNoRetry(t *testing.T) {
	sched := &fakeSched{err: errors.New("exit status 1")}
	_, err := JobSubmitter{Sched: sched}.Submit(context.Background(), 2)
	var se *SubmissionError
	require.True(t, errors.As(err, &se))
	assert.EqualError(t, se.Err, "exit status 1")
	assert.Len(t, sched.calls, 1)
}

func TestJobSubmitterPBS(t *testing.T) {
	cmd, args := stub(t, "qsub-fail")
	js := JobSubmitter{Sched: PBS{Cmd: cmd}}
	_, err := js.Submit(context.Background(), 3)
	var se *SubmissionError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, se.Cmd, "ncpus=3,mem=12gb")
	assert.Equal(t, []string{"-l ncpus=3,mem=12gb -o log run_climtas.sh"},
		readLines(t, args))
}

func TestJobSubmitterCheckScript(t *testing.T) {
	sched := &fakeSched{}
	js := JobSubmitter{Sched: sched, Dir: t.TempDir(), CheckScript: true}
	_, err := js.Submit(context.Background(), 2)
	assert.True(t, errors.Is(err, ErrScriptNotFound))
	assert.Empty(t, sched.calls)

	dir, err := filepath.Abs("testfiles")
	require.NoError(t, err)
	js.Dir = dir
	_, err = js.Submit(context.Background(), 2)
	assert.NoError(t, err)
	assert.Len(t, sched.calls, 1)
}

func TestJobSubmitterCheckScriptStatError(t *testing.T) {
	sched := &fakeSched{}
	// a regular file where the submit directory should be
	js := JobSubmitter{Sched: sched, Dir: "testfiles/timings.dat", CheckScript: true}
	_, err := js.Submit(context.Background(), 2)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "script", ve.Field)
	assert.False(t, errors.Is(err, ErrScriptNotFound))
	assert.Empty(t, sched.calls)
}

func TestJobSubmitterCheckScriptMessage(t *testing.T) {
	dir := t.TempDir()
	js := JobSubmitter{Sched: &fakeSched{}, Dir: dir, CheckScript: true}
	_, err := js.Submit(context.Background(), 2)
	path := filepath.Join(dir, "run_climtas.sh")
	assert.EqualError(t, err,
		"invalid script "+path+": workload script not found")
}
