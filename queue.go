package main

import (
	"bufio"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

var STAT_CMD = func() (string, []string) {
	return "qstat", nil
}

// job states counted as still in the queue: queued, running, held,
// waiting and exiting
const QUEUED_STATES = "QRHWE"

// Stat updates qstat, a map of job ids to their queue status. The map
// value is true if qstat lists the job in one of QUEUED_STATES and
// false otherwise
func Stat(qstat map[string]bool) error {
	name, args := STAT_CMD()
	status, err := exec.Command(name, args...).Output()
	if err != nil {
		return errors.Wrapf(err, "running %s", name)
	}
	scanner := bufio.NewScanner(strings.NewReader(string(status)))
	var (
		line   string
		fields []string
		header = true
	)
	// initialize them all to false and set true if listed
	for key := range qstat {
		qstat[key] = false
	}
	for scanner.Scan() {
		line = scanner.Text()
		if strings.HasPrefix(line, "---") {
			header = false
			continue
		} else if header {
			continue
		}
		fields = strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		if !strings.Contains(QUEUED_STATES, fields[4]) {
			continue
		}
		for _, key := range matchJobs(qstat, fields[0]) {
			qstat[key] = true
		}
	}
	return scanner.Err()
}

// matchJobs finds the keys in qstat for a job id as printed by qstat,
// which truncates long ids and marks them with a trailing *. Every key
// sharing a truncated prefix matches
func matchJobs(qstat map[string]bool, listed string) []string {
	if _, ok := qstat[listed]; ok {
		return []string{listed}
	}
	if !strings.HasSuffix(listed, "*") {
		return nil
	}
	prefix := strings.TrimSuffix(listed, "*")
	var keys []string
	for key := range qstat {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys
}
