package main

import "fmt"

const (
	// workload flavor, selects run_<SUBTYPE>.sh
	SUBTYPE     = "climtas"
	// GB of memory requested per cpu
	MEM_PER_CPU = 4
	// where the scheduler writes the job's stdout
	LOG_PATH    = "log"
	// default cpu count for a plain submission
	NCPUS       = 2
)

var SCRIPT = fmt.Sprintf("run_%s.sh", SUBTYPE)

// ResourceRequest is everything handed to the scheduler for a single
// job. It is built right before submission and not kept afterwards.
type ResourceRequest struct {
	CPUs     int
	MemoryGB int
	LogPath  string
	Script   string
}

// Memory returns the memory in GB requested for cpus cpus
func Memory(cpus int) int {
	return cpus * MEM_PER_CPU
}

// NewRequest returns the ResourceRequest for cpus, which must be
// positive
func NewRequest(cpus int) (ResourceRequest, error) {
	if cpus <= 0 {
		return ResourceRequest{}, &ValidationError{
			Field: "ncpus",
			Value: cpus,
			Err:   ErrInvalidCPUs,
		}
	}
	return ResourceRequest{
		CPUs:     cpus,
		MemoryGB: Memory(cpus),
		LogPath:  LOG_PATH,
		Script:   SCRIPT,
	}, nil
}

// Spec formats r as an argument to qsub -l
func (r ResourceRequest) Spec() string {
	return fmt.Sprintf("ncpus=%d,mem=%dgb", r.CPUs, r.MemoryGB)
}
