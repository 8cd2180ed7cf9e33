package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Timing is the walltime of one benchmark run
type Timing struct {
	CPUs    int
	Seconds float64
}

// Scaling summarizes the runs for one cpu count
type Scaling struct {
	CPUs       int
	Runs       int
	Mean       float64
	StdDev     float64
	Speedup    float64
	Efficiency float64
}

// LoadTimings reads benchmark timings from filename
func LoadTimings(filename string) ([]Timing, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTimings(f)
}

// ReadTimings reads lines of "ncpus seconds" from r. Blank lines and
// lines starting with # are skipped
func ReadTimings(r io.Reader) ([]Timing, error) {
	scanner := bufio.NewScanner(r)
	var (
		ret    []Timing
		line   string
		fields []string
		i      int
	)
	for i = 1; scanner.Scan(); i++ {
		line = strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields = strings.Fields(line)
		if len(fields) != 2 {
			return nil, errors.Wrapf(ErrMalformedTiming, "line %d: %q", i, line)
		}
		cpus, err := strconv.Atoi(fields[0])
		if err != nil || cpus <= 0 {
			return nil, errors.Wrapf(ErrMalformedTiming, "line %d: bad ncpus %q", i, fields[0])
		}
		secs, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || secs <= 0 {
			return nil, errors.Wrapf(ErrMalformedTiming, "line %d: bad walltime %q", i, fields[1])
		}
		ret = append(ret, Timing{CPUs: cpus, Seconds: secs})
	}
	return ret, scanner.Err()
}

// Scale groups timings by cpu count and computes the speedup and
// parallel efficiency of each count relative to the smallest one
func Scale(timings []Timing) []Scaling {
	if len(timings) == 0 {
		return nil
	}
	groups := make(map[int][]float64)
	for _, t := range timings {
		groups[t.CPUs] = append(groups[t.CPUs], t.Seconds)
	}
	counts := make([]int, 0, len(groups))
	for c := range groups {
		counts = append(counts, c)
	}
	sort.Ints(counts)
	ret := make([]Scaling, len(counts))
	for i, c := range counts {
		secs := groups[c]
		ret[i] = Scaling{
			CPUs: c,
			Runs: len(secs),
			Mean: stat.Mean(secs, nil),
		}
		// sample std dev is undefined for one run
		if len(secs) > 1 {
			ret[i].StdDev = stat.StdDev(secs, nil)
		}
	}
	base := ret[0]
	for i := range ret {
		ret[i].Speedup = base.Mean / ret[i].Mean
		ret[i].Efficiency = ret[i].Speedup *
			float64(base.CPUs) / float64(ret[i].CPUs)
	}
	return ret
}

// BestSpeedup returns the cpu count with the largest speedup in s
func BestSpeedup(s []Scaling) (cpus int, speedup float64) {
	if len(s) == 0 {
		return 0, 0
	}
	speedups := make([]float64, len(s))
	for i := range s {
		speedups[i] = s[i].Speedup
	}
	best := floats.MaxIdx(speedups)
	return s[best].CPUs, speedups[best]
}

// WriteReport writes s as a table to w, followed by a line with the
// best speedup
func WriteReport(w io.Writer, s []Scaling) error {
	nw := bufio.NewWriter(w)
	fmt.Fprintf(nw, "%5s%6s%12s%12s%12s%12s\n",
		"CPUs", "Runs", "Mean", "StdDev", "Speedup", "Eff")
	for _, sc := range s {
		fmt.Fprintf(nw, "%5d%6d%12.2f%12.2f%12.4f%12.4f\n",
			sc.CPUs, sc.Runs, sc.Mean, sc.StdDev,
			sc.Speedup, sc.Efficiency)
	}
	if len(s) > 0 {
		cpus, speedup := BestSpeedup(s)
		// line the value up under the Speedup column
		fmt.Fprintf(nw, "%-35s%12.4f\n",
			fmt.Sprintf("best at %d cpus", cpus), speedup)
	}
	return nw.Flush()
}
