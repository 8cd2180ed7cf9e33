package main

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

const EPS = 1e-10

// toInts converts a list of strings to ints using strconv.Atoi
func toInts(strs []string) ([]int, error) {
	ret := make([]int, len(strs))
	var err error
	for i, s := range strs {
		ret[i], err = strconv.Atoi(s)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i+1)
		}
	}
	return ret, nil
}

func Equal(a, b float64) bool {
	return math.Abs(a-b) <= EPS
}
