package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Config holds the settings read from a TOML input file. Any key left
// out keeps its value from DefaultConfig
type Config struct {
	Qsub        string `toml:"qsub"`
	Qstat       string `toml:"qstat"`
	NCPUs       int    `toml:"ncpus"`
	Dir         string `toml:"dir"`
	CheckScript bool   `toml:"check_script"`
	Sweep       []int  `toml:"sweep"`
}

func DefaultConfig() Config {
	return Config{
		Qsub:  SUBMIT_CMD,
		Qstat: "qstat",
		NCPUs: NCPUS,
		Sweep: []int{1, 2, 4, 8},
	}
}

// LoadConfig reads a Config from filename on top of the defaults.
// Unknown keys are an error
func LoadConfig(filename string) (Config, error) {
	conf := DefaultConfig()
	md, err := toml.DecodeFile(filename, &conf)
	if err != nil {
		return conf, errors.Wrapf(err, "loading config %s", filename)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return conf, fmt.Errorf("unknown keys in %s: %s",
			filename, strings.Join(keys, ", "))
	}
	return conf, nil
}

// ValidateSubmit reports every problem with the settings used for a
// single submission
func (conf Config) ValidateSubmit() error {
	var result *multierror.Error
	if conf.Qsub == "" {
		result = multierror.Append(result, errors.New("qsub must not be empty"))
	}
	if _, err := NewRequest(conf.NCPUs); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// ValidateSweep reports every problem with the settings used for a
// sweep
func (conf Config) ValidateSweep() error {
	var result *multierror.Error
	if conf.Qsub == "" {
		result = multierror.Append(result, errors.New("qsub must not be empty"))
	}
	if err := ValidateCPUs(conf.Sweep); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "sweep"))
	}
	return result.ErrorOrNil()
}
