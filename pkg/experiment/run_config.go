// Copyright (c) 2017 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package experiment

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Keys recognized in a RunConfig.
const (
	KeyN             = "n"
	KeyM             = "m"
	KeySeed          = "seed"
	KeyNP            = "np"
	KeyGraph         = "graph"
	KeyProgram       = "program"
	KeyExe           = "exe"
	KeyExperiment    = "experiment"
	KeyExperimentDir = "experiment_dir"
	KeyRun           = "run"
	KeyResult        = "result"
	KeyOutputFile    = "output_file"
	KeyJob           = "job"
	KeyErr           = "err"
	KeyOut           = "out"
	KeyTimeout       = "timeout"
	KeyOptions       = "options"
	KeyScaling       = "scaling"
	KeyBinaryDir     = "binary_dir"
)

// RunConfig holds the parameters of a single benchmark invocation.
// It is built incrementally and mutated in place by injectors.
type RunConfig map[string]interface{}

// Require returns a MissingParameterError for the first absent key.
func (c RunConfig) Require(component string, keys ...string) error {
	for _, key := range keys {
		if _, ok := c[key]; !ok {
			return MissingParameterError{Component: component, Key: key}
		}
	}
	return nil
}

// Has reports whether key is set.
func (c RunConfig) Has(key string) bool {
	_, ok := c[key]
	return ok
}

// Int returns the value of key as an integer. Integral floats and numeric strings are accepted.
func (c RunConfig) Int(key string) (int64, error) {
	value, ok := c[key]
	if !ok {
		return 0, MissingParameterError{Component: "run config", Key: key}
	}

	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			break
		}
		return int64(v), nil
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return int64(v), nil
		}
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return i, nil
		}
	}
	return 0, errors.Errorf("parameter %q is not an integer: %v", key, value)
}

// String returns the value of key formatted as a string.
func (c RunConfig) String(key string) (string, error) {
	value, ok := c[key]
	if !ok {
		return "", MissingParameterError{Component: "run config", Key: key}
	}

	switch v := value.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	}
	return fmt.Sprint(value), nil
}

// Duration returns the value of key as a duration. Numbers are seconds.
func (c RunConfig) Duration(key string) (time.Duration, error) {
	value, ok := c[key]
	if !ok {
		return 0, MissingParameterError{Component: "run config", Key: key}
	}
	if d, ok := value.(time.Duration); ok {
		return d, nil
	}
	seconds, err := c.Int(key)
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}

// Options returns the command line options collected so far.
func (c RunConfig) Options() []string {
	options, _ := c[KeyOptions].([]string)
	return options
}

// AppendOptions appends to the options list, creating it if absent.
func (c RunConfig) AppendOptions(options ...string) {
	c[KeyOptions] = append(c.Options(), options...)
}

// Clone returns a copy of the config. The options list is copied, other values are shared.
func (c RunConfig) Clone() RunConfig {
	clone := make(RunConfig, len(c))
	for key, value := range c {
		clone[key] = value
	}
	if options := c.Options(); options != nil {
		clone[KeyOptions] = append([]string{}, options...)
	}
	return clone
}
