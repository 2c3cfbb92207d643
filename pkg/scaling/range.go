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

package scaling

import (
	"math"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
)

// Metrics covered by GlobalRange.
const (
	MetricDuration       = "duration"
	MetricMemory         = "memory"
	MetricSpeedup        = "speedup"
	MetricStepDuration   = "step_duration"
	MetricStepThroughput = "step_throughput"
)

const (
	defaultMax     = 1.0
	minSpeedupMax  = 1.1
	minThroughput  = 1.0
	minLogDuration = Epsilon
)

var rangeMinimum = map[string]float64{
	MetricDuration:       minLogDuration,
	MetricMemory:         0,
	MetricSpeedup:        0,
	MetricStepDuration:   minLogDuration,
	MetricStepThroughput: minThroughput,
}

// Interval is a closed range of values. Max is never below Min.
type Interval struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Range holds one interval per metric, shared by every plot of a session.
type Range map[string]Interval

// GlobalRange computes the ranges of all metrics over the dataset.
// Minimums are fixed so logarithmic axes stay defined; maximums default to 1 when nothing positive was observed.
func GlobalRange(d *Dataset) Range {
	observed := map[string][]float64{}
	for _, entry := range d.Entries() {
		observed[MetricDuration] = append(observed[MetricDuration], entry.Duration)
		observed[MetricMemory] = append(observed[MetricMemory], entry.Memory)
		if speedup, ok := d.Speedup(entry.Key); ok {
			observed[MetricSpeedup] = append(observed[MetricSpeedup], speedup)
		}

		for _, stage := range entry.Stages {
			if stage.Duration <= 0 {
				continue
			}
			observed[MetricStepThroughput] = append(observed[MetricStepThroughput], float64(stage.DecidedCount)/stage.Duration)
			observed[MetricStepDuration] = append(observed[MetricStepDuration], stage.Duration)
		}
		observed[MetricStepDuration] = append(observed[MetricStepDuration], OtherDuration(entry))
	}

	r := Range{}
	for metric, min := range rangeMinimum {
		max := observedMax(observed[metric])
		if metric == MetricSpeedup {
			max = math.Max(max, minSpeedupMax)
		}
		r[metric] = Interval{Min: min, Max: math.Max(max, min)}
	}
	return r
}

func observedMax(values []float64) float64 {
	finite := lo.Filter(values, func(v float64, _ int) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) })
	if len(finite) == 0 {
		return defaultMax
	}
	if max := floats.Max(finite); max > 0 {
		return max
	}
	return defaultMax
}
