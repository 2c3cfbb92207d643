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

package metrics

import (
	"strings"

	"github.com/rawbby/kaspan-bench/pkg/result"
)

// Duration returns the slowest rank's total SCC time in seconds.
func (s strategy) Duration(document *result.Document) (float64, error) {
	path := join(sccPath, durationKey)

	var slowest int64
	for rank, tree := range document.Ranks {
		duration, ok := tree.Int(path...)
		if !ok {
			return 0, MissingMetricError{Rank: rank, Path: path}
		}
		if duration > slowest {
			slowest = duration
		}
	}

	if slowest <= 0 {
		return 0, corrupt("non-positive duration %d ns", slowest)
	}
	return seconds(slowest), nil
}

// Memory returns the peak memory increase over the base reading, averaged over the ranks.
// Ranks without any scope reading contribute nothing.
func (s strategy) Memory(document *result.Document) (float64, error) {
	basePath := join(benchmarkPath, memoryKey)

	var total int64
	for rank, tree := range document.Ranks {
		base, ok := tree.Int(basePath...)
		if !ok {
			return 0, MissingMetricError{Rank: rank, Path: basePath}
		}

		peak, found := int64(0), false
		for _, scope := range s.memoryScopes {
			memory, ok := tree.Int(join(benchmarkPath, scope...)...)
			if !ok {
				continue
			}
			if !found || memory > peak {
				peak, found = memory, true
			}
		}
		if !found {
			continue
		}

		if peak < base {
			return 0, corrupt("rank %d: peak memory %d is below base memory %d", rank, peak, base)
		}
		total += peak - base
	}

	return float64(total) / float64(document.NP()), nil
}

// Stages returns every stage below benchmark.scc for which rank 0 reports a decided count.
// The stage duration is the maximum over the ranks reporting it.
func (s strategy) Stages(document *result.Document) ([]StageMetric, error) {
	stages := []StageMetric{}
	if document.NP() == 0 {
		return stages, nil
	}

	hasFallback := false
	if scc, ok := document.Ranks[0].Lookup(sccPath...); ok {
		for _, match := range scc.Find(decidedCountKey) {
			decided, ok := match.Value.Int()
			if !ok {
				return nil, MissingMetricError{Rank: 0, Path: join(join(sccPath, match.Path...), decidedCountKey)}
			}

			name := match.Name(rootStageName)
			duration, ok, err := s.stageDuration(document, match.Path)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}

			hasFallback = hasFallback || name == s.fallbackStage
			stages = append(stages, StageMetric{Name: name, Duration: duration, DecidedCount: decided})
		}
	}

	if s.fallbackStage == "" || hasFallback {
		return stages, nil
	}

	duration, ok, err := s.stageDuration(document, []string{s.fallbackStage})
	if err != nil || !ok {
		return stages, err
	}
	n, ok := document.Ranks[0].Int(join(benchmarkPath, "n")...)
	if !ok {
		return nil, MissingMetricError{Rank: 0, Path: join(benchmarkPath, "n")}
	}
	return append(stages, StageMetric{Name: s.fallbackStage, Duration: duration, DecidedCount: n}), nil
}

// stageDuration returns the slowest duration of the stage at path below benchmark.scc.
// The second result is false when no rank reports one.
func (s strategy) stageDuration(document *result.Document, path []string) (float64, bool, error) {
	durationPath := join(join(sccPath, path...), durationKey)

	var slowest int64
	found := false
	for _, tree := range document.Ranks {
		duration, ok := tree.Int(durationPath...)
		if !ok {
			continue
		}
		if !found || duration > slowest {
			slowest, found = duration, true
		}
	}

	if !found {
		return 0, false, nil
	}
	if slowest <= 0 {
		return 0, false, corrupt("non-positive duration %d ns at %s", slowest, strings.Join(durationPath, "."))
	}
	return seconds(slowest), true, nil
}
