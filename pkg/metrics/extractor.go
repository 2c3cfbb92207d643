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

// Package metrics reduces per rank result documents to run level duration, memory and stage metrics.
package metrics

import (
	"fmt"

	"github.com/rawbby/kaspan-bench/pkg/result"
	"github.com/rawbby/kaspan-bench/pkg/workloads/program"
	"github.com/shopspring/decimal"
)

const (
	durationKey     = "duration"
	memoryKey       = "memory"
	decidedCountKey = "decided_count"
	rootStageName   = "scc"
)

var (
	benchmarkPath = []string{"benchmark"}
	sccPath       = []string{"benchmark", "scc"}
)

// StageMetric is one algorithmic stage of a run.
type StageMetric struct {
	Name         string  `json:"name"`
	Duration     float64 `json:"duration"`
	DecidedCount int64   `json:"decided_count"`
}

// RunMetrics holds everything extracted from one result document.
type RunMetrics struct {
	// Duration in seconds, the slowest rank.
	Duration float64
	// Memory in bytes per rank.
	Memory float64
	Stages []StageMetric
}

// Extractor reads the metrics of one program from result documents. Documents are never modified.
type Extractor interface {
	Duration(document *result.Document) (float64, error)
	Memory(document *result.Document) (float64, error)
	Stages(document *result.Document) ([]StageMetric, error)
}

// strategy describes where a program reports its metrics.
type strategy struct {
	// memoryScopes hold peak memory readings, relative to the benchmark object.
	memoryScopes [][]string
	// fallbackStage is a stage every run has even when it reports no decided count.
	fallbackStage string
}

var strategies = map[program.Program]strategy{
	program.KaSpan: {
		memoryScopes: [][]string{
			{"scc", "forward_backward_search", memoryKey},
			{"scc", "ecl", memoryKey},
			{"scc", "residual", memoryKey},
		},
		fallbackStage: "tarjan",
	},
	program.ISpan: {
		memoryScopes: [][]string{
			{"scc", "alloc", memoryKey},
			{"scc", "residual", "post_processing", memoryKey},
		},
	},
	program.HPCGraph: {
		memoryScopes: [][]string{
			{"memory_after_adapter"},
			{"scc", "scc", memoryKey},
			{"memory_after_scc"},
		},
	},
}

// For returns the extractor of the variant's program.
func For(variant program.Variant) (Extractor, error) {
	s, ok := strategies[variant.Program]
	if !ok {
		return nil, program.UnknownVariantError{Name: variant.Name()}
	}
	return s, nil
}

// Extract runs all extractions on the document.
func Extract(extractor Extractor, document *result.Document) (RunMetrics, error) {
	duration, err := extractor.Duration(document)
	if err != nil {
		return RunMetrics{}, err
	}
	memory, err := extractor.Memory(document)
	if err != nil {
		return RunMetrics{}, err
	}
	stages, err := extractor.Stages(document)
	if err != nil {
		return RunMetrics{}, err
	}
	return RunMetrics{Duration: duration, Memory: memory, Stages: stages}, nil
}

func seconds(nanoseconds int64) float64 {
	return decimal.New(nanoseconds, -9).InexactFloat64()
}

func join(prefix []string, path ...string) []string {
	return append(append([]string{}, prefix...), path...)
}

func corrupt(format string, args ...interface{}) error {
	return result.CorruptResultError{Reason: fmt.Sprintf(format, args...)}
}
