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

// Package scaling aggregates run metrics into scaling statistics: baselines, speedups and global ranges.
package scaling

import (
	"math"
	"sort"

	"github.com/rawbby/kaspan-bench/pkg/metrics"
	"github.com/samber/lo"
)

// Epsilon replaces durations too small to divide by.
const Epsilon = 1e-9

// Scaling modes as they appear in result file names.
const (
	Weak   = "weak"
	Strong = "strong"
)

// Key identifies one entry of a dataset.
type Key struct {
	Scaling string
	Graph   string
	Variant string
	NP      int64
}

func (k Key) less(other Key) bool {
	if k.Scaling != other.Scaling {
		return k.Scaling < other.Scaling
	}
	if k.Graph != other.Graph {
		return k.Graph < other.Graph
	}
	if k.Variant != other.Variant {
		return k.Variant < other.Variant
	}
	return k.NP < other.NP
}

// Entry holds the metrics of one run.
type Entry struct {
	Key
	File string
	metrics.RunMetrics
}

// Dataset is the immutable set of entries loaded in one analysis session.
type Dataset struct {
	entries map[Key]Entry
	keys    []Key
}

// NewDataset builds a dataset. A later entry replaces an earlier one with the same key.
func NewDataset(entries []Entry) *Dataset {
	d := &Dataset{entries: make(map[Key]Entry, len(entries))}
	for _, entry := range entries {
		d.entries[entry.Key] = entry
	}

	d.keys = lo.Keys(d.entries)
	sort.Slice(d.keys, func(i, j int) bool { return d.keys[i].less(d.keys[j]) })
	return d
}

// Len returns the number of entries.
func (d *Dataset) Len() int {
	return len(d.keys)
}

// Entries returns all entries ordered by scaling, graph, variant and process count.
func (d *Dataset) Entries() []Entry {
	return lo.Map(d.keys, func(key Key, _ int) Entry { return d.entries[key] })
}

// Entry returns the entry of key.
func (d *Dataset) Entry(key Key) (Entry, bool) {
	entry, ok := d.entries[key]
	return entry, ok
}

func (d *Dataset) filter(predicate func(Key) bool) []Key {
	return lo.Filter(d.keys, func(key Key, _ int) bool { return predicate(key) })
}

// Scalings returns the scaling modes present, sorted.
func (d *Dataset) Scalings() []string {
	return lo.Uniq(lo.Map(d.keys, func(key Key, _ int) string { return key.Scaling }))
}

// Graphs returns the graphs of a scaling mode, sorted.
func (d *Dataset) Graphs(scaling string) []string {
	keys := d.filter(func(key Key) bool { return key.Scaling == scaling })
	return lo.Uniq(lo.Map(keys, func(key Key, _ int) string { return key.Graph }))
}

// Variants returns the program variants run on a graph, sorted.
func (d *Dataset) Variants(scaling, graph string) []string {
	keys := d.filter(func(key Key) bool { return key.Scaling == scaling && key.Graph == graph })
	return lo.Uniq(lo.Map(keys, func(key Key, _ int) string { return key.Variant }))
}

// ProcessCounts returns the process counts run on a graph by any variant, ascending.
func (d *Dataset) ProcessCounts(scaling, graph string) []int64 {
	keys := d.filter(func(key Key) bool { return key.Scaling == scaling && key.Graph == graph })
	counts := lo.Uniq(lo.Map(keys, func(key Key, _ int) int64 { return key.NP }))
	sort.Slice(counts, func(i, j int) bool { return counts[i] < counts[j] })
	return counts
}

// Stages returns the names of all stages found in any entry, sorted.
func (d *Dataset) Stages() []string {
	names := lo.Uniq(lo.FlatMap(d.keys, func(key Key, _ int) []string {
		return lo.Map(d.entries[key].Stages, func(stage metrics.StageMetric, _ int) string { return stage.Name })
	}))
	sort.Strings(names)
	return names
}

// Baseline is the fastest duration of any variant at the smallest process count run on the graph.
func (d *Dataset) Baseline(scaling, graph string) (float64, bool) {
	counts := d.ProcessCounts(scaling, graph)
	if len(counts) == 0 {
		return 0, false
	}

	keys := d.filter(func(key Key) bool {
		return key.Scaling == scaling && key.Graph == graph && key.NP == counts[0]
	})
	if len(keys) == 0 {
		return 0, false
	}
	return lo.Min(lo.Map(keys, func(key Key, _ int) float64 { return d.entries[key].Duration })), true
}

// Speedup is the baseline divided by the entry's duration.
// For weak scaling the same ratio is read as efficiency, ideally staying at 1.
func (d *Dataset) Speedup(key Key) (float64, bool) {
	entry, ok := d.entries[key]
	if !ok {
		return 0, false
	}
	baseline, ok := d.Baseline(key.Scaling, key.Graph)
	if !ok {
		return 0, false
	}
	return baseline / math.Max(entry.Duration, Epsilon), true
}

// IdealSpeedup is the speedup of perfect scaling relative to the smallest process count.
func (d *Dataset) IdealSpeedup(key Key) (float64, bool) {
	counts := d.ProcessCounts(key.Scaling, key.Graph)
	if len(counts) == 0 {
		return 0, false
	}
	if key.Scaling == Strong {
		return float64(key.NP) / float64(counts[0]), true
	}
	return 1, true
}

// OtherDuration is the part of the total duration not covered by any stage, never negative.
func OtherDuration(entry Entry) float64 {
	covered := lo.SumBy(entry.Stages, func(stage metrics.StageMetric) float64 {
		return math.Max(stage.Duration, 0)
	})
	return math.Max(0, entry.Duration-covered)
}
