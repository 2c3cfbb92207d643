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

package visualization

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/rawbby/kaspan-bench/pkg/metrics"
	"github.com/rawbby/kaspan-bench/pkg/scaling"
	"github.com/samber/lo"
)

const missing = "-"

// SkipTable lists the result files excluded from a load.
func SkipTable(report scaling.Report) *Table {
	data := lo.Map(report.Skipped, func(skip scaling.Skip, _ int) []string {
		return []string{skip.File, skip.Reason, skip.Err.Error()}
	})
	return NewTable([]string{"file", "reason", "error"}, data)
}

// ScalingTable shows every run on one graph in the units selected for r.
func ScalingTable(d *scaling.Dataset, r scaling.Range, scalingMode, graph string) *Table {
	timeUnit := scaling.TimeUnit(r[scaling.MetricDuration].Max)
	memoryUnit := scaling.MemoryUnit(r[scaling.MetricMemory].Max)

	speedupHeader := "speedup"
	if scalingMode == scaling.Weak {
		speedupHeader = "efficiency"
	}
	headers := []string{"variant", "np", "duration [" + timeUnit.Label + "]", speedupHeader,
		"memory/core [" + memoryUnit.Label + "]", "stages [" + timeUnit.Label + "]"}

	data := [][]string{}
	for _, variant := range d.Variants(scalingMode, graph) {
		for _, np := range d.ProcessCounts(scalingMode, graph) {
			key := scaling.Key{Scaling: scalingMode, Graph: graph, Variant: variant, NP: np}
			entry, ok := d.Entry(key)
			if !ok {
				continue
			}

			speedup := missing
			if value, ok := d.Speedup(key); ok {
				speedup = fmt.Sprintf("%.3f", value)
			}
			data = append(data, []string{
				variant,
				strconv.FormatInt(np, 10),
				fmt.Sprintf("%.3f", entry.Duration*timeUnit.Multiplier),
				speedup,
				fmt.Sprintf("%.3f", entry.Memory*memoryUnit.Multiplier),
				stageSummary(entry, timeUnit),
			})
		}
	}
	return NewTable(headers, data)
}

func stageSummary(entry scaling.Entry, unit scaling.Unit) string {
	parts := lo.Map(entry.Stages, func(stage metrics.StageMetric, _ int) string {
		return fmt.Sprintf("%s=%.3f", stage.Name, stage.Duration*unit.Multiplier)
	})
	parts = append(parts, fmt.Sprintf("other=%.3f", scaling.OtherDuration(entry)*unit.Multiplier))
	return strings.Join(parts, " ")
}

// SummaryTable aggregates each variant per scaling mode: median duration and geometric mean speedup.
func SummaryTable(d *scaling.Dataset) *Table {
	type group struct{ scaling, variant string }

	durations := map[group][]float64{}
	speedups := map[group][]float64{}
	groups := []group{}
	for _, entry := range d.Entries() {
		g := group{entry.Scaling, entry.Variant}
		if _, ok := durations[g]; !ok {
			groups = append(groups, g)
		}
		durations[g] = append(durations[g], entry.Duration)
		if speedup, ok := d.Speedup(entry.Key); ok && speedup > 0 {
			speedups[g] = append(speedups[g], speedup)
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].scaling != groups[j].scaling {
			return groups[i].scaling < groups[j].scaling
		}
		return groups[i].variant < groups[j].variant
	})

	data := [][]string{}
	for _, g := range groups {
		median, err := stats.Median(durations[g])
		medianText := missing
		if err == nil {
			medianText = fmt.Sprintf("%.6f", median)
		}

		geoMeanText := missing
		if mean, err := stats.GeometricMean(speedups[g]); err == nil {
			geoMeanText = fmt.Sprintf("%.3f", mean)
		}

		data = append(data, []string{g.scaling, g.variant, strconv.Itoa(len(durations[g])), medianText, geoMeanText})
	}
	return NewTable([]string{"scaling", "variant", "runs", "median duration [s]", "geomean speedup"}, data)
}
