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
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/rawbby/kaspan-bench/pkg/metrics"
	"github.com/rawbby/kaspan-bench/pkg/topo"
)

var boundaryLabels = [][2]string{
	{"single threaded", "multithreaded"},
	{"single socket", "multi socket"},
	{"single node", "multi node"},
}

// Boundary marks a topology border on the process count axis.
type Boundary struct {
	Position float64 `json:"position"`
	Left     string  `json:"left"`
	Right    string  `json:"right"`
}

// Point is one process count of a series.
type Point struct {
	NP            int64                 `json:"np"`
	Duration      float64               `json:"duration"`
	Memory        float64               `json:"memory"`
	Speedup       *float64              `json:"speedup"`
	IdealSpeedup  float64               `json:"ideal_speedup"`
	OtherDuration float64               `json:"other_duration"`
	Stages        []metrics.StageMetric `json:"stages"`
}

// Series holds the points of one variant on one graph.
type Series struct {
	Scaling  string   `json:"scaling"`
	Graph    string   `json:"graph"`
	Variant  string   `json:"variant"`
	Baseline *float64 `json:"baseline"`
	Points   []Point  `json:"points"`
}

// Statistics is everything an external renderer needs to draw the scaling plots.
type Statistics struct {
	Boundaries []Boundary `json:"boundaries"`
	TimeUnit   Unit       `json:"time_unit"`
	MemoryUnit Unit       `json:"memory_unit"`
	Range      Range      `json:"range"`
	Stages     []string   `json:"stages"`
	Series     []Series   `json:"series"`
}

// NewStatistics collects the statistics of a dataset.
func NewStatistics(d *Dataset, r Range, topology topo.Topology) Statistics {
	statistics := Statistics{
		Boundaries: []Boundary{},
		TimeUnit:   TimeUnit(r[MetricDuration].Max),
		MemoryUnit: MemoryUnit(r[MetricMemory].Max),
		Range:      r,
		Stages:     d.Stages(),
		Series:     []Series{},
	}

	for i, position := range topology.Boundaries() {
		statistics.Boundaries = append(statistics.Boundaries,
			Boundary{Position: position, Left: boundaryLabels[i][0], Right: boundaryLabels[i][1]})
	}

	for _, scaling := range d.Scalings() {
		for _, graph := range d.Graphs(scaling) {
			var baseline *float64
			if value, ok := d.Baseline(scaling, graph); ok {
				baseline = &value
			}

			for _, variant := range d.Variants(scaling, graph) {
				series := Series{Scaling: scaling, Graph: graph, Variant: variant, Baseline: baseline, Points: []Point{}}
				for _, np := range d.ProcessCounts(scaling, graph) {
					key := Key{Scaling: scaling, Graph: graph, Variant: variant, NP: np}
					entry, ok := d.Entry(key)
					if !ok {
						continue
					}
					series.Points = append(series.Points, newPoint(d, entry))
				}
				statistics.Series = append(statistics.Series, series)
			}
		}
	}
	return statistics
}

func newPoint(d *Dataset, entry Entry) Point {
	point := Point{
		NP:            entry.NP,
		Duration:      entry.Duration,
		Memory:        entry.Memory,
		OtherDuration: OtherDuration(entry),
		Stages:        entry.Stages,
	}
	if speedup, ok := d.Speedup(entry.Key); ok {
		point.Speedup = &speedup
	}
	point.IdealSpeedup, _ = d.IdealSpeedup(entry.Key)
	if point.Stages == nil {
		point.Stages = []metrics.StageMetric{}
	}
	return point
}

// Export writes the statistics of the dataset as JSON.
func Export(w io.Writer, d *Dataset, r Range, topology topo.Topology) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(NewStatistics(d, r, topology)), "cannot encode statistics")
}
