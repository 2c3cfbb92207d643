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
	"testing"

	"github.com/rawbby/kaspan-bench/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func entry(scaling, graph, variant string, np int64, duration float64, stages ...metrics.StageMetric) Entry {
	return Entry{
		Key:        Key{Scaling: scaling, Graph: graph, Variant: variant, NP: np},
		RunMetrics: metrics.RunMetrics{Duration: duration, Memory: float64(np) * 1000, Stages: stages},
	}
}

func TestDataset(t *testing.T) {
	Convey("While aggregating a strong scaling sweep", t, func() {
		dataset := NewDataset([]Entry{
			entry(Strong, "g", "kaspan", 4, 3.0),
			entry(Strong, "g", "kaspan", 1, 10.0),
			entry(Strong, "g", "kaspan", 2, 6.0),
			entry(Strong, "g", "ispan", 2, 5.0),
			entry(Weak, "h", "hpc_graph", 8, 1.0),
		})

		Convey("Accessors should be sorted", func() {
			So(dataset.Len(), ShouldEqual, 5)
			So(dataset.Scalings(), ShouldResemble, []string{Strong, Weak})
			So(dataset.Graphs(Strong), ShouldResemble, []string{"g"})
			So(dataset.Variants(Strong, "g"), ShouldResemble, []string{"ispan", "kaspan"})
			So(dataset.ProcessCounts(Strong, "g"), ShouldResemble, []int64{1, 2, 4})
			So(dataset.Entries()[0].Key, ShouldResemble, Key{Scaling: Strong, Graph: "g", Variant: "ispan", NP: 2})
		})

		Convey("The baseline should be the fastest run at the smallest process count", func() {
			baseline, ok := dataset.Baseline(Strong, "g")
			So(ok, ShouldBeTrue)
			So(baseline, ShouldEqual, 10.0)

			_, ok = dataset.Baseline(Strong, "unknown")
			So(ok, ShouldBeFalse)
		})

		Convey("Speedups should divide the baseline by the duration", func() {
			expected := map[int64]float64{1: 1.0, 2: 1.667, 4: 3.333}
			for np, value := range expected {
				speedup, ok := dataset.Speedup(Key{Scaling: Strong, Graph: "g", Variant: "kaspan", NP: np})
				So(ok, ShouldBeTrue)
				So(speedup, ShouldAlmostEqual, value, 1e-3)
			}

			_, ok := dataset.Speedup(Key{Scaling: Strong, Graph: "g", Variant: "kaspan", NP: 8})
			So(ok, ShouldBeFalse)
		})

		Convey("Ideal speedups should depend on the scaling mode", func() {
			ideal, ok := dataset.IdealSpeedup(Key{Scaling: Strong, Graph: "g", Variant: "kaspan", NP: 4})
			So(ok, ShouldBeTrue)
			So(ideal, ShouldEqual, 4.0)

			ideal, ok = dataset.IdealSpeedup(Key{Scaling: Weak, Graph: "h", Variant: "hpc_graph", NP: 8})
			So(ok, ShouldBeTrue)
			So(ideal, ShouldEqual, 1.0)
		})

		Convey("Speedup should not decrease while durations decrease", func() {
			previous := 0.0
			for _, np := range dataset.ProcessCounts(Strong, "g") {
				speedup, ok := dataset.Speedup(Key{Scaling: Strong, Graph: "g", Variant: "kaspan", NP: np})
				So(ok, ShouldBeTrue)
				So(speedup, ShouldBeGreaterThanOrEqualTo, previous)
				previous = speedup
			}
		})
	})

	Convey("Zero durations should not break speedups", t, func() {
		dataset := NewDataset([]Entry{entry(Weak, "g", "kaspan", 1, 1.0), entry(Weak, "g", "kaspan", 2, 0)})
		speedup, ok := dataset.Speedup(Key{Scaling: Weak, Graph: "g", Variant: "kaspan", NP: 2})
		So(ok, ShouldBeTrue)
		So(math.IsInf(speedup, 0), ShouldBeFalse)
		So(speedup, ShouldAlmostEqual, 1e9, 1)
	})

	Convey("Later entries should replace earlier ones with the same key", t, func() {
		dataset := NewDataset([]Entry{entry(Weak, "g", "kaspan", 1, 1.0), entry(Weak, "g", "kaspan", 1, 2.0)})
		So(dataset.Len(), ShouldEqual, 1)
		e, ok := dataset.Entry(Key{Scaling: Weak, Graph: "g", Variant: "kaspan", NP: 1})
		So(ok, ShouldBeTrue)
		So(e.Duration, ShouldEqual, 2.0)
	})

	Convey("The other duration should cover the time outside of stages", t, func() {
		e := entry(Weak, "g", "kaspan", 1, 1.0,
			metrics.StageMetric{Name: "ecl", Duration: 0.25},
			metrics.StageMetric{Name: "tarjan", Duration: 0.5})
		So(OtherDuration(e), ShouldEqual, 0.25)

		e.Duration = 0.5
		So(OtherDuration(e), ShouldEqual, 0)

		So(NewDataset([]Entry{e}).Stages(), ShouldResemble, []string{"ecl", "tarjan"})
	})
}
