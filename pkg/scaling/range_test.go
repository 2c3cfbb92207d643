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

func TestGlobalRange(t *testing.T) {
	Convey("When every observed duration is zero", t, func() {
		r := GlobalRange(NewDataset([]Entry{entry(Weak, "g", "kaspan", 1, 0), entry(Weak, "g", "kaspan", 2, 0)}))

		So(r[MetricDuration], ShouldResemble, Interval{Min: 1e-9, Max: 1.0})
		So(r[MetricStepDuration], ShouldResemble, Interval{Min: 1e-9, Max: 1.0})
		So(r[MetricStepThroughput], ShouldResemble, Interval{Min: 1.0, Max: 1.0})
	})

	Convey("When the dataset is empty", t, func() {
		r := GlobalRange(NewDataset(nil))
		So(r, ShouldHaveLength, 5)
		for _, interval := range r {
			So(math.IsNaN(interval.Max), ShouldBeFalse)
			So(interval.Max, ShouldBeGreaterThanOrEqualTo, interval.Min)
			So(interval.Max, ShouldBeGreaterThan, 0)
		}
		So(r[MetricSpeedup], ShouldResemble, Interval{Min: 0, Max: 1.1})
		So(r[MetricMemory], ShouldResemble, Interval{Min: 0, Max: 1.0})
	})

	Convey("When values were observed", t, func() {
		r := GlobalRange(NewDataset([]Entry{
			entry(Strong, "g", "kaspan", 1, 10.0,
				metrics.StageMetric{Name: "ecl", Duration: 2.0, DecidedCount: 5000},
				metrics.StageMetric{Name: "tarjan", Duration: 0, DecidedCount: 7}),
			entry(Strong, "g", "kaspan", 4, 2.0),
		}))

		So(r[MetricDuration], ShouldResemble, Interval{Min: 1e-9, Max: 10.0})
		So(r[MetricMemory], ShouldResemble, Interval{Min: 0, Max: 4000.0})
		So(r[MetricSpeedup], ShouldResemble, Interval{Min: 0, Max: 5.0})
		So(r[MetricStepThroughput], ShouldResemble, Interval{Min: 1.0, Max: 2500.0})
		// The other duration of the first run is 8s.
		So(r[MetricStepDuration], ShouldResemble, Interval{Min: 1e-9, Max: 8.0})
	})

	Convey("Speedups close to one should still leave headroom", t, func() {
		r := GlobalRange(NewDataset([]Entry{entry(Weak, "g", "kaspan", 1, 1.0), entry(Weak, "g", "kaspan", 2, 1.0)}))
		So(r[MetricSpeedup].Max, ShouldEqual, 1.1)
	})
}

func TestUnits(t *testing.T) {
	Convey("Time units should follow magnitude thresholds", t, func() {
		So(TimeUnit(10), ShouldResemble, Unit{Multiplier: 1, Label: "s"})
		So(TimeUnit(9.9), ShouldResemble, Unit{Multiplier: 1e3, Label: "ms"})
		So(TimeUnit(1e-3), ShouldResemble, Unit{Multiplier: 1e3, Label: "ms"})
		So(TimeUnit(5e-6), ShouldResemble, Unit{Multiplier: 1e6, Label: "µs"})
		So(TimeUnit(1e-9), ShouldResemble, Unit{Multiplier: 1e9, Label: "ns"})
	})

	Convey("Memory units should follow magnitude thresholds", t, func() {
		So(MemoryUnit(2e9), ShouldResemble, Unit{Multiplier: 1e-9, Label: "GB"})
		So(MemoryUnit(1e6), ShouldResemble, Unit{Multiplier: 1e-6, Label: "MB"})
		So(MemoryUnit(999999), ShouldResemble, Unit{Multiplier: 1e-3, Label: "KB"})
		So(MemoryUnit(0), ShouldResemble, Unit{Multiplier: 1, Label: "B"})
		So(MemoryUnit(2.5e6).Format(2.5e6), ShouldEqual, "2.500 MB")
	})
}
