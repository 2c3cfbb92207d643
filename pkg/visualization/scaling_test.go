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
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/rawbby/kaspan-bench/pkg/metrics"
	"github.com/rawbby/kaspan-bench/pkg/scaling"
	. "github.com/smartystreets/goconvey/convey"
)

func entry(scalingMode, variant string, np int64, duration float64) scaling.Entry {
	return scaling.Entry{
		Key: scaling.Key{Scaling: scalingMode, Graph: "g", Variant: variant, NP: np},
		RunMetrics: metrics.RunMetrics{Duration: duration, Memory: 2e6, Stages: []metrics.StageMetric{
			{Name: "ecl", Duration: duration / 2, DecidedCount: 10},
		}},
	}
}

func TestTables(t *testing.T) {
	Convey("While printing scaling tables", t, func() {
		dataset := scaling.NewDataset([]scaling.Entry{
			entry(scaling.Strong, "kaspan", 1, 8.0),
			entry(scaling.Strong, "kaspan", 2, 4.0),
			entry(scaling.Strong, "kaspan", 4, 2.0),
			entry(scaling.Strong, "ispan", 1, 16.0),
			entry(scaling.Weak, "kaspan", 2, 1.0),
		})
		r := scaling.GlobalRange(dataset)

		Convey("The scaling table should hold one row per run in display units", func() {
			table := ScalingTable(dataset, r, scaling.Strong, "g")
			So(table.Rows(), ShouldEqual, 4)
			So(table.headers[2], ShouldEqual, "duration [s]")
			So(table.headers[4], ShouldEqual, "memory/core [MB]")
			So(table.data[0], ShouldResemble, []string{"ispan", "1", "16.000", "0.500", "2.000", "ecl=8.000 other=8.000"})
			So(table.data[3][3], ShouldEqual, "4.000")

			So(ScalingTable(dataset, r, scaling.Weak, "g").headers[3], ShouldEqual, "efficiency")
		})

		Convey("The summary table should aggregate each variant", func() {
			table := SummaryTable(dataset)
			So(table.data, ShouldResemble, [][]string{
				{"strong", "ispan", "1", "16.000000", "0.500"},
				{"strong", "kaspan", "3", "4.000000", "2.000"},
				{"weak", "kaspan", "1", "1.000000", "1.000"},
			})
		})

		Convey("Tables should render to a writer", func() {
			var buffer bytes.Buffer
			SummaryTable(dataset).Draw(&buffer)
			So(buffer.String(), ShouldContainSubstring, "geomean speedup")
			So(buffer.String(), ShouldContainSubstring, "kaspan")
		})
	})

	Convey("The skip table should list every skipped file", t, func() {
		table := SkipTable(scaling.Report{Skipped: []scaling.Skip{
			{File: "weak_x_np1_g.json", Reason: scaling.ReasonUnknownVariant, Err: errors.New("unknown program variant \"x\"")},
		}})
		So(table.data, ShouldResemble, [][]string{
			{"weak_x_np1_g.json", "unknown_variant", "unknown program variant \"x\""},
		})
	})

	Convey("Experiment metadata should name id and directory", t, func() {
		var buffer bytes.Buffer
		PrintExperimentMetadata(&buffer, NewExperimentMetadata("0a1b2c_3d4e", "/data/0a1b2c_3d4e", 12, 1))
		So(buffer.String(), ShouldEqual, "Experiment id: 0a1b2c_3d4e\nDirectory: /data/0a1b2c_3d4e\nRuns: 12 (1 failed)\n")
	})
}
