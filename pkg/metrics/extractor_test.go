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
	"testing"

	"github.com/rawbby/kaspan-bench/pkg/result"
	"github.com/rawbby/kaspan-bench/pkg/workloads/program"
	. "github.com/smartystreets/goconvey/convey"
)

func decode(document string, np int) *result.Document {
	decoded, err := result.Decode(strings.NewReader(document), np)
	So(err, ShouldBeNil)
	return decoded
}

func extractor(variant program.Variant) Extractor {
	e, err := For(variant)
	So(err, ShouldBeNil)
	return e
}

const kaspanDocument = `{
  "0": {"benchmark": {"n": 1000, "memory": 1000, "scc": {
    "duration": 100, "decided_count": 1000,
    "forward_backward_search": {"duration": 40, "decided_count": 700, "memory": 5000},
    "ecl": {"duration": 30, "decided_count": 200, "memory": 3000},
    "residual": {"duration": 10, "memory": 1500},
    "tarjan": {"duration": 5}
  }}},
  "1": {"benchmark": {"n": 1000, "memory": 2000, "scc": {
    "duration": 250,
    "forward_backward_search": {"duration": 60, "memory": 2500},
    "ecl": {"duration": 20, "memory": 4000},
    "tarjan": {"duration": 7}
  }}}
}`

func TestExtractor(t *testing.T) {
	Convey("While extracting metrics of kaspan", t, func() {
		kaspan := extractor(program.Variant{Program: program.KaSpan})
		document := decode(kaspanDocument, 2)

		Convey("The duration should be the maximum over the ranks", func() {
			duration, err := kaspan.Duration(document)
			So(err, ShouldBeNil)
			So(duration, ShouldEqual, 250e-9)
		})

		Convey("Memory should be the mean peak increase over base", func() {
			memory, err := kaspan.Memory(document)
			So(err, ShouldBeNil)
			So(memory, ShouldEqual, (4000.0+2000.0)/2)
		})

		Convey("Stages should be found recursively with the tarjan fallback", func() {
			stages, err := kaspan.Stages(document)
			So(err, ShouldBeNil)
			So(stages, ShouldResemble, []StageMetric{
				{Name: "scc", Duration: 250e-9, DecidedCount: 1000},
				{Name: "ecl", Duration: 30e-9, DecidedCount: 200},
				{Name: "forward_backward_search", Duration: 60e-9, DecidedCount: 700},
				{Name: "tarjan", Duration: 7e-9, DecidedCount: 1000},
			})
		})

		Convey("A rank without duration should make the run incomplete", func() {
			_, err := kaspan.Duration(decode(`{"0": {"benchmark": {"scc": {"duration": 1}}}, "1": {"benchmark": {}}}`, 2))
			So(err, ShouldResemble, MissingMetricError{Rank: 1, Path: []string{"benchmark", "scc", "duration"}})
		})

		Convey("A non-positive duration should be rejected", func() {
			_, err := kaspan.Duration(decode(`{"0": {"benchmark": {"scc": {"duration": 0}}}}`, 1))
			So(err, ShouldHaveSameTypeAs, result.CorruptResultError{})
		})

		Convey("A peak below base memory should be rejected", func() {
			_, err := kaspan.Memory(decode(`{"0": {"benchmark": {"memory": 10, "scc": {"ecl": {"memory": 5}}}}}`, 1))
			So(err, ShouldHaveSameTypeAs, result.CorruptResultError{})
		})

		Convey("An explicit tarjan stage should not be duplicated", func() {
			stages, err := kaspan.Stages(decode(`{"0": {"benchmark": {"n": 9, "scc": {"tarjan": {"duration": 3, "decided_count": 4}}}}}`, 1))
			So(err, ShouldBeNil)
			So(stages, ShouldResemble, []StageMetric{{Name: "tarjan", Duration: 3e-9, DecidedCount: 4}})
		})

		Convey("Documents without stages should yield an empty list", func() {
			stages, err := kaspan.Stages(decode(`{"0": {"benchmark": {"scc": {"duration": 3}}}}`, 1))
			So(err, ShouldBeNil)
			So(stages, ShouldBeEmpty)
		})
	})

	Convey("While extracting metrics of the competitors", t, func() {
		Convey("ispan memory should use its own scopes", func() {
			ispan := extractor(program.Variant{Program: program.ISpan})
			memory, err := ispan.Memory(decode(`{
				"0": {"benchmark": {"memory": 100, "scc": {"alloc": {"memory": 300}, "residual": {"post_processing": {"memory": 700}}, "ecl": {"memory": 9000}}}},
				"1": {"benchmark": {"memory": 100, "scc": {"alloc": {"memory": 500}}}}
			}`, 2))
			So(err, ShouldBeNil)
			So(memory, ShouldEqual, 500.0)

			stages, err := ispan.Stages(decode(`{"0": {"benchmark": {"n": 5, "scc": {"tarjan": {"duration": 3}}}}}`, 1))
			So(err, ShouldBeNil)
			So(stages, ShouldBeEmpty)
		})

		Convey("hpc_graph memory should include readings outside of scc", func() {
			hpcGraph := extractor(program.Variant{Program: program.HPCGraph})
			memory, err := hpcGraph.Memory(decode(`{
				"0": {"benchmark": {"memory": 100, "memory_after_adapter": 400, "memory_after_scc": 250, "scc": {"scc": {"memory": 300}}}}
			}`, 1))
			So(err, ShouldBeNil)
			So(memory, ShouldEqual, 300.0)
		})
	})

	Convey("When a document has more ranks than declared", t, func() {
		_, err := result.Decode(strings.NewReader(`{"0": {}, "1": {}, "2": {}}`), 2)
		So(err, ShouldHaveSameTypeAs, result.CorruptResultError{})
	})

	Convey("When extracting all metrics at once", t, func() {
		metrics, err := Extract(extractor(program.Variant{Program: program.KaSpan, Async: true}), decode(kaspanDocument, 2))
		So(err, ShouldBeNil)
		So(metrics.Duration, ShouldEqual, 250e-9)
		So(metrics.Stages, ShouldHaveLength, 4)
	})

	Convey("Unknown programs should be rejected when constructing an extractor", t, func() {
		_, err := For(program.Variant{Program: program.Program(42)})
		So(err, ShouldHaveSameTypeAs, program.UnknownVariantError{})
	})
}
