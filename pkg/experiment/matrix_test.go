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

package experiment

import (
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func collect(it *Iterator) [][]interface{} {
	tuples := [][]interface{}{}
	for tuple, ok := it.Next(); ok; tuple, ok = it.Next() {
		tuples = append(tuples, tuple)
	}
	return tuples
}

func TestMatrixProduct(t *testing.T) {
	Convey("While expanding a matrix", t, func() {
		matrix := Matrix{
			"N":       {16, 18},
			"NP":      {6, 8, 10},
			"program": {"kaspan", "ispan"},
			"empty":   {},
		}

		Convey("The first key should vary slowest", func() {
			it, err := matrix.Product("N", "NP")
			So(err, ShouldBeNil)
			So(collect(it), ShouldResemble, [][]interface{}{
				{16, 6}, {16, 8}, {16, 10},
				{18, 6}, {18, 8}, {18, 10},
			})
		})

		Convey("The number of tuples should match the size", func() {
			it, err := matrix.Product("N", "NP", "program")
			So(err, ShouldBeNil)
			So(len(collect(it)), ShouldEqual, matrix.Size("N", "NP", "program"))
			So(matrix.Size("N", "NP", "program"), ShouldEqual, 12)
		})

		Convey("Exhausted iterators should stay exhausted", func() {
			it, err := matrix.Product("program")
			So(err, ShouldBeNil)
			collect(it)
			_, ok := it.Next()
			So(ok, ShouldBeFalse)
		})

		Convey("Zero keys should yield a single empty tuple", func() {
			it, err := matrix.Product()
			So(err, ShouldBeNil)
			So(collect(it), ShouldResemble, [][]interface{}{{}})
		})

		Convey("An empty list should yield nothing", func() {
			it, err := matrix.Product("N", "empty")
			So(err, ShouldBeNil)
			So(collect(it), ShouldBeEmpty)
		})

		Convey("Unknown keys should be reported", func() {
			_, err := matrix.Product("N", "seed")
			So(err, ShouldNotBeNil)

			var missing MissingParameterError
			So(errors.As(err, &missing), ShouldBeTrue)
			So(missing.Key, ShouldEqual, "seed")
			So(matrix.Size("seed"), ShouldEqual, 0)
		})

		Convey("Keys should be sorted", func() {
			So(matrix.Keys(), ShouldResemble, []string{"N", "NP", "empty", "program"})
		})
	})
}
