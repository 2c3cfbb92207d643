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

package slurm

import (
	"math"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTimeout(t *testing.T) {
	Convey("While normalizing timeouts with default bounds", t, func() {
		bounds := DefaultBounds

		Convey("Budgets should be rounded up with one unit of margin", func() {
			plan, err := bounds.Normalize(10*time.Minute + 1*time.Second)
			So(err, ShouldBeNil)
			So(plan, ShouldResemble, TimeoutPlan{SchedulerTime: "0-00:12:00", JobTimeout: 602})

			plan, err = bounds.Normalize(5*time.Minute + 500*time.Millisecond)
			So(err, ShouldBeNil)
			So(plan.JobTimeout, ShouldEqual, 302)
			So(plan.SchedulerTime, ShouldEqual, "0-00:07:00")
		})

		Convey("Budgets should be clamped to the bounds", func() {
			low, err := bounds.Normalize(0)
			So(err, ShouldBeNil)
			So(low, ShouldResemble, TimeoutPlan{SchedulerTime: "0-00:03:00", JobTimeout: 121})

			high, err := bounds.Normalize(5 * time.Hour)
			So(err, ShouldBeNil)
			So(high, ShouldResemble, TimeoutPlan{SchedulerTime: "0-00:31:00", JobTimeout: 1801})
		})

		Convey("Timeouts should be monotonic and constant outside the bounds", func() {
			previous := TimeoutPlan{}
			previousMinutes := int64(-1)
			for budget := time.Duration(0); budget <= 40*time.Minute; budget += 7 * time.Second {
				plan, err := bounds.Normalize(budget)
				So(err, ShouldBeNil)
				So(plan.JobTimeout, ShouldBeGreaterThanOrEqualTo, previous.JobTimeout)

				scheduler, err := time.ParseDuration(plan.SchedulerTime[2:4] + "h" + plan.SchedulerTime[5:7] + "m")
				So(err, ShouldBeNil)
				minutes := int64(scheduler / time.Minute)
				So(minutes, ShouldBeGreaterThanOrEqualTo, previousMinutes)
				So(time.Duration(plan.JobTimeout)*time.Second, ShouldBeLessThan, scheduler)

				if budget <= bounds.Min {
					So(plan.JobTimeout, ShouldEqual, 121)
				}
				if budget >= bounds.Max {
					So(plan.JobTimeout, ShouldEqual, 1801)
				}
				previous, previousMinutes = plan, minutes
			}
		})

		Convey("Long bounds should roll over into days", func() {
			plan, err := Bounds{Min: 0, Max: 48 * time.Hour}.Normalize(25 * time.Hour)
			So(err, ShouldBeNil)
			So(plan.SchedulerTime, ShouldEqual, "1-01:01:00")
		})

		Convey("Negative budgets and broken bounds should be rejected", func() {
			_, err := bounds.Normalize(-time.Second)
			So(err, ShouldHaveSameTypeAs, InvalidTimeoutError{})

			_, err = Bounds{Min: time.Hour, Max: time.Minute}.Normalize(time.Minute)
			So(err, ShouldHaveSameTypeAs, InvalidTimeoutError{})
		})
	})

	Convey("While parsing budgets", t, func() {
		valid := map[interface{}]time.Duration{
			30 * time.Minute: 30 * time.Minute,
			90:               90 * time.Second,
			int64(60):        time.Minute,
			1.5:              1500 * time.Millisecond,
			"30m":            30 * time.Minute,
			" 120 ":          2 * time.Minute,
		}
		for value, expected := range valid {
			budget, err := ParseBudget(value)
			So(err, ShouldBeNil)
			So(budget, ShouldEqual, expected)
		}

		for _, value := range []interface{}{math.NaN(), math.Inf(1), -1.0, -5, int64(-5), "-1m", "soon", nil, []int{1}} {
			_, err := ParseBudget(value)
			So(err, ShouldHaveSameTypeAs, InvalidTimeoutError{})
		}

		Convey("Whole seconds beyond the duration range should be rejected instead of wrapping", func() {
			for _, value := range []interface{}{int64(18446744074), int64(math.MaxInt64), math.MaxInt64/int64(time.Second) + 1} {
				_, err := ParseBudget(value)
				So(err, ShouldResemble, InvalidTimeoutError{Value: value, Reason: "too large"})
			}

			budget, err := ParseBudget(math.MaxInt64 / int64(time.Second))
			So(err, ShouldBeNil)
			plan, err := DefaultBounds.Normalize(budget)
			So(err, ShouldBeNil)
			So(plan.JobTimeout, ShouldEqual, 1801)
		})
	})
}
