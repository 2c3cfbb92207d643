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
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	secondNanos = decimal.NewFromInt(int64(time.Second))
	minuteNanos = decimal.NewFromInt(int64(time.Minute))
)

// InvalidTimeoutError is returned for budgets or bounds that are not valid non-negative durations.
type InvalidTimeoutError struct {
	Value  interface{}
	Reason string
}

func (e InvalidTimeoutError) Error() string {
	return fmt.Sprintf("invalid timeout %v: %s", e.Value, e.Reason)
}

// Bounds clamp the time budget of a job.
type Bounds struct {
	Min time.Duration
	Max time.Duration
}

// DefaultBounds keep jobs between two and thirty minutes.
var DefaultBounds = Bounds{Min: 2 * time.Minute, Max: 30 * time.Minute}

// TimeoutPlan holds both deadlines of a job.
// JobTimeout is always shorter than SchedulerTime so the job can end itself before it is killed.
type TimeoutPlan struct {
	// SchedulerTime is the wall clock limit as D-HH:MM:00.
	SchedulerTime string
	// JobTimeout is the MPI job timeout in whole seconds.
	JobTimeout int64
}

// Validate checks that the bounds are non-negative and ordered.
func (b Bounds) Validate() error {
	if b.Min < 0 || b.Max < 0 {
		return InvalidTimeoutError{Value: b, Reason: "bounds must not be negative"}
	}
	if b.Min > b.Max {
		return InvalidTimeoutError{Value: b, Reason: "minimum exceeds maximum"}
	}
	return nil
}

func (b Bounds) clamp(budget time.Duration) (time.Duration, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	if budget < 0 {
		return 0, InvalidTimeoutError{Value: budget, Reason: "negative duration"}
	}
	if budget < b.Min {
		return b.Min, nil
	}
	if budget > b.Max {
		return b.Max, nil
	}
	return budget, nil
}

// SchedulerTime clamps the budget, rounds it up to whole minutes and adds one minute.
func (b Bounds) SchedulerTime(budget time.Duration) (string, error) {
	clamped, err := b.clamp(budget)
	if err != nil {
		return "", err
	}

	minutes := decimal.NewFromInt(int64(clamped)).Div(minuteNanos).Ceil().IntPart() + 1
	days, rest := minutes/(24*60), minutes%(24*60)
	return fmt.Sprintf("%d-%02d:%02d:00", days, rest/60, rest%60), nil
}

// JobTimeout clamps the budget, rounds it up to whole seconds and adds one second.
func (b Bounds) JobTimeout(budget time.Duration) (int64, error) {
	clamped, err := b.clamp(budget)
	if err != nil {
		return 0, err
	}
	return decimal.NewFromInt(int64(clamped)).Div(secondNanos).Ceil().IntPart() + 1, nil
}

// Normalize computes both deadlines for the budget.
func (b Bounds) Normalize(budget time.Duration) (TimeoutPlan, error) {
	schedulerTime, err := b.SchedulerTime(budget)
	if err != nil {
		return TimeoutPlan{}, err
	}
	jobTimeout, err := b.JobTimeout(budget)
	if err != nil {
		return TimeoutPlan{}, err
	}
	return TimeoutPlan{SchedulerTime: schedulerTime, JobTimeout: jobTimeout}, nil
}

// maxBudgetSeconds is the longest budget a time.Duration can hold.
const maxBudgetSeconds = math.MaxInt64 / int64(time.Second)

// ParseBudget converts a RunConfig timeout into a duration.
// Numbers are seconds, strings are Go durations ("30m") or seconds ("90").
func ParseBudget(value interface{}) (time.Duration, error) {
	var budget time.Duration

	switch v := value.(type) {
	case time.Duration:
		budget = v
	case int:
		return secondsBudgetInt(value, int64(v))
	case int64:
		return secondsBudgetInt(value, v)
	case float64:
		return secondsBudget(value, v)
	case json.Number:
		return ParseBudget(v.String())
	case string:
		text := strings.TrimSpace(v)
		if d, err := time.ParseDuration(text); err == nil {
			budget = d
			break
		}
		seconds, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, InvalidTimeoutError{Value: value, Reason: "not a duration"}
		}
		return secondsBudget(value, seconds)
	default:
		return 0, InvalidTimeoutError{Value: value, Reason: fmt.Sprintf("unsupported type %T", value)}
	}

	if budget < 0 {
		return 0, InvalidTimeoutError{Value: value, Reason: "negative duration"}
	}
	return budget, nil
}

func secondsBudgetInt(value interface{}, seconds int64) (time.Duration, error) {
	switch {
	case seconds < 0:
		return 0, InvalidTimeoutError{Value: value, Reason: "negative duration"}
	case seconds > maxBudgetSeconds:
		return 0, InvalidTimeoutError{Value: value, Reason: "too large"}
	}
	return time.Duration(seconds) * time.Second, nil
}

func secondsBudget(value interface{}, seconds float64) (time.Duration, error) {
	switch {
	case math.IsNaN(seconds):
		return 0, InvalidTimeoutError{Value: value, Reason: "not a number"}
	case math.IsInf(seconds, 0):
		return 0, InvalidTimeoutError{Value: value, Reason: "infinite"}
	case seconds < 0:
		return 0, InvalidTimeoutError{Value: value, Reason: "negative duration"}
	case seconds > float64(maxBudgetSeconds):
		return 0, InvalidTimeoutError{Value: value, Reason: "too large"}
	}
	return time.Duration(decimal.NewFromFloat(seconds).Mul(secondNanos).Ceil().IntPart()), nil
}
