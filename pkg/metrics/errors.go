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
	"fmt"
	"strings"
)

// MissingMetricError marks a run whose data is incomplete: a rank lacks a required metric.
type MissingMetricError struct {
	Rank int
	Path []string
}

func (e MissingMetricError) Error() string {
	return fmt.Sprintf("rank %d has no integer metric %q", e.Rank, strings.Join(e.Path, "."))
}
