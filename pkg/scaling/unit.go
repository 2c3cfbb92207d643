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
	"fmt"
)

// Unit is a display unit. Values are multiplied by Multiplier before printing them with Label.
type Unit struct {
	Multiplier float64 `json:"multiplier"`
	Label      string  `json:"label"`
}

// TimeUnit picks the unit for durations in seconds up to max.
func TimeUnit(max float64) Unit {
	switch {
	case max >= 10:
		return Unit{Multiplier: 1, Label: "s"}
	case max >= 1e-3:
		return Unit{Multiplier: 1e3, Label: "ms"}
	case max >= 1e-6:
		return Unit{Multiplier: 1e6, Label: "µs"}
	}
	return Unit{Multiplier: 1e9, Label: "ns"}
}

// MemoryUnit picks the unit for byte counts up to max.
func MemoryUnit(max float64) Unit {
	switch {
	case max >= 1e9:
		return Unit{Multiplier: 1e-9, Label: "GB"}
	case max >= 1e6:
		return Unit{Multiplier: 1e-6, Label: "MB"}
	case max >= 1e3:
		return Unit{Multiplier: 1e-3, Label: "KB"}
	}
	return Unit{Multiplier: 1, Label: "B"}
}

// Format prints value in the unit.
func (u Unit) Format(value float64) string {
	return fmt.Sprintf("%.3f %s", value*u.Multiplier, u.Label)
}
