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
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Scaling selects how problem size follows the process count.
type Scaling string

const (
	// Weak scaling grows the graph with the process count.
	Weak Scaling = "weak"
	// Strong scaling keeps the graph fixed.
	Strong Scaling = "strong"
)

// ParseScaling validates a scaling name.
func ParseScaling(name string) (Scaling, error) {
	switch Scaling(name) {
	case Weak, Strong:
		return Scaling(name), nil
	}
	return "", errors.Errorf("unknown scaling %q, expected %q or %q", name, Weak, Strong)
}

// Size holds the derived size parameters of a run.
type Size struct {
	N  int64
	M  int64
	NP int64
}

func (s Size) String() string {
	return fmt.Sprintf("n=%d m=%d np=%d", s.N, s.M, s.NP)
}

// Derive computes vertex count, edge count and process count from the matrix exponents.
// np = 2^npExp; n = 2^(nExp+npExp) for weak and 2^nExp for strong scaling; m = ceil(density*n).
func Derive(scaling Scaling, nExp int, density float64, npExp int) (Size, error) {
	if nExp < 0 || npExp < 0 || nExp+npExp > 62 {
		return Size{}, errors.Errorf("exponents out of range: N=%d NP=%d", nExp, npExp)
	}
	if density < 0 {
		return Size{}, errors.Errorf("density must not be negative, got %v", density)
	}

	size := Size{NP: int64(1) << uint(npExp)}
	switch scaling {
	case Weak:
		size.N = int64(1) << uint(nExp+npExp)
	case Strong:
		size.N = int64(1) << uint(nExp)
	default:
		return Size{}, errors.Errorf("unknown scaling %q", scaling)
	}

	size.M = decimal.NewFromFloat(density).Mul(decimal.NewFromInt(size.N)).Ceil().IntPart()
	return size, nil
}

// Apply stores the size into the config.
func (s Size) Apply(config RunConfig) {
	config[KeyN] = s.N
	config[KeyM] = s.M
	config[KeyNP] = s.NP
}
