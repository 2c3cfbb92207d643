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

package graph

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rawbby/kaspan-bench/pkg/experiment"
	"github.com/shopspring/decimal"
)

const rmatName = "rmat_directed"

// RmatDirected describes a directed R-MAT graph. Probabilities are kept in whole percent.
type RmatDirected struct {
	a, b, c int64
}

// NewRmatDirected rounds the quadrant probabilities up to whole percent.
func NewRmatDirected(a, b, c float64) (RmatDirected, error) {
	if a < 0 || b < 0 || c < 0 || a+b+c > 1 {
		return RmatDirected{}, errors.Errorf("invalid R-MAT probabilities a=%v b=%v c=%v", a, b, c)
	}
	return RmatDirected{a: percent(a), b: percent(b), c: percent(c)}, nil
}

func percent(p float64) int64 {
	return decimal.NewFromFloat(p).Shift(2).Ceil().IntPart()
}

// Tag is the compact probability label used in graph names, grouping equal probabilities.
func (r RmatDirected) Tag() string {
	switch {
	case r.a == r.b && r.b == r.c:
		return fmt.Sprintf("abc%d", r.a)
	case r.a == r.b:
		return fmt.Sprintf("ab%dc%d", r.a, r.c)
	case r.a == r.c:
		return fmt.Sprintf("ac%db%d", r.a, r.b)
	case r.b == r.c:
		return fmt.Sprintf("a%dbc%d", r.a, r.b)
	}
	return fmt.Sprintf("a%db%dc%d", r.a, r.b, r.c)
}

func probability(p int64) string {
	return decimal.New(p, -2).String()
}

// Inject implements experiment.Injector.
func (r RmatDirected) Inject(config experiment.RunConfig) error {
	s, err := requireSize(rmatName, config)
	if err != nil {
		return err
	}

	a, b, c := probability(r.a), probability(r.b), probability(r.c)
	config["a"] = a
	config["b"] = b
	config["c"] = c
	config["abc"] = r.Tag()

	config[experiment.KeyGraph] = fmt.Sprintf("%s_%s_n%d_m%d_s%d", rmatName, r.Tag(), s.n, s.m, s.seed)
	config.AppendOptions(KagenOptionFlag,
		fmt.Sprintf("rmat;directed;n=%d;m=%d;a=%s;b=%s;c=%s;seed=%d", s.n, s.m, a, b, c, s.seed))
	return nil
}

func (r RmatDirected) String() string {
	return fmt.Sprintf("%s:%s", rmatName, r.Tag())
}
