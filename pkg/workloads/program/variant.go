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

// Package program describes the benchmarked SCC implementations and injects their invocation into runs.
package program

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rawbby/kaspan-bench/pkg/topo"
)

// Program is one of the benchmarked SCC implementations.
type Program int

const (
	// KaSpan is the distributed SCC algorithm under study.
	KaSpan Program = iota
	// ISpan is the iSpan competitor.
	ISpan
	// HPCGraph is the thread parallel HPCGraph competitor.
	HPCGraph
)

var programNames = map[Program]string{
	KaSpan:   "kaspan",
	ISpan:    "ispan",
	HPCGraph: "hpc_graph",
}

func (p Program) String() string {
	if name, ok := programNames[p]; ok {
		return name
	}
	return fmt.Sprintf("program(%d)", int(p))
}

// Binary returns the executable name of the benchmark driver.
func (p Program) Binary() string {
	return "bench_" + p.String()
}

// Mode returns how ranks of the program are laid out.
func (p Program) Mode() topo.Mode {
	if p == HPCGraph {
		return topo.OneRankPerNode
	}
	return topo.OneRankPerCore
}

// UnknownVariantError is returned for variant names outside the closed set.
type UnknownVariantError struct {
	Name string
}

func (e UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown program variant %q", e.Name)
}

// Variant is a program with its feature flags. Async and Indirect only exist for KaSpan.
type Variant struct {
	Program  Program
	Async    bool
	Indirect bool
}

// NewVariant validates a feature combination.
func NewVariant(program Program, async, indirect bool) (Variant, error) {
	if _, ok := programNames[program]; !ok {
		return Variant{}, errors.Errorf("unknown program %d", int(program))
	}
	if indirect && !async {
		return Variant{}, errors.Errorf("%s: indirect requires async", program)
	}
	if async && program != KaSpan {
		return Variant{}, errors.Errorf("%s has no async variant", program)
	}
	return Variant{Program: program, Async: async, Indirect: indirect}, nil
}

// Name returns the program name with one suffix per enabled feature, in fixed order.
func (v Variant) Name() string {
	name := v.Program.String()
	if v.Async {
		name += "_async"
	}
	if v.Indirect {
		name += "_indirect"
	}
	return name
}

func (v Variant) String() string {
	return v.Name()
}

// Variants returns every valid variant.
func Variants() []Variant {
	return []Variant{
		{Program: KaSpan},
		{Program: KaSpan, Async: true},
		{Program: KaSpan, Async: true, Indirect: true},
		{Program: ISpan},
		{Program: HPCGraph},
	}
}

// ParseVariant resolves a variant name such as "kaspan_async".
func ParseVariant(name string) (Variant, error) {
	for _, variant := range Variants() {
		if variant.Name() == name {
			return variant, nil
		}
	}
	return Variant{}, UnknownVariantError{Name: name}
}
