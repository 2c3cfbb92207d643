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

// Package graph provides injectors describing the generated input graph of a run.
package graph

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rawbby/kaspan-bench/pkg/experiment"
)

// KagenOptionFlag passes the generator description to the benchmark binaries.
const KagenOptionFlag = "--kagen_option_string"

type size struct {
	n, m, seed int64
}

func requireSize(component string, config experiment.RunConfig) (size, error) {
	if err := config.Require(component, experiment.KeyN, experiment.KeyM, experiment.KeySeed); err != nil {
		return size{}, err
	}

	var s size
	var err error
	if s.n, err = config.Int(experiment.KeyN); err != nil {
		return size{}, err
	}
	if s.m, err = config.Int(experiment.KeyM); err != nil {
		return size{}, err
	}
	if s.seed, err = config.Int(experiment.KeySeed); err != nil {
		return size{}, err
	}
	return s, nil
}

// Parse builds an injector from its matrix file notation:
// "gnm_directed" or "rmat_directed:<a>,<b>,<c>".
func Parse(spec string) (experiment.Injector, error) {
	kind, args, _ := strings.Cut(spec, ":")
	switch kind {
	case gnmName:
		if args != "" {
			return nil, errors.Errorf("%s takes no arguments, got %q", gnmName, args)
		}
		return GnmDirected{}, nil

	case rmatName:
		parts := strings.Split(args, ",")
		if len(parts) != 3 {
			return nil, errors.Errorf("%s needs three probabilities a,b,c, got %q", rmatName, args)
		}
		probabilities := make([]float64, 3)
		for i, part := range parts {
			p, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid %s probability %q", rmatName, part)
			}
			probabilities[i] = p
		}
		return NewRmatDirected(probabilities[0], probabilities[1], probabilities[2])
	}

	return nil, errors.Errorf("unknown graph generator %q", spec)
}
