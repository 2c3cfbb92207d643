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

	"github.com/rawbby/kaspan-bench/pkg/experiment"
)

const gnmName = "gnm_directed"

// GnmDirected describes a uniform random directed graph with n vertices and m edges.
type GnmDirected struct{}

// Inject implements experiment.Injector.
func (g GnmDirected) Inject(config experiment.RunConfig) error {
	s, err := requireSize(gnmName, config)
	if err != nil {
		return err
	}

	config[experiment.KeyGraph] = fmt.Sprintf("%s_n%d_m%d_s%d", gnmName, s.n, s.m, s.seed)
	config.AppendOptions(KagenOptionFlag, fmt.Sprintf("gnm-directed;n=%d;m=%d;seed=%d", s.n, s.m, s.seed))
	return nil
}

func (g GnmDirected) String() string {
	return gnmName
}
