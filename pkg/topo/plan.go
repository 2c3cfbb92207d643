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

package topo

import (
	"fmt"

	"github.com/pkg/errors"
)

// Mode selects how ranks are laid out on nodes.
type Mode int

const (
	// OneRankPerCore launches one MPI rank on every core.
	OneRankPerCore Mode = iota
	// OneRankPerNode launches one rank per node which runs threads on all of its cores.
	OneRankPerNode
)

func (m Mode) String() string {
	switch m {
	case OneRankPerCore:
		return "one_rank_per_core"
	case OneRankPerNode:
		return "one_rank_per_node"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Request asks for a layout of Processes ranks.
// Threads is only used by OneRankPerNode; zero means all cores of the node.
type Request struct {
	Processes int
	Mode      Mode
	Threads   int
}

// ResourcePlan is the scheduler side layout of a run.
type ResourcePlan struct {
	Nodes          int
	Tasks          int
	TasksPerNode   int
	TasksPerSocket int
	CPUsPerTask    int
}

// Plan computes the resource plan for the request. A process count that does not
// fill the last node is valid and leaves that node partially used.
func (t Topology) Plan(request Request) (ResourcePlan, error) {
	if err := t.Validate(); err != nil {
		return ResourcePlan{}, err
	}
	if request.Processes <= 0 {
		return ResourcePlan{}, errors.Errorf("process count must be positive, got %d", request.Processes)
	}

	p := request.Processes
	switch request.Mode {
	case OneRankPerCore:
		return ResourcePlan{
			Nodes:          ceilDiv(p, t.CoresPerNode()),
			Tasks:          p,
			TasksPerNode:   min(t.CoresPerNode(), p),
			TasksPerSocket: min(t.CoresPerSocket, p),
			CPUsPerTask:    1,
		}, nil

	case OneRankPerNode:
		threads := request.Threads
		if threads < 0 {
			return ResourcePlan{}, errors.Errorf("thread count must not be negative, got %d", threads)
		}
		if threads == 0 {
			threads = t.CoresPerNode()
		}
		return ResourcePlan{
			Nodes:          p,
			Tasks:          p,
			TasksPerNode:   1,
			TasksPerSocket: 1,
			CPUsPerTask:    threads,
		}, nil
	}

	return ResourcePlan{}, errors.Errorf("unknown mode %s", request.Mode)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
