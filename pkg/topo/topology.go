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

// Package topo maps requested process counts onto the fixed node layout of the cluster.
package topo

import (
	"github.com/pkg/errors"
	"github.com/rawbby/kaspan-bench/pkg/conf"
)

// Topology describes how cores are grouped into sockets and nodes.
type Topology struct {
	CoresPerSocket int
	SocketsPerNode int
}

// Horeka is the CPU partition layout of the HoreKa cluster.
var Horeka = Topology{CoresPerSocket: 38, SocketsPerNode: 2}

// CoresPerNode returns the number of cores of a single node.
func (t Topology) CoresPerNode() int {
	return t.CoresPerSocket * t.SocketsPerNode
}

// Validate checks that the topology has at least one core.
func (t Topology) Validate() error {
	if t.CoresPerSocket <= 0 || t.SocketsPerNode <= 0 {
		return errors.Errorf("invalid topology: %d cores per socket, %d sockets per node",
			t.CoresPerSocket, t.SocketsPerNode)
	}
	return nil
}

// Boundaries returns the process counts at which a run leaves a single thread,
// a single socket and a single node. They sit between integer counts so plots can draw them as separators.
func (t Topology) Boundaries() []float64 {
	return []float64{
		1.5,
		float64(t.CoresPerSocket) + 0.5,
		float64(t.CoresPerNode()) + 0.5,
	}
}

// Config exposes the topology as flags.
type Config struct {
	CoresPerSocket int `help:"Number of cores of a single socket." default:"38"`
	SocketsPerNode int `help:"Number of sockets of a single node." default:"2"`
}

// DefaultConfig returns the topology configuration from flags and environment.
func DefaultConfig() Config {
	config := Config{}
	conf.Process(&config)
	return config
}

// Topology returns the topology described by the config.
func (c Config) Topology() Topology {
	return Topology{CoresPerSocket: c.CoresPerSocket, SocketsPerNode: c.SocketsPerNode}
}
