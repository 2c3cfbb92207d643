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
	"time"

	"github.com/rawbby/kaspan-bench/pkg/conf"
)

// Config describes the cluster partition jobs are submitted to.
type Config struct {
	flagPrefix string

	Partition  string        `help:"Partition jobs are submitted to." default:"cpuonly"`
	Memory     string        `help:"Memory per node (--mem). Empty omits the directive." default:"230gb"`
	Modules    []string      `help:"Environment modules loaded before the run." default:"compiler/gnu/14,mpi/impi/2021.11,devel/cmake/3.30"`
	Launcher   string        `help:"MPI launcher invoked by the job script." default:"mpiexec.hydra"`
	MinTimeout time.Duration `help:"Lower bound of the job time budget." default:"2m"`
	MaxTimeout time.Duration `help:"Upper bound of the job time budget." default:"30m"`
	Submit     bool          `help:"Submit generated scripts with sbatch." default:"false"`
	Host       string        `help:"Login node sbatch is run on. Empty runs it locally."`
}

// DefaultConfig returns the slurm configuration from flags and environment.
func DefaultConfig() Config {
	config := Config{flagPrefix: "slurm_"}
	conf.Process(&config)
	return config
}

// Bounds returns the timeout bounds of the config.
func (c Config) Bounds() Bounds {
	return Bounds{Min: c.MinTimeout, Max: c.MaxTimeout}
}
