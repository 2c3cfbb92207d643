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

package program

import (
	"path/filepath"
	"strconv"

	"github.com/rawbby/kaspan-bench/pkg/conf"
	"github.com/rawbby/kaspan-bench/pkg/experiment"
	"github.com/rawbby/kaspan-bench/pkg/result"
	"github.com/rawbby/kaspan-bench/pkg/topo"
	"github.com/rawbby/kaspan-bench/pkg/utils/fs"
)

// KeyThreads holds the per rank thread count of thread parallel programs.
const KeyThreads = "threads"

// Config holds the program options exposed as flags.
type Config struct {
	BinaryDir string `help:"Directory holding the bench_* executables. Empty uses <workspace>/cmake-build-release/bin."`
	Alpha     int    `help:"iSpan alpha parameter (--alpha)." name:"ispan_alpha" default:"12"`
	Threads   int    `help:"Threads per rank of hpc_graph. Zero uses all cores of a node." name:"hpc_graph_threads" default:"0"`
}

// DefaultConfig returns the program configuration from flags and environment.
func DefaultConfig() Config {
	config := Config{}
	conf.Process(&config)
	return config
}

// Injector sets binary, names and options of one variant on a RunConfig.
type Injector struct {
	variant  Variant
	config   Config
	topology topo.Topology
}

// New is a constructor for Injector.
func New(variant Variant, config Config, topology topo.Topology) Injector {
	return Injector{variant: variant, config: config, topology: topology}
}

// Variant returns the injected variant.
func (i Injector) Variant() Variant {
	return i.variant
}

func (i Injector) binaryDir(config experiment.RunConfig) string {
	if dir, err := config.String(experiment.KeyBinaryDir); err == nil && dir != "" {
		return dir
	}
	if i.config.BinaryDir != "" {
		return i.config.BinaryDir
	}
	return fs.GetBinaryPath()
}

func (i Injector) threads() int {
	if i.config.Threads > 0 {
		return i.config.Threads
	}
	return i.topology.CoresPerNode()
}

// Inject implements experiment.Injector.
func (i Injector) Inject(config experiment.RunConfig) error {
	name := i.variant.Name()
	if err := config.Require(name, experiment.KeyExperimentDir, experiment.KeyGraph, experiment.KeyNP); err != nil {
		return err
	}

	np, err := config.Int(experiment.KeyNP)
	if err != nil {
		return err
	}
	graph, err := config.String(experiment.KeyGraph)
	if err != nil {
		return err
	}
	dir, err := config.String(experiment.KeyExperimentDir)
	if err != nil {
		return err
	}
	scaling, _ := config.String(experiment.KeyScaling)

	run := result.RunName(name, np, graph)
	resultPath := filepath.Join(dir, result.FileName(scaling, run))

	config[experiment.KeyExe] = filepath.Join(i.binaryDir(config), i.variant.Program.Binary())
	config[experiment.KeyProgram] = name
	config[experiment.KeyRun] = run
	config[experiment.KeyResult] = resultPath
	config[experiment.KeyOutputFile] = resultPath

	switch i.variant.Program {
	case KaSpan:
		if i.variant.Async {
			config.AppendOptions("--async")
		}
		if i.variant.Indirect {
			config.AppendOptions("--async_indirect")
		}
		config.AppendOptions("--output_file", resultPath)
	case ISpan:
		config.AppendOptions("--alpha", strconv.Itoa(i.config.Alpha), "--output", resultPath)
	case HPCGraph:
		config[KeyThreads] = i.threads()
		config.AppendOptions("--threads", strconv.Itoa(i.threads()), "--output_file", resultPath)
	}
	return nil
}

func (i Injector) String() string {
	return i.variant.Name()
}
