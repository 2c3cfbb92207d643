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

package main

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rawbby/kaspan-bench/pkg/experiment"
	"github.com/rawbby/kaspan-bench/pkg/slurm"
	"github.com/rawbby/kaspan-bench/pkg/topo"
	"github.com/rawbby/kaspan-bench/pkg/utils/errcollection"
	"github.com/rawbby/kaspan-bench/pkg/workloads/graph"
	"github.com/rawbby/kaspan-bench/pkg/workloads/program"
	log "github.com/sirupsen/logrus"
)

// composer turns every point of the run matrix into a job script inside the experiment directory.
type composer struct {
	experiment  experiment.Experiment
	matrix      experiment.MatrixFile
	programs    program.Config
	topology    topo.Topology
	synthesizer slurm.Synthesizer
}

// composedRun is a run whose job script was written.
type composedRun struct {
	config  experiment.RunConfig
	script  slurm.Script
	threads int
}

// compose writes one script per run. Failed runs are logged and collected, the others are still written.
func (c composer) compose() ([]composedRun, *errcollection.ErrorCollection, error) {
	failures := &errcollection.ErrorCollection{}

	it, err := c.matrix.Matrix().Product(experiment.MatrixOrder...)
	if err != nil {
		return nil, nil, err
	}

	runs := []composedRun{}
	for tuple, ok := it.Next(); ok; tuple, ok = it.Next() {
		run, err := c.composeRun(tuple)
		if err != nil {
			log.WithField("run", fmt.Sprint(tuple...)).Warnf("Skipping run: %s", err)
			failures.Add(errors.Wrapf(err, "run %v", tuple))
			continue
		}
		runs = append(runs, run)
	}

	log.Infof("Wrote %d job scripts to %q, %d runs failed", len(runs), c.experiment.Dir, failures.Len())
	return runs, failures, nil
}

// composeRun handles one tuple in experiment.MatrixOrder.
func (c composer) composeRun(tuple []interface{}) (composedRun, error) {
	scalingName, _ := tuple[0].(string)
	nExp, _ := tuple[1].(int)
	density, _ := tuple[2].(float64)
	npExp, _ := tuple[3].(int)
	programName, _ := tuple[4].(string)
	graphSpec, _ := tuple[5].(string)

	scaling, err := experiment.ParseScaling(scalingName)
	if err != nil {
		return composedRun{}, err
	}
	size, err := experiment.Derive(scaling, nExp, density, npExp)
	if err != nil {
		return composedRun{}, err
	}
	variant, err := program.ParseVariant(programName)
	if err != nil {
		return composedRun{}, err
	}
	graphInjector, err := graph.Parse(graphSpec)
	if err != nil {
		return composedRun{}, err
	}

	config := c.experiment.BaseConfig()
	config[experiment.KeyScaling] = string(scaling)
	config[experiment.KeyTimeout] = c.matrix.Timeout
	size.Apply(config)

	if err := experiment.Apply(config, graphInjector, program.New(variant, c.programs, c.topology)); err != nil {
		return composedRun{}, err
	}

	run, err := config.String(experiment.KeyRun)
	if err != nil {
		return composedRun{}, err
	}
	base := filepath.Join(c.experiment.Dir, run)
	config[experiment.KeyJob] = base + ".sh"
	config[experiment.KeyErr] = base + ".err"
	config[experiment.KeyOut] = base + ".out"

	threads := 0
	if config.Has(program.KeyThreads) {
		value, err := config.Int(program.KeyThreads)
		if err != nil {
			return composedRun{}, err
		}
		threads = int(value)
	}

	script, err := c.synthesizer.Synthesize(config, variant.Program.Mode(), threads)
	if err != nil {
		return composedRun{}, err
	}
	if err := slurm.WriteScript(script); err != nil {
		return composedRun{}, err
	}
	log.Debugf("Composed %s", run)
	return composedRun{config: config, script: script, threads: threads}, nil
}
