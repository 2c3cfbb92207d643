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
	"bytes"
	"os"
	"text/template"

	"github.com/alessio/shellescape"
	"github.com/pkg/errors"
	"github.com/rawbby/kaspan-bench/pkg/experiment"
	"github.com/rawbby/kaspan-bench/pkg/topo"
	"github.com/rawbby/kaspan-bench/pkg/utils/fs"
	log "github.com/sirupsen/logrus"
)

const scriptPerm os.FileMode = 0755

var scriptTemplate = template.Must(template.New("job").Parse(`#!/bin/bash
#SBATCH --nodes={{.Plan.Nodes}}
#SBATCH --ntasks={{.Plan.Tasks}}
#SBATCH --cpus-per-task={{.Plan.CPUsPerTask}}
#SBATCH --ntasks-per-socket={{.Plan.TasksPerSocket}}
#SBATCH --ntasks-per-node={{.Plan.TasksPerNode}}
#SBATCH -o {{.Out}}
#SBATCH -e {{.Err}}
#SBATCH -J {{.Name}}
#SBATCH --partition={{.Config.Partition}}
#SBATCH --time={{.Timeout.SchedulerTime}}
#SBATCH --export=ALL
{{- if .Config.Memory}}
#SBATCH --mem={{.Config.Memory}}
{{- end}}
{{- if .Config.Modules}}

module purge
{{- range .Config.Modules}}
module load {{.}}
{{- end}}
{{- end}}

{{- if .Threaded}}

export OMP_NUM_THREADS={{.Plan.CPUsPerTask}}
{{- end}}

I_MPI_PIN=1 I_MPI_PIN_DOMAIN={{.PinDomain}} I_MPI_PIN_ORDER=compact I_MPI_JOB_TIMEOUT={{.Timeout.JobTimeout}} {{.Config.Launcher}} -n {{.Plan.Tasks}} -bootstrap slurm {{.Command}}
`))

// Script is a generated job submission script.
type Script struct {
	Path string
	Body string
}

// Synthesizer renders job scripts for run configs.
type Synthesizer struct {
	Config   Config
	Topology topo.Topology
}

// NewSynthesizer is a constructor for Synthesizer.
func NewSynthesizer(config Config, topology topo.Topology) Synthesizer {
	return Synthesizer{Config: config, Topology: topology}
}

type scriptData struct {
	Config    Config
	Plan      topo.ResourcePlan
	Timeout   TimeoutPlan
	Out       string
	Err       string
	Name      string
	Threaded  bool
	PinDomain string
	Command   string
}

// Synthesize renders the job script of a run. Threads is only used by topo.OneRankPerNode.
func (s Synthesizer) Synthesize(config experiment.RunConfig, mode topo.Mode, threads int) (Script, error) {
	err := config.Require("slurm script",
		experiment.KeyTimeout, experiment.KeyNP, experiment.KeyJob, experiment.KeyErr, experiment.KeyOut,
		experiment.KeyExperiment, experiment.KeyRun, experiment.KeyExe)
	if err != nil {
		return Script{}, err
	}

	budget, err := ParseBudget(config[experiment.KeyTimeout])
	if err != nil {
		return Script{}, err
	}
	timeout, err := s.Config.Bounds().Normalize(budget)
	if err != nil {
		return Script{}, err
	}

	np, err := config.Int(experiment.KeyNP)
	if err != nil {
		return Script{}, err
	}
	plan, err := s.Topology.Plan(topo.Request{Processes: int(np), Mode: mode, Threads: threads})
	if err != nil {
		return Script{}, errors.Wrapf(err, "cannot map %d processes", np)
	}

	values := map[string]string{}
	for _, key := range []string{experiment.KeyJob, experiment.KeyErr, experiment.KeyOut,
		experiment.KeyExperiment, experiment.KeyRun, experiment.KeyExe} {
		if values[key], err = config.String(key); err != nil {
			return Script{}, err
		}
	}

	data := scriptData{
		Config:    s.Config,
		Plan:      plan,
		Timeout:   timeout,
		Out:       values[experiment.KeyOut],
		Err:       values[experiment.KeyErr],
		Name:      values[experiment.KeyExperiment] + "_" + values[experiment.KeyRun],
		Threaded:  mode == topo.OneRankPerNode,
		PinDomain: "core",
		Command:   shellescape.QuoteCommand(append([]string{values[experiment.KeyExe]}, config.Options()...)),
	}
	if data.Threaded {
		data.PinDomain = "node"
	}

	var body bytes.Buffer
	if err := scriptTemplate.Execute(&body, data); err != nil {
		return Script{}, errors.Wrap(err, "cannot render job script")
	}
	return Script{Path: values[experiment.KeyJob], Body: body.String()}, nil
}

// WriteScript writes the script to its path. An existing file is never overwritten.
func WriteScript(script Script) error {
	if err := fs.WriteExclusive(script.Path, []byte(script.Body), scriptPerm); err != nil {
		return errors.Wrapf(err, "cannot write job script %q", script.Path)
	}
	log.Debugf("Wrote job script %q", script.Path)
	return nil
}
