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
	"os"
	"os/user"

	"github.com/rawbby/kaspan-bench/pkg/conf"
	"github.com/rawbby/kaspan-bench/pkg/executor"
	"github.com/rawbby/kaspan-bench/pkg/experiment"
	"github.com/rawbby/kaspan-bench/pkg/experiment/logger"
	"github.com/rawbby/kaspan-bench/pkg/slurm"
	"github.com/rawbby/kaspan-bench/pkg/topo"
	"github.com/rawbby/kaspan-bench/pkg/utils/errutil"
	"github.com/rawbby/kaspan-bench/pkg/utils/fs"
	"github.com/rawbby/kaspan-bench/pkg/visualization"
	"github.com/rawbby/kaspan-bench/pkg/workloads/mpirun"
	"github.com/rawbby/kaspan-bench/pkg/workloads/program"
	"github.com/sirupsen/logrus"
)

var (
	experimentDataDirFlag = conf.NewStringFlag("experiment_data_dir", "Directory new experiments are created in.", fs.GetExperimentDataPath())
	matrixFileFlag        = conf.NewStringFlag("matrix_file", "YAML file describing the sweep. Empty runs the default weak scaling sweep.", "")
	localRunFlag          = conf.NewBoolFlag("local_run", "Run the composed jobs one after another on this machine instead of submitting them.", false)
)

// sshConfig builds the SSH config for the login node with the current user's key.
func sshConfig(host string) (*executor.SSHConfig, error) {
	current, err := user.Current()
	if err != nil {
		return nil, err
	}
	return executor.NewSSHConfig(host, executor.DefaultSSHPort, current)
}

func main() {
	conf.SetAppName("scc-scaling")
	conf.SetHelp(`Composes the SCC scaling sweep: every combination of scaling mode, graph size, density,
process count, program variant and graph generator becomes one SLURM job script in a new experiment directory.
With --slurm_submit the scripts are handed to sbatch, with --local_run they are executed here with mpirun.
Results are collected later by scaling-report.`)

	// Struct flags have to exist before parsing, their values are read again afterwards.
	slurm.DefaultConfig()
	program.DefaultConfig()
	topo.DefaultConfig()
	mpirun.DefaultConfig()
	experiment.Configure()

	matrix := experiment.DefaultMatrixFile()
	if path := matrixFileFlag.Value(); path != "" {
		var err error
		matrix, err = experiment.LoadMatrixFile(path)
		errutil.CheckWithContext(err, "Cannot load matrix file")
	}

	topology := topo.DefaultConfig().Topology()
	errutil.Check(topology.Validate())
	slurmConfig := slurm.DefaultConfig()
	errutil.Check(slurmConfig.Bounds().Validate())
	if slurmConfig.Submit && localRunFlag.Value() {
		logrus.Fatal("--slurm_submit and --local_run are mutually exclusive")
	}

	exp, err := experiment.New(experimentDataDirFlag.Value())
	errutil.CheckWithContext(err, "Cannot create experiment")

	closer, err := logger.Initialize(conf.AppName(), exp.Dir)
	errutil.CheckWithContext(err, "Cannot initialize logger")
	defer closer.Close()

	logrus.Infof("Starting experiment %s with seed %d", exp.ID, exp.Seed)

	c := composer{
		experiment:  exp,
		matrix:      matrix,
		programs:    program.DefaultConfig(),
		topology:    topology,
		synthesizer: slurm.NewSynthesizer(slurmConfig, topology),
	}
	runs, failures, err := c.compose()
	errutil.CheckWithContext(err, "Cannot expand run matrix")
	total := len(runs) + failures.Len()

	if slurmConfig.Submit {
		shell, err := executor.NewShell(slurmConfig.Host, sshConfig)
		errutil.CheckWithContext(err, "Cannot connect to the submission host")

		submitter := slurm.NewSubmitter(shell)
		for _, run := range runs {
			if _, err := submitter.Submit(run.script.Path); err != nil {
				logrus.WithField("job", run.script.Path).Warnf("Submission failed: %s", err)
				failures.Add(err)
			}
		}
	}

	if localRunFlag.Value() {
		runLocally(runs, executor.NewLocal(), mpirun.DefaultConfig(), slurmConfig.Bounds(), failures)
	}

	visualization.PrintExperimentMetadata(os.Stdout,
		visualization.NewExperimentMetadata(exp.ID, exp.Dir, total, failures.Len()))

	if err := failures.GetErrIfAny(); err != nil {
		logrus.Errorf("Some runs failed: %s", err)
		closer.Close()
		os.Exit(1)
	}
}
