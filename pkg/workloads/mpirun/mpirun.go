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

// Package mpirun starts benchmark runs on the local machine without a scheduler.
package mpirun

import (
	"fmt"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/pkg/errors"
	"github.com/rawbby/kaspan-bench/pkg/conf"
	"github.com/rawbby/kaspan-bench/pkg/executor"
	"github.com/rawbby/kaspan-bench/pkg/experiment"
)

// Config describes how local runs are started.
type Config struct {
	flagPrefix string

	Launcher      string `help:"MPI launcher used for local runs." default:"mpirun"`
	Oversubscribe bool   `help:"Allow more ranks than local cores." default:"false"`
}

// DefaultConfig returns the local run configuration from flags and environment.
func DefaultConfig() Config {
	config := Config{flagPrefix: "local_"}
	conf.Process(&config)
	return config
}

// MPIRun is a launcher for a single run on the local machine.
// Program output goes to the out and err files of the run.
type MPIRun struct {
	exec    executor.Executor
	name    string
	command string
}

// New prepares the run described by config. Threads greater than zero sets OMP_NUM_THREADS.
func New(exec executor.Executor, local Config, config experiment.RunConfig, threads int) (MPIRun, error) {
	err := config.Require("local run",
		experiment.KeyNP, experiment.KeyRun, experiment.KeyExe, experiment.KeyOut, experiment.KeyErr)
	if err != nil {
		return MPIRun{}, err
	}
	np, err := config.Int(experiment.KeyNP)
	if err != nil {
		return MPIRun{}, err
	}
	if np < 1 {
		return MPIRun{}, errors.Errorf("cannot start %d processes", np)
	}

	values := map[string]string{}
	for _, key := range []string{experiment.KeyRun, experiment.KeyExe, experiment.KeyOut, experiment.KeyErr} {
		if values[key], err = config.String(key); err != nil {
			return MPIRun{}, err
		}
	}

	var command []string
	if threads > 0 {
		command = append(command, fmt.Sprintf("OMP_NUM_THREADS=%d", threads))
	}
	command = append(command, shellescape.Quote(local.Launcher), "-n", fmt.Sprint(np))
	if local.Oversubscribe {
		command = append(command, "--oversubscribe")
	}
	command = append(command,
		shellescape.QuoteCommand(append([]string{values[experiment.KeyExe]}, config.Options()...)),
		">"+shellescape.Quote(values[experiment.KeyOut]),
		"2>"+shellescape.Quote(values[experiment.KeyErr]))

	return MPIRun{
		exec:    exec,
		name:    values[experiment.KeyRun],
		command: strings.Join(command, " "),
	}, nil
}

// Launch starts the run and returns its handle.
func (m MPIRun) Launch() (executor.TaskHandle, error) {
	task, err := m.exec.Execute(m.command)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot start %q", m.command)
	}
	return task, nil
}

// Name returns the run name.
func (m MPIRun) Name() string {
	return m.name
}

// Command returns the shell command of the run.
func (m MPIRun) Command() string {
	return m.command
}
