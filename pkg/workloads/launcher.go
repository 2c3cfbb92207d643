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

// Package workloads holds the benchmark programs and the ways they are started.
package workloads

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rawbby/kaspan-bench/pkg/executor"
	log "github.com/sirupsen/logrus"
)

// Launcher responsibility is to launch previously configured job.
type Launcher interface {
	// Launch starts the workload (process or group of processes). It returns a workload
	// represented as a Task Handle instance.
	// Error is returned when Launcher is unable to start a job.
	Launch() (executor.TaskHandle, error)

	// Name returns human readable name for job.
	Name() string
}

// TimeoutError is returned when a job had to be stopped.
type TimeoutError struct {
	Name    string
	Timeout time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("%s did not finish within %s", e.Name, e.Timeout)
}

// ExitCodeError is returned when a job terminated unsuccessfully.
type ExitCodeError struct {
	Name string
	Code int
}

func (e ExitCodeError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Name, e.Code)
}

// RunToCompletion launches the job and waits for it at most timeout.
// A job still running after timeout is stopped.
func RunToCompletion(launcher Launcher, timeout time.Duration) error {
	task, err := launcher.Launch()
	if err != nil {
		return errors.Wrapf(err, "cannot launch %s", launcher.Name())
	}
	defer task.EraseOutput()
	defer task.Clean()

	if !task.Wait(timeout) {
		log.WithField("job", launcher.Name()).Warnf("Stopping after %s", timeout)
		if err := task.Stop(); err != nil {
			return errors.Wrapf(err, "cannot stop %s", launcher.Name())
		}
		return TimeoutError{Name: launcher.Name(), Timeout: timeout}
	}

	code, err := task.ExitCode()
	if err != nil {
		return err
	}
	if code != 0 {
		return ExitCodeError{Name: launcher.Name(), Code: code}
	}
	return nil
}
