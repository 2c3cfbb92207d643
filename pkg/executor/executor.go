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

// Package executor runs shell commands locally or on a remote host and gives access to their output.
package executor

import (
	"io/ioutil"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Executor is responsible for creating execution environment for given command.
type Executor interface {
	// Execute executes command on underlying platform.
	Execute(command string) (TaskHandle, error)
	// Name returns user-friendly name of executor.
	Name() string
}

// TaskState represents task state type.
type TaskState int

const (
	// RUNNING task state means that task is still running.
	RUNNING TaskState = iota
	// TERMINATED task state means that task completed or stopped.
	TERMINATED
)

// TaskHandle represents a process which can be stopped or monitored.
type TaskHandle interface {
	// Stop terminates the task.
	Stop() error
	// Status returns a state of the task.
	Status() TaskState
	// ExitCode returns the exit code. It fails when the task is still running.
	ExitCode() (int, error)
	// StdoutFile opens the task's stdout file for reading.
	StdoutFile() (*os.File, error)
	// StderrFile opens the task's stderr file for reading.
	StderrFile() (*os.File, error)
	// Wait blocks until the task terminates or timeout passes. Zero timeout waits forever.
	// It returns true if task is terminated.
	Wait(timeout time.Duration) bool
	// Clean closes the task's stdout & stderr files.
	Clean() error
	// EraseOutput removes task's stdout & stderr files.
	EraseOutput() error
	// Address returns the host the task runs on.
	Address() string
}

// ReadOutput returns the whole stdout and stderr of a task.
func ReadOutput(task TaskHandle) (stdout, stderr string, err error) {
	read := func(open func() (*os.File, error)) (string, error) {
		file, err := open()
		if err != nil {
			return "", err
		}
		defer file.Close()
		data, err := ioutil.ReadAll(file)
		return string(data), err
	}

	if stdout, err = read(task.StdoutFile); err != nil {
		return "", "", errors.Wrap(err, "cannot read stdout")
	}
	if stderr, err = read(task.StderrFile); err != nil {
		return "", "", errors.Wrap(err, "cannot read stderr")
	}
	return stdout, stderr, nil
}

// waitFor blocks on done for at most timeout. Zero timeout waits forever.
func waitFor(done <-chan struct{}, timeout time.Duration) bool {
	if timeout == 0 {
		<-done
		return true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}
