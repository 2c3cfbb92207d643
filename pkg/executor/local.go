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

package executor

import (
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Local runs commands on the local machine via "sh -c" as the current user.
type Local struct{}

// NewLocal returns a Local instance.
func NewLocal() Local {
	return Local{}
}

// Name returns user-friendly name of executor.
func (l Local) Name() string {
	return "Local"
}

// Execute runs the command given as input.
// Returned TaskHandle is able to stop & monitor the provisioned process.
func (l Local) Execute(command string) (TaskHandle, error) {
	output, err := createOutputFiles(command, "local")
	if err != nil {
		return nil, err
	}

	log.Debug("Starting ", command)

	cmd := exec.Command("sh", "-c", command)
	// A process group of its own lets Stop reach all children.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Stdout = output.stdout
	cmd.Stderr = output.stderr

	if err = cmd.Start(); err != nil {
		output.close()
		output.erase()
		return nil, errors.Wrapf(err, "cannot start %q", command)
	}

	log.Debug("Started with pid ", cmd.Process.Pid)

	task := &localTask{
		cmd:    cmd,
		output: output,
		done:   make(chan struct{}),
	}
	go task.wait(command)

	return task, nil
}

// localTask implements TaskHandle interface.
type localTask struct {
	cmd      *exec.Cmd
	output   *outputFiles
	done     chan struct{}
	exitCode int
}

func (t *localTask) wait(command string) {
	// The exit status is read from ProcessState below, so the returned error adds nothing.
	t.cmd.Wait()

	if status, ok := t.cmd.ProcessState.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		t.exitCode = -int(status.Signal())
	} else {
		t.exitCode = t.cmd.ProcessState.ExitCode()
	}

	log.Debugf("Ended %q with status code %d, output in %q", command, t.exitCode, t.output.dir)
	close(t.done)
}

func (t *localTask) terminated() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Stop sends SIGTERM to the process group of the task and waits for it.
func (t *localTask) Stop() error {
	if t.terminated() {
		return nil
	}

	pid := t.cmd.Process.Pid
	log.Debug("Sending SIGTERM to process group ", pid)
	if err := unix.Kill(-pid, unix.SIGTERM); err != nil && err != unix.ESRCH {
		return errors.Wrapf(err, "cannot stop process group %d", pid)
	}

	<-t.done
	return nil
}

// Status returns a state of the task.
func (t *localTask) Status() TaskState {
	if t.terminated() {
		return TERMINATED
	}
	return RUNNING
}

// ExitCode returns the exit code, negative signal number for signalled processes.
func (t *localTask) ExitCode() (int, error) {
	if !t.terminated() {
		return 0, errors.New("task is still running")
	}
	return t.exitCode, nil
}

// StdoutFile opens the stdout file for reading.
func (t *localTask) StdoutFile() (*os.File, error) {
	return t.output.openStdout()
}

// StderrFile opens the stderr file for reading.
func (t *localTask) StderrFile() (*os.File, error) {
	return t.output.openStderr()
}

// Wait blocks until the process terminates or timeout passes.
func (t *localTask) Wait(timeout time.Duration) bool {
	return waitFor(t.done, timeout)
}

// Clean closes the output files.
func (t *localTask) Clean() error {
	return t.output.close()
}

// EraseOutput removes the output directory.
func (t *localTask) EraseOutput() error {
	return t.output.erase()
}

// Address returns the loopback address.
func (t *localTask) Address() string {
	return "127.0.0.1"
}
