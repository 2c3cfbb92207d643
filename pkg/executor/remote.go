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
	"net"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

// Remote runs commands on a remote machine via ssh.
type Remote struct {
	sshConfig SSHConfig
}

// NewRemote returns a Remote instance.
func NewRemote(sshConfig SSHConfig) Remote {
	return Remote{sshConfig: sshConfig}
}

// NewShell returns a Local executor for an empty or loopback host and a Remote one otherwise.
func NewShell(host string, sshConfig func(host string) (*SSHConfig, error)) (Executor, error) {
	if host == "" || host == "localhost" || host == "127.0.0.1" {
		return NewLocal(), nil
	}
	config, err := sshConfig(host)
	if err != nil {
		return nil, err
	}
	return NewRemote(*config), nil
}

// Name returns user-friendly name of executor.
func (r Remote) Name() string {
	return "Remote"
}

// Execute runs the command on the remote host. Output is streamed into local files.
func (r Remote) Execute(command string) (TaskHandle, error) {
	address := net.JoinHostPort(r.sshConfig.Host, strconv.Itoa(r.sshConfig.Port))
	client, err := ssh.Dial("tcp", address, r.sshConfig.ClientConfig)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot connect to %s", address)
	}

	session, err := client.NewSession()
	if err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "cannot open session on %s", address)
	}

	output, err := createOutputFiles(command, "remote")
	if err != nil {
		session.Close()
		client.Close()
		return nil, err
	}
	session.Stdout = output.stdout
	session.Stderr = output.stderr

	log.Debugf("Starting %q on %s", command, address)
	if err = session.Start(command); err != nil {
		output.close()
		output.erase()
		session.Close()
		client.Close()
		return nil, errors.Wrapf(err, "cannot start %q on %s", command, address)
	}

	task := &remoteTask{
		host:    r.sshConfig.Host,
		client:  client,
		session: session,
		output:  output,
		done:    make(chan struct{}),
	}
	go task.wait(command)

	return task, nil
}

// remoteTask implements TaskHandle interface.
type remoteTask struct {
	host     string
	client   *ssh.Client
	session  *ssh.Session
	output   *outputFiles
	done     chan struct{}
	exitCode int
}

func (t *remoteTask) wait(command string) {
	err := t.session.Wait()
	switch exitErr := err.(type) {
	case nil:
		t.exitCode = 0
	case *ssh.ExitError:
		t.exitCode = exitErr.ExitStatus()
	default:
		log.Debugf("Session of %q on %s ended without exit status: %v", command, t.host, err)
		t.exitCode = -1
	}

	t.session.Close()
	t.client.Close()
	log.Debugf("Ended %q on %s with status code %d", command, t.host, t.exitCode)
	close(t.done)
}

func (t *remoteTask) terminated() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Stop signals the remote process and closes the session.
func (t *remoteTask) Stop() error {
	if t.terminated() {
		return nil
	}

	if err := t.session.Signal(ssh.SIGTERM); err != nil {
		log.Debugf("Cannot signal task on %s: %v", t.host, err)
	}
	t.session.Close()

	<-t.done
	return nil
}

// Status returns a state of the task.
func (t *remoteTask) Status() TaskState {
	if t.terminated() {
		return TERMINATED
	}
	return RUNNING
}

// ExitCode returns the remote exit status.
func (t *remoteTask) ExitCode() (int, error) {
	if !t.terminated() {
		return 0, errors.New("task is still running")
	}
	return t.exitCode, nil
}

// StdoutFile opens the local copy of stdout.
func (t *remoteTask) StdoutFile() (*os.File, error) {
	return t.output.openStdout()
}

// StderrFile opens the local copy of stderr.
func (t *remoteTask) StderrFile() (*os.File, error) {
	return t.output.openStderr()
}

// Wait blocks until the remote process terminates or timeout passes.
func (t *remoteTask) Wait(timeout time.Duration) bool {
	return waitFor(t.done, timeout)
}

// Clean closes the output files.
func (t *remoteTask) Clean() error {
	return t.output.close()
}

// EraseOutput removes the output directory.
func (t *remoteTask) EraseOutput() error {
	return t.output.erase()
}

// Address returns the remote host.
func (t *remoteTask) Address() string {
	return t.host
}
