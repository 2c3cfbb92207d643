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
	"regexp"
	"strings"
	"time"

	"github.com/alessio/shellescape"
	"github.com/pkg/errors"
	"github.com/rawbby/kaspan-bench/pkg/executor"
	log "github.com/sirupsen/logrus"
)

var submittedPattern = regexp.MustCompile(`Submitted batch job ([0-9]+)`)

// Submitter hands job scripts to the scheduler. It waits for sbatch only, never for the job.
type Submitter struct {
	Executor executor.Executor
	Command  string
	Timeout  time.Duration
}

// NewSubmitter is a constructor for Submitter running sbatch with the given executor.
func NewSubmitter(exec executor.Executor) Submitter {
	return Submitter{Executor: exec, Command: "sbatch", Timeout: time.Minute}
}

// Submit submits the job script at path and returns the scheduler job id.
func (s Submitter) Submit(path string) (string, error) {
	command := s.Command + " " + shellescape.Quote(path)
	task, err := s.Executor.Execute(command)
	if err != nil {
		return "", errors.Wrapf(err, "cannot execute %q on %s", command, s.Executor.Name())
	}
	defer func() {
		if err := task.Clean(); err != nil {
			log.Warnf("Cannot clean %q: %s", command, err)
		}
		if err := task.EraseOutput(); err != nil {
			log.Warnf("Cannot erase output of %q: %s", command, err)
		}
	}()

	if !task.Wait(s.Timeout) {
		if err := task.Stop(); err != nil {
			log.Warnf("Cannot stop %q: %s", command, err)
		}
		return "", errors.Errorf("%q did not finish within %s", command, s.Timeout)
	}

	stdout, stderr, err := executor.ReadOutput(task)
	if err != nil {
		return "", err
	}

	exitCode, err := task.ExitCode()
	if err != nil {
		return "", err
	}
	if exitCode != 0 {
		return "", errors.Errorf("%q exited with code %d: %s", command, exitCode, strings.TrimSpace(stderr))
	}

	match := submittedPattern.FindStringSubmatch(stdout)
	if match == nil {
		return "", errors.Errorf("unexpected output of %q: %s", command, strings.TrimSpace(stdout))
	}
	log.Infof("Submitted %q as job %s on %s", path, match[1], task.Address())
	return match[1], nil
}
