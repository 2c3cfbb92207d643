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
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// outputFiles are the stdout and stderr files of one task, kept in their own directory.
type outputFiles struct {
	dir    string
	stdout *os.File
	stderr *os.File
}

func commandName(command string) (string, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", errors.New("empty command string")
	}
	return filepath.Base(fields[0]), nil
}

func createOutputFiles(command, prefix string) (*outputFiles, error) {
	name, err := commandName(command)
	if err != nil {
		return nil, err
	}

	dir, err := ioutil.TempDir("", prefix+"_"+name+"_")
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create output directory for %s", name)
	}

	stdout, err := os.Create(filepath.Join(dir, "stdout"))
	if err != nil {
		os.RemoveAll(dir)
		return nil, errors.Wrap(err, "cannot create stdout file")
	}

	stderr, err := os.Create(filepath.Join(dir, "stderr"))
	if err != nil {
		stdout.Close()
		os.RemoveAll(dir)
		return nil, errors.Wrap(err, "cannot create stderr file")
	}

	return &outputFiles{dir: dir, stdout: stdout, stderr: stderr}, nil
}

func (o *outputFiles) openStdout() (*os.File, error) {
	return os.Open(o.stdout.Name())
}

func (o *outputFiles) openStderr() (*os.File, error) {
	return os.Open(o.stderr.Name())
}

func (o *outputFiles) close() error {
	errOut := o.stdout.Close()
	errErr := o.stderr.Close()
	if errOut != nil {
		return errOut
	}
	return errErr
}

func (o *outputFiles) erase() error {
	return errors.Wrapf(os.RemoveAll(o.dir), "cannot remove %q", o.dir)
}
