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

package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Initialize sends log output to both <dir>/<appName>.log and stderr.
// The returned closer flushes the log file and restores stderr only output.
func Initialize(appName, dir string) (io.Closer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "cannot create log directory %q", dir)
	}

	logFile, err := os.OpenFile(filepath.Join(dir, appName+".log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create log file")
	}

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05.100"})
	logrus.SetOutput(io.MultiWriter(logFile, os.Stderr))
	logrus.Infof("Logging %s to %q", appName, logFile.Name())

	return closerFunc(func() error {
		logrus.SetOutput(os.Stderr)
		return logFile.Close()
	}), nil
}

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}
