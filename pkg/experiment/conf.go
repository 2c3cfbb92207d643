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

package experiment

import (
	"fmt"
	"os"

	"github.com/rawbby/kaspan-bench/pkg/conf"
	"github.com/rawbby/kaspan-bench/pkg/utils/errutil"
	"github.com/sirupsen/logrus"
)

// ExUsage is the exit code for invalid command line usage.
const ExUsage = 64

var (
	// Names include a dash to exclude them from dumping.
	dumpConfigFlag = conf.NewBoolFlag("config-dump", "Dump configuration as environment script.", false)
	envFileFlag    = conf.NewStringFlag("env-file", "File with KASPAN_* variables loaded before parsing.", ".env")
)

// Configure loads the env file, parses flags and environment and sets the log level.
// Note: exits if a configuration dump was requested.
func Configure() {
	errutil.CheckWithContext(conf.LoadEnvFile(envFileFromArgs(os.Args[1:])), "Cannot load env file")

	err := conf.ParseFlags()
	if err != nil {
		logrus.Errorf("Cannot parse flags: %q", err.Error())
		os.Exit(ExUsage)
	}
	logrus.SetLevel(conf.LogLevel())

	if dumpConfigFlag.Value() {
		fmt.Println(conf.DumpConfig())
		os.Exit(0)
	}
}

// envFileFromArgs finds --env-file before kingpin parses, since the file feeds the environment
// kingpin reads.
func envFileFromArgs(args []string) string {
	const prefix = "--env-file="
	for i, arg := range args {
		switch {
		case arg == "--env-file" && i+1 < len(args):
			return args[i+1]
		case len(arg) > len(prefix) && arg[:len(prefix)] == prefix:
			return arg[len(prefix):]
		}
	}
	if path := os.Getenv("KASPAN_ENV_FILE"); path != "" {
		return path
	}
	return envFileFlag.Value()
}
