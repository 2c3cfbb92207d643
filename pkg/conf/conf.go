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

package conf

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

// EnvPrefix is prepended to every flag name to build its environment variable.
const EnvPrefix = "KASPAN"

var (
	app = kingpin.New("kaspan-bench", "No help available")

	logLevelFlag = NewStringFlag(
		"log",
		"Log level: debug, info, warn, error, fatal, panic",
		"info",
	)
	isEnvParsed = false
)

// SetHelp sets the help message for the CLI.
func SetHelp(help string) {
	app.Help = help
}

// SetAppName sets application name for CLI output.
func SetAppName(name string) {
	app.Name = name
}

// AppName returns specified app name.
func AppName() string {
	return app.Name
}

// LogLevel returns configured log level from flag or environment.
// Falls back to the default when the configured value cannot be parsed.
func LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(logLevelFlag.Value())
	if err == nil {
		return level
	}

	level, err = logrus.ParseLevel(logLevelFlag.defaultValue)
	if err == nil {
		return level
	}

	// Programmer error.
	panic(errors.Wrap(err, "parsing log level failed"))
}

// LoadEnvFile loads KEY=VALUE pairs from given files into the process environment.
// Variables that are already set are not overridden. Missing files are ignored.
func LoadEnvFile(paths ...string) error {
	existing := []string{}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	return errors.Wrapf(godotenv.Load(existing...), "could not load env files %v", existing)
}

// ParseFlags parses both the command line flags of the process and the environment.
func ParseFlags() error {
	return parse(os.Args[1:])
}

// ParseEnv parses the environment only.
func ParseEnv() error {
	return parse([]string{})
}

func parse(args []string) error {
	if _, err := app.Parse(args); err != nil {
		return errors.Wrap(err, "could not parse configuration")
	}
	isEnvParsed = true
	return nil
}

type flagDefinition struct {
	Name, Value, Default, Help string
}

// definitions returns current value, default and help for every registered flag, sorted by name.
func definitions() []flagDefinition {
	result := []flagDefinition{}
	for name, flag := range definedFlags {
		// Dashed flags steer the tool itself and are not part of the environment configuration.
		if strings.Contains(name, "-") {
			continue
		}
		result = append(result, flagDefinition{
			Name:    name,
			Value:   flag.current(),
			Default: flag.defaultString(),
			Help:    flag.help(),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// DumpConfig dumps environment based configuration with current values of flags.
func DumpConfig() string {
	return DumpConfigMap(nil)
}

// DumpConfigMap dumps configuration with current values overwritten by given flagMap.
// Output can be sourced by bash.
func DumpConfigMap(flagMap map[string]string) string {
	buffer := &bytes.Buffer{}

	buffer.WriteString("# Export all values.\n")
	buffer.WriteString("set -o allexport\n")

	for _, fd := range definitions() {
		fmt.Fprintf(buffer, "\n# %s\n", fd.Help)
		if fd.Default != "" {
			fmt.Fprintf(buffer, "# Default: %s\n", fd.Default)
		}

		value := fd.Value
		if mapValue, ok := flagMap[fd.Name]; ok {
			value = mapValue
		}

		fmt.Fprintf(buffer, "%s_%s=%v\n", EnvPrefix, strings.ToUpper(fd.Name), value)
	}

	buffer.WriteString("set +o allexport")
	return buffer.String()
}

// GetFlags returns flags as map with current values.
func GetFlags() map[string]string {
	flagsMap := map[string]string{}
	for _, fd := range definitions() {
		flagsMap[fd.Name] = fd.Value
	}
	return flagsMap
}
