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
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"
)

// flagType is implemented by every flag registered in the package.
type flagType interface {
	envName() string
	clear()
	help() string
	current() string
	defaultString() string
}

// definedFlags stores all the defined flags by name so that redefinitions can be detected.
var definedFlags = map[string]flagType{}

// cliAndEnvFlag binds a kingpin flag to its KASPAN_ environment variable.
type cliAndEnvFlag struct {
	*kingpin.FlagClause
}

func newCliAndEnvFlag(flagName string, description string, defaultValues ...string) *cliAndEnvFlag {
	if definedFlags[flagName] != nil {
		panic(fmt.Sprintf("flag %q was already defined", flagName))
	}

	c := &cliAndEnvFlag{FlagClause: app.Flag(flagName, description)}
	c.OverrideDefaultFromEnvar(c.envName())

	for _, defaultValue := range defaultValues {
		if defaultValue == "" {
			continue
		}
		c.Default(defaultValue)
	}

	return c
}

// envName returns the environment variable for the flag, e.g. "slurm_partition" is "KASPAN_SLURM_PARTITION".
func (f *cliAndEnvFlag) envName() string {
	return fmt.Sprintf("%s_%s", EnvPrefix, strings.ToUpper(f.Model().Name))
}

func (f *cliAndEnvFlag) clear() {
	os.Unsetenv(f.envName())
}

func (f *cliAndEnvFlag) help() string {
	return f.Model().Help
}

// redefined returns the flag already registered under flagName.
// It panics when that flag has a different type or default.
func redefined[T flagType](flagName string, sameDefault func(T) bool) (T, bool) {
	var zero T
	existing := definedFlags[flagName]
	if existing == nil {
		return zero, false
	}

	flagDef, ok := existing.(T)
	if !ok {
		panic("Flag was redefined but with different type. Unify the type.")
	}
	if !sameDefault(flagDef) {
		panic("Flag was redefined but with different default value. Unify the default.")
	}
	return flagDef, true
}

func register(flagName string, flag flagType) {
	definedFlags[flagName] = flag
	isEnvParsed = false
}

// StringFlag represents flag with string value.
type StringFlag struct {
	*cliAndEnvFlag
	defaultValue string
	value        *string
}

// NewStringFlag is a constructor of StringFlag struct.
func NewStringFlag(flagName string, description string, defaultValue string) *StringFlag {
	if flagDef, ok := redefined(flagName, func(f *StringFlag) bool { return f.defaultValue == defaultValue }); ok {
		return flagDef
	}

	flagDef := &StringFlag{
		cliAndEnvFlag: newCliAndEnvFlag(flagName, description, defaultValue),
		defaultValue:  defaultValue,
	}
	flagDef.value = flagDef.String()
	register(flagName, flagDef)
	return flagDef
}

// Value returns value of defined flag after parse.
// NOTE: If conf is not parsed it returns default value (!)
func (s StringFlag) Value() string {
	if !isEnvParsed {
		return s.defaultValue
	}
	return *s.value
}

func (s StringFlag) current() string       { return s.Value() }
func (s StringFlag) defaultString() string { return s.defaultValue }

// IntFlag represents flag with int value.
type IntFlag struct {
	*cliAndEnvFlag
	defaultValue int
	value        *int
}

// NewIntFlag is a constructor of IntFlag struct.
func NewIntFlag(flagName string, description string, defaultValue int) *IntFlag {
	if flagDef, ok := redefined(flagName, func(f *IntFlag) bool { return f.defaultValue == defaultValue }); ok {
		return flagDef
	}

	flagDef := &IntFlag{
		cliAndEnvFlag: newCliAndEnvFlag(flagName, description, fmt.Sprintf("%d", defaultValue)),
		defaultValue:  defaultValue,
	}
	flagDef.value = flagDef.Int()
	register(flagName, flagDef)
	return flagDef
}

// Value returns value of defined flag after parse.
// NOTE: If conf is not parsed it returns default value (!)
func (i IntFlag) Value() int {
	if !isEnvParsed {
		return i.defaultValue
	}
	return *i.value
}

func (i IntFlag) current() string       { return fmt.Sprintf("%d", i.Value()) }
func (i IntFlag) defaultString() string { return fmt.Sprintf("%d", i.defaultValue) }

// BoolFlag represents flag with bool value.
type BoolFlag struct {
	*cliAndEnvFlag
	defaultValue bool
	value        *bool
}

// NewBoolFlag is a constructor of BoolFlag struct.
func NewBoolFlag(flagName string, description string, defaultValue bool) *BoolFlag {
	if flagDef, ok := redefined(flagName, func(f *BoolFlag) bool { return f.defaultValue == defaultValue }); ok {
		return flagDef
	}

	flagDef := &BoolFlag{
		cliAndEnvFlag: newCliAndEnvFlag(flagName, description, fmt.Sprintf("%v", defaultValue)),
		defaultValue:  defaultValue,
	}
	flagDef.value = flagDef.Bool()
	register(flagName, flagDef)
	return flagDef
}

// Value returns value of defined flag after parse.
// NOTE: If conf is not parsed it returns default value (!)
func (b BoolFlag) Value() bool {
	if !isEnvParsed {
		return b.defaultValue
	}
	return *b.value
}

func (b BoolFlag) current() string       { return fmt.Sprintf("%v", b.Value()) }
func (b BoolFlag) defaultString() string { return fmt.Sprintf("%v", b.defaultValue) }

// DurationFlag represents flag with duration value.
type DurationFlag struct {
	*cliAndEnvFlag
	defaultValue time.Duration
	value        *time.Duration
}

// NewDurationFlag is a constructor of DurationFlag struct.
func NewDurationFlag(flagName string, description string, defaultValue time.Duration) *DurationFlag {
	if flagDef, ok := redefined(flagName, func(f *DurationFlag) bool { return f.defaultValue == defaultValue }); ok {
		return flagDef
	}

	flagDef := &DurationFlag{
		cliAndEnvFlag: newCliAndEnvFlag(flagName, description, defaultValue.String()),
		defaultValue:  defaultValue,
	}
	flagDef.value = flagDef.Duration()
	register(flagName, flagDef)
	return flagDef
}

// Value returns value of defined flag after parse.
// NOTE: If conf is not parsed it returns default value (!)
func (d DurationFlag) Value() time.Duration {
	if !isEnvParsed {
		return d.defaultValue
	}
	return *d.value
}

func (d DurationFlag) current() string       { return d.Value().String() }
func (d DurationFlag) defaultString() string { return d.defaultValue.String() }

// SliceFlag represents flag with comma separated, repeatable string values.
type SliceFlag struct {
	*cliAndEnvFlag
	defaultValue []string
	value        *[]string
}

// NewSliceFlag is a constructor of SliceFlag struct.
func NewSliceFlag(flagName string, description string, elemsInDefaultSlice ...string) *SliceFlag {
	sameDefault := func(f *SliceFlag) bool {
		return strings.Join(f.defaultValue, listDelimiter) == strings.Join(elemsInDefaultSlice, listDelimiter)
	}
	if flagDef, ok := redefined(flagName, sameDefault); ok {
		return flagDef
	}

	flagDef := &SliceFlag{
		cliAndEnvFlag: newCliAndEnvFlag(flagName, description, strings.Join(elemsInDefaultSlice, listDelimiter)),
		defaultValue:  elemsInDefaultSlice,
	}
	flagDef.value = StringList(flagDef)
	register(flagName, flagDef)
	return flagDef
}

// Value returns value of defined flag after parse.
// NOTE: If conf is not parsed it returns default value (!)
func (s SliceFlag) Value() []string {
	if !isEnvParsed {
		return append([]string{}, s.defaultValue...)
	}
	return *s.value
}

func (s SliceFlag) current() string       { return strings.Join(s.Value(), listDelimiter) }
func (s SliceFlag) defaultString() string { return strings.Join(s.defaultValue, listDelimiter) }
