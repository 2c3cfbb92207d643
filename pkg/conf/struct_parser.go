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
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/camelcase"
	"github.com/pkg/errors"
)

const (
	// Help message for the flag. Required when any other tag is present.
	helpTag = "help"
	// Default value of the flag. [Optional]
	defaultTag = "default"
	// Overrides the name derived from the field name. [Optional]
	nameTag = "name"
	// Marks the flag as required. [Optional]
	requiredTag = "required"
	// Field holding a prefix for all flags in the struct.
	prefixFieldName = "flagPrefix"
)

var durationType = reflect.TypeOf(time.Duration(0))

// Process registers a flag for every tagged field of the struct pointed to by data
// and fills the fields with the current flag values (defaults when not parsed yet).
func Process(data interface{}) error {
	value := reflect.ValueOf(data)
	if value.Kind() != reflect.Ptr || value.Elem().Kind() != reflect.Struct {
		return errors.Errorf("argument needs to be a pointer to struct, got %T", data)
	}

	structValue := value.Elem()
	structType := structValue.Type()

	prefix := ""
	if prefixField := structValue.FieldByName(prefixFieldName); prefixField.IsValid() && prefixField.Kind() == reflect.String {
		prefix = prefixField.String()
	}

	for i := 0; i < structValue.NumField(); i++ {
		field := structValue.Field(i)
		if !field.CanSet() || structType.Field(i).Anonymous {
			continue
		}

		if err := processField(prefix, field, structType.Field(i)); err != nil {
			return errors.Wrapf(err, "field %s", structType.Field(i).Name)
		}
	}
	return nil
}

// nameFromFieldName turns e.g. "CoresPerSocket" into "cores_per_socket".
func nameFromFieldName(name string) string {
	words := []string{}
	for _, word := range camelcase.Split(name) {
		if word == "_" {
			continue
		}
		words = append(words, strings.ToLower(word))
	}
	return strings.Join(words, "_")
}

func anyTagSpecified(field reflect.StructField) bool {
	for _, tag := range []string{nameTag, defaultTag, requiredTag} {
		if field.Tag.Get(tag) != "" {
			return true
		}
	}
	return false
}

func processField(prefix string, field reflect.Value, structField reflect.StructField) error {
	help := structField.Tag.Get(helpTag)
	if help == "" {
		if anyTagSpecified(structField) {
			return errors.New("required help tag is missing")
		}
		// Untagged fields are not exposed.
		return nil
	}

	name := structField.Tag.Get(nameTag)
	if name == "" {
		name = structField.Name
	}
	name = nameFromFieldName(prefix + name)
	defaultValue := structField.Tag.Get(defaultTag)

	var clause *cliAndEnvFlag

	switch {
	case field.Type() == durationType:
		var d time.Duration
		if defaultValue != "" {
			var err error
			if d, err = time.ParseDuration(defaultValue); err != nil {
				return errors.Wrap(err, "wrong default value for duration flag")
			}
		}
		flag := NewDurationFlag(name, help, d)
		field.SetInt(int64(flag.Value()))
		clause = flag.cliAndEnvFlag

	case field.Kind() == reflect.String:
		flag := NewStringFlag(name, help, defaultValue)
		field.SetString(flag.Value())
		clause = flag.cliAndEnvFlag

	case field.Kind() == reflect.Int:
		i := 0
		if defaultValue != "" {
			var err error
			if i, err = strconv.Atoi(defaultValue); err != nil {
				return errors.Wrap(err, "wrong default value for int flag")
			}
		}
		flag := NewIntFlag(name, help, i)
		field.SetInt(int64(flag.Value()))
		clause = flag.cliAndEnvFlag

	case field.Kind() == reflect.Bool:
		b := false
		if defaultValue != "" {
			var err error
			if b, err = strconv.ParseBool(defaultValue); err != nil {
				return errors.Wrap(err, "wrong default value for bool flag")
			}
		}
		flag := NewBoolFlag(name, help, b)
		field.SetBool(flag.Value())
		clause = flag.cliAndEnvFlag

	case field.Type() == reflect.TypeOf([]string(nil)):
		var defaults StringListValue
		if defaultValue != "" {
			_ = defaults.Set(defaultValue)
		}
		flag := NewSliceFlag(name, help, defaults...)
		field.Set(reflect.ValueOf(flag.Value()))
		clause = flag.cliAndEnvFlag

	default:
		return errors.Errorf("%s type not supported for a flag", field.Type())
	}

	if structField.Tag.Get(requiredTag) == "true" {
		clause.Required()
	}
	return nil
}
