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
	"strings"

	"gopkg.in/alecthomas/kingpin.v2"
)

const listDelimiter = ","

// StringListValue is a kingpin.Value that splits its input on commas and accumulates
// repeated occurrences, so "-f=A,B -f=C" yields [A B C].
type StringListValue []string

// Set implements kingpin.Value.
func (s *StringListValue) Set(value string) error {
	for _, elem := range strings.Split(value, listDelimiter) {
		if elem = strings.TrimSpace(elem); elem != "" {
			*s = append(*s, elem)
		}
	}
	return nil
}

// String implements kingpin.Value.
func (s *StringListValue) String() string {
	return strings.Join(*s, listDelimiter)
}

// IsCumulative marks the flag as repeatable for kingpin.
func (s *StringListValue) IsCumulative() bool {
	return true
}

// StringList is a helper for defining kingpin list flags.
func StringList(s kingpin.Settings) (target *[]string) {
	target = new([]string)
	s.SetValue((*StringListValue)(target))
	return
}
