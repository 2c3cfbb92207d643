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
	"github.com/pkg/errors"
)

// Injector derives parameters of a RunConfig in place.
// Running an injector twice on equal input must yield identical values.
type Injector interface {
	Inject(config RunConfig) error
	String() string
}

// Apply runs injectors in order and stops at the first failure.
func Apply(config RunConfig, injectors ...Injector) error {
	for _, injector := range injectors {
		if err := injector.Inject(config); err != nil {
			return errors.Wrapf(err, "%s injector failed", injector)
		}
	}
	return nil
}
