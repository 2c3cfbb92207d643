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
)

// MissingParameterError is returned when a component needs a RunConfig key that is absent.
type MissingParameterError struct {
	Component string
	Key       string
}

func (e MissingParameterError) Error() string {
	return fmt.Sprintf("%s: missing parameter %q", e.Component, e.Key)
}
