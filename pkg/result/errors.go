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

package result

import (
	"fmt"
)

// CorruptResultError marks a result document that cannot be used at all:
// malformed JSON or ranks that do not match the declared process count.
type CorruptResultError struct {
	File   string
	Reason string
}

func (e CorruptResultError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("corrupt result: %s", e.Reason)
	}
	return fmt.Sprintf("corrupt result %q: %s", e.File, e.Reason)
}
