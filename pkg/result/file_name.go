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
	"regexp"
	"strconv"
)

const extension = ".json"

// Program names are lower case words joined by underscores. The lazy match stops at the first _np<P>_.
var fileNamePattern = regexp.MustCompile(`^(weak|strong)_([a-z]+(?:_[a-z]+)*?)_np([0-9]+)_(.+)\.json$`)

// RunFile is the information encoded in a result file name.
type RunFile struct {
	Scaling string
	Program string
	NP      int64
	Graph   string
}

// Run returns the run name.
func (f RunFile) Run() string {
	return RunName(f.Program, f.NP, f.Graph)
}

// String returns the file name.
func (f RunFile) String() string {
	return FileName(f.Scaling, f.Run())
}

// RunName builds the name of a run: {program}_np{np}_{graph}.
func RunName(program string, np int64, graph string) string {
	return fmt.Sprintf("%s_np%d_%s", program, np, graph)
}

// FileName returns the result file name of a run, prefixed by the scaling mode when one is given.
func FileName(scaling, run string) string {
	if scaling == "" {
		return run + extension
	}
	return scaling + "_" + run + extension
}

// ParseFileName decodes a result file name. Names that do not follow the pattern are rejected with false.
func ParseFileName(name string) (RunFile, bool) {
	groups := fileNamePattern.FindStringSubmatch(name)
	if groups == nil {
		return RunFile{}, false
	}

	np, err := strconv.ParseInt(groups[3], 10, 64)
	if err != nil || np <= 0 {
		return RunFile{}, false
	}

	return RunFile{
		Scaling: groups[1],
		Program: groups[2],
		NP:      np,
		Graph:   groups[4],
	}, true
}
