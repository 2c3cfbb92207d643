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

package visualization

import (
	"fmt"
	"io"
)

// ExperimentMetadata is a model for data.
type ExperimentMetadata struct {
	experimentID string
	directory    string
	runs         int
	failed       int
}

// NewExperimentMetadata creates new model of data representation.
func NewExperimentMetadata(ID, directory string, runs, failed int) *ExperimentMetadata {
	return &ExperimentMetadata{
		ID,
		directory,
		runs,
		failed,
	}
}

func (metadata *ExperimentMetadata) String() string {
	return fmt.Sprintf("Experiment id: %s\nDirectory: %s\nRuns: %d (%d failed)",
		metadata.experimentID, metadata.directory, metadata.runs, metadata.failed)
}

// PrintExperimentMetadata prints the metadata followed by a newline.
func PrintExperimentMetadata(w io.Writer, metadata *ExperimentMetadata) {
	fmt.Fprintln(w, metadata.String())
}
