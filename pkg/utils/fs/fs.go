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

package fs

import (
	"os"
	"path/filepath"
)

const workspaceEnv = "KASPAN_WORKSPACE"

// GetWorkspacePath returns the root of the benchmark workspace.
// KASPAN_WORKSPACE wins, otherwise the current working directory is used.
func GetWorkspacePath() string {
	if path := os.Getenv(workspaceEnv); path != "" {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// GetBinaryPath returns the default directory holding bench_* executables.
func GetBinaryPath() string {
	return filepath.Join(GetWorkspacePath(), "cmake-build-release", "bin")
}

// GetExperimentDataPath returns the default directory for generated experiment data.
func GetExperimentDataPath() string {
	return filepath.Join(GetWorkspacePath(), "cmake-build-release", "experiment_data")
}
