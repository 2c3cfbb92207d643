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
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestWriteExclusive(t *testing.T) {
	Convey("While writing files exclusively", t, func() {
		dir, err := ioutil.TempDir("", "fs")
		So(err, ShouldBeNil)
		defer os.RemoveAll(dir)

		path := filepath.Join(dir, "nested", "job.sh")

		Convey("A new file should be created with requested mode", func() {
			So(WriteExclusive(path, []byte("#!/bin/bash\n"), 0755), ShouldBeNil)
			So(Exists(path), ShouldBeTrue)

			info, err := os.Stat(path)
			So(err, ShouldBeNil)
			So(info.Mode().Perm(), ShouldEqual, os.FileMode(0755))

			Convey("Writing it again should fail and keep the content", func() {
				So(WriteExclusive(path, []byte("other"), 0755), ShouldNotBeNil)
				data, err := ioutil.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, "#!/bin/bash\n")
			})
		})

		Convey("Workspace should follow the environment", func() {
			os.Setenv(workspaceEnv, dir)
			defer os.Unsetenv(workspaceEnv)
			So(GetExperimentDataPath(), ShouldEqual, filepath.Join(dir, "cmake-build-release", "experiment_data"))
		})
	})
}
