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

package logger

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInitialize(t *testing.T) {
	Convey("While initializing the experiment logger", t, func() {
		dir, err := ioutil.TempDir("", "logger")
		So(err, ShouldBeNil)
		defer os.RemoveAll(dir)

		closer, err := Initialize("scc-scaling", dir)
		So(err, ShouldBeNil)

		logrus.Warn("run skipped")
		So(closer.Close(), ShouldBeNil)

		Convey("Messages should land in the log file", func() {
			data, err := ioutil.ReadFile(filepath.Join(dir, "scc-scaling.log"))
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, "run skipped")
		})
	})
}
