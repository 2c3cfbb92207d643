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
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestIdentity(t *testing.T) {
	Convey("While creating experiment identities", t, func() {
		Convey("IDs should encode truncated time and a random salt", func() {
			now := time.Unix(0x12abcdef, 0)
			id := newID(now, func() uint32 { return 0xdeadbeef })
			So(id, ShouldEqual, "abcdef_beef")
			So(regexp.MustCompile("^[0-9a-f]{6}_[0-9a-f]{4}$").MatchString(NewID()), ShouldBeTrue)
		})

		Convey("Seeds should stay in range", func() {
			for i := 0; i < 100; i++ {
				seed := RandomSeed()
				So(seed, ShouldBeBetweenOrEqual, 0, maxSeed)
			}
		})

		Convey("Experiment directories should be created once", func() {
			dataDir, err := ioutil.TempDir("", "experiment")
			So(err, ShouldBeNil)
			defer os.RemoveAll(dataDir)

			dir, err := CreateExperimentDir(dataDir, "abcdef_beef")
			So(err, ShouldBeNil)
			So(dir, ShouldEqual, filepath.Join(dataDir, "abcdef_beef"))

			_, err = CreateExperimentDir(dataDir, "abcdef_beef")
			So(err, ShouldNotBeNil)

			Convey("The base config should carry the identity", func() {
				experiment := Experiment{ID: "abcdef_beef", Dir: dir, Seed: 7}
				config := experiment.BaseConfig()
				So(config.Require("test", KeyExperiment, KeyExperimentDir, KeySeed), ShouldBeNil)
				So(config[KeyExperimentDir], ShouldEqual, dir)
			})
		})
	})
}
