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

package workloads_test

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	executormocks "github.com/rawbby/kaspan-bench/pkg/executor/mocks"
	"github.com/rawbby/kaspan-bench/pkg/workloads"
	"github.com/rawbby/kaspan-bench/pkg/workloads/mocks"
	log "github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRunToCompletion(t *testing.T) {
	log.SetLevel(log.ErrorLevel)

	Convey("While running a job to completion", t, func() {
		launcher := new(mocks.Launcher)
		task := new(executormocks.TaskHandle)
		launcher.On("Name").Return("kaspan_np2")
		task.On("Clean").Return(nil)
		task.On("EraseOutput").Return(nil)

		Convey("A successful job should not report an error", func() {
			launcher.On("Launch").Return(task, nil)
			task.On("Wait", time.Minute).Return(true)
			task.On("ExitCode").Return(0, nil)

			So(workloads.RunToCompletion(launcher, time.Minute), ShouldBeNil)
			task.AssertExpectations(t)
		})

		Convey("A failing job should report its exit code", func() {
			launcher.On("Launch").Return(task, nil)
			task.On("Wait", time.Minute).Return(true)
			task.On("ExitCode").Return(3, nil)

			err := workloads.RunToCompletion(launcher, time.Minute)
			So(err, ShouldResemble, workloads.ExitCodeError{Name: "kaspan_np2", Code: 3})
		})

		Convey("A hanging job should be stopped", func() {
			launcher.On("Launch").Return(task, nil)
			task.On("Wait", time.Second).Return(false)
			task.On("Stop").Return(nil)

			err := workloads.RunToCompletion(launcher, time.Second)
			So(err, ShouldResemble, workloads.TimeoutError{Name: "kaspan_np2", Timeout: time.Second})
			So(err.Error(), ShouldEqual, "kaspan_np2 did not finish within 1s")
			task.AssertCalled(t, "Stop")
		})

		Convey("A job that cannot start should be reported", func() {
			launcher.On("Launch").Return(nil, errors.New("no such file"))

			err := workloads.RunToCompletion(launcher, time.Minute)
			So(err.Error(), ShouldEqual, "cannot launch kaspan_np2: no such file")
			task.AssertNotCalled(t, "Clean")
		})
	})
}
