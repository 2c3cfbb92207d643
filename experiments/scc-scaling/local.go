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

package main

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rawbby/kaspan-bench/pkg/conf"
	"github.com/rawbby/kaspan-bench/pkg/executor"
	"github.com/rawbby/kaspan-bench/pkg/experiment"
	"github.com/rawbby/kaspan-bench/pkg/slurm"
	"github.com/rawbby/kaspan-bench/pkg/utils/errcollection"
	"github.com/rawbby/kaspan-bench/pkg/workloads"
	"github.com/rawbby/kaspan-bench/pkg/workloads/mpirun"
	log "github.com/sirupsen/logrus"
	"gopkg.in/cheggaaa/pb.v1"
)

// runLocally executes the composed runs one after another on this machine.
// Each run is stopped after the job timeout its script carries. Failed runs are added to failures.
func runLocally(runs []composedRun, exec executor.Executor, local mpirun.Config, bounds slurm.Bounds, failures *errcollection.ErrorCollection) {
	// Progress is only drawn when logs are quiet.
	var bar *pb.ProgressBar
	if conf.LogLevel() == log.ErrorLevel {
		bar = pb.StartNew(len(runs))
		bar.ShowTimeLeft = true
		defer bar.Finish()
	}

	for i, run := range runs {
		failures.Add(runOne(run, i, len(runs), exec, local, bounds))
		if bar != nil {
			bar.Increment()
		}
	}
}

func runOne(run composedRun, i, total int, exec executor.Executor, local mpirun.Config, bounds slurm.Bounds) error {
	timeout, err := jobTimeout(run.config, bounds)
	if err != nil {
		return err
	}
	launcher, err := mpirun.New(exec, local, run.config, run.threads)
	if err != nil {
		return err
	}

	logger := log.WithField("run", launcher.Name())
	logger.Infof("Running %d/%d", i+1, total)
	start := time.Now()
	if err := workloads.RunToCompletion(launcher, timeout); err != nil {
		logger.Warnf("Run failed: %s", err)
		return err
	}
	logger.Infof("Finished in %s", time.Since(start).Round(time.Millisecond))
	return nil
}

func jobTimeout(config experiment.RunConfig, bounds slurm.Bounds) (time.Duration, error) {
	budget, err := slurm.ParseBudget(config[experiment.KeyTimeout])
	if err != nil {
		return 0, errors.Wrapf(err, "run %v", config[experiment.KeyRun])
	}
	plan, err := bounds.Normalize(budget)
	if err != nil {
		return 0, err
	}
	return time.Duration(plan.JobTimeout) * time.Second, nil
}
