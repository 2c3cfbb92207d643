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
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rawbby/kaspan-bench/pkg/conf"
	"github.com/rawbby/kaspan-bench/pkg/experiment"
	"github.com/rawbby/kaspan-bench/pkg/scaling"
	"github.com/rawbby/kaspan-bench/pkg/topo"
	"github.com/rawbby/kaspan-bench/pkg/utils/errutil"
	"github.com/sirupsen/logrus"
)

const watchDebounce = 2 * time.Second

var (
	resultsDirFlag      = conf.NewStringFlag("results_dir", "Directory searched recursively for result files.", ".")
	durationLimitFlag   = conf.NewDurationFlag("duration_limit", "Runs slower than this are excluded. Zero disables the limit.", 10*time.Minute)
	exportFileFlag      = conf.NewStringFlag("export_file", "Statistics JSON for the plot renderer. Empty disables the export.", "")
	metricsTextfileFlag = conf.NewStringFlag("metrics_textfile", "Prometheus textfile with load counters. Empty disables it.", "")
	watchFlag           = conf.NewBoolFlag("watch", "Repeat the report whenever result files change.", false)
)

func main() {
	conf.SetAppName("scaling-report")
	conf.SetHelp(`Loads SCC benchmark results, prints duration, speedup and memory statistics per graph
and exports them for the plot renderer. Broken or incomplete result files are reported and skipped.`)

	topo.DefaultConfig()
	experiment.Configure()
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	topology := topo.DefaultConfig().Topology()
	errutil.Check(topology.Validate())

	r := reporter{
		loader: scaling.Loader{
			Dir:           resultsDirFlag.Value(),
			DurationLimit: durationLimitFlag.Value(),
			Telemetry:     scaling.NewTelemetry(),
		},
		topology:   topology,
		exportFile: exportFileFlag.Value(),
		textfile:   metricsTextfileFlag.Value(),
	}
	errutil.CheckWithContext(r.report(os.Stdout), "Cannot write report")

	if !watchFlag.Value() {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logrus.Infof("Watching %q for new results", r.loader.Dir)
	err := scaling.Watch(ctx, r.loader.Dir, watchDebounce, func() {
		if err := r.report(os.Stdout); err != nil {
			logrus.Errorf("Report failed: %s", err)
		}
	})
	errutil.CheckWithContext(err, "Cannot watch results")
}
