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
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rawbby/kaspan-bench/pkg/scaling"
	"github.com/rawbby/kaspan-bench/pkg/topo"
	"github.com/rawbby/kaspan-bench/pkg/visualization"
)

// reporter runs one full aggregation pass and prints its tables.
type reporter struct {
	loader     scaling.Loader
	topology   topo.Topology
	exportFile string
	textfile   string
}

func (r reporter) report(w io.Writer) error {
	dataset, report := r.loader.Load()
	globalRange := scaling.GlobalRange(dataset)

	if len(report.Skipped) > 0 {
		fmt.Fprintf(w, "Skipped %d result files:\n", len(report.Skipped))
		visualization.SkipTable(report).Draw(w)
	}

	for _, scalingMode := range dataset.Scalings() {
		for _, graph := range dataset.Graphs(scalingMode) {
			fmt.Fprintf(w, "\n%s scaling on %s:\n", scalingMode, graph)
			visualization.ScalingTable(dataset, globalRange, scalingMode, graph).Draw(w)
		}
	}
	fmt.Fprintln(w)
	visualization.SummaryTable(dataset).Draw(w)

	if r.exportFile != "" {
		if err := exportStatistics(r.exportFile, dataset, globalRange, r.topology); err != nil {
			return err
		}
	}
	if r.textfile != "" {
		if err := r.loader.Telemetry.WriteToTextfile(r.textfile); err != nil {
			return err
		}
	}
	return nil
}

// exportStatistics replaces path only after the statistics were written completely.
func exportStatistics(path string, dataset *scaling.Dataset, globalRange scaling.Range, topology topo.Topology) error {
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return errors.Wrapf(err, "cannot create %q", tmp)
	}

	if err := scaling.Export(file, dataset, globalRange, topology); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "cannot write %q", tmp)
	}
	return errors.Wrapf(os.Rename(tmp, path), "cannot move statistics to %q", path)
}
