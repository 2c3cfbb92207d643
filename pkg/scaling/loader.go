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

package scaling

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rawbby/kaspan-bench/pkg/metrics"
	"github.com/rawbby/kaspan-bench/pkg/result"
	"github.com/rawbby/kaspan-bench/pkg/utils/errcollection"
	"github.com/rawbby/kaspan-bench/pkg/workloads/program"
	log "github.com/sirupsen/logrus"
)

// DurationLimitError marks a run slower than the configured limit.
type DurationLimitError struct {
	Duration float64
	Limit    time.Duration
}

func (e DurationLimitError) Error() string {
	return fmt.Sprintf("duration %.2fs exceeds the limit of %s", e.Duration, e.Limit)
}

// Skip is a result file excluded from the dataset.
type Skip struct {
	File   string
	Reason string
	Err    error
}

// Report summarizes a load.
type Report struct {
	Loaded  int
	Skipped []Skip
}

// Err joins the errors of all skipped files, or returns nil.
func (r Report) Err() error {
	var collection errcollection.ErrorCollection
	for _, skip := range r.Skipped {
		collection.Add(errors.Wrap(skip.Err, skip.File))
	}
	return collection.GetErrIfAny()
}

// Loader builds datasets from the result files below Dir.
type Loader struct {
	Dir string
	// DurationLimit excludes slower runs. Zero disables the limit.
	DurationLimit time.Duration
	Telemetry     *Telemetry
}

// Load scans Dir recursively. Files not named like results are ignored.
// A file that cannot be used is reported and skipped, it never aborts the load.
func (l Loader) Load() (*Dataset, Report) {
	report := Report{}
	entries := []Entry{}

	skip := func(path string, err error) {
		reason := classify(err)
		log.WithField("file", path).WithField("reason", reason).Warnf("Skipping result: %s", err)
		l.Telemetry.countSkipped(reason)
		report.Skipped = append(report.Skipped, Skip{File: path, Reason: reason, Err: err})
	}

	walkErr := filepath.WalkDir(l.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			skip(path, err)
			if d != nil && d.IsDir() && path != l.Dir {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		run, ok := result.ParseFileName(d.Name())
		if !ok {
			return nil
		}

		entry, err := l.loadEntry(path, run)
		if err != nil {
			skip(path, err)
			return nil
		}

		l.Telemetry.countLoaded()
		report.Loaded++
		entries = append(entries, entry)
		return nil
	})
	if walkErr != nil {
		skip(l.Dir, walkErr)
	}

	dataset := NewDataset(entries)
	if dataset.Len() < len(entries) {
		log.Warnf("%d results share scaling, graph, variant and process count with a later file", len(entries)-dataset.Len())
	}
	l.Telemetry.setEntries(dataset.Len())
	log.Infof("Loaded %d results from %q, skipped %d", report.Loaded, l.Dir, len(report.Skipped))
	return dataset, report
}

func (l Loader) loadEntry(path string, run result.RunFile) (Entry, error) {
	variant, err := program.ParseVariant(run.Program)
	if err != nil {
		return Entry{}, err
	}
	extractor, err := metrics.For(variant)
	if err != nil {
		return Entry{}, err
	}

	document, err := result.Load(path, int(run.NP))
	if err != nil {
		return Entry{}, err
	}

	runMetrics, err := metrics.Extract(extractor, document)
	if corrupt, ok := err.(result.CorruptResultError); ok {
		corrupt.File = path
		return Entry{}, corrupt
	}
	if err != nil {
		return Entry{}, err
	}

	if l.DurationLimit > 0 && runMetrics.Duration > l.DurationLimit.Seconds() {
		return Entry{}, DurationLimitError{Duration: runMetrics.Duration, Limit: l.DurationLimit}
	}

	return Entry{
		Key:        Key{Scaling: run.Scaling, Graph: run.Graph, Variant: variant.Name(), NP: run.NP},
		File:       path,
		RunMetrics: runMetrics,
	}, nil
}

func classify(err error) string {
	switch errors.Cause(err).(type) {
	case result.CorruptResultError:
		return ReasonCorrupt
	case metrics.MissingMetricError:
		return ReasonMissingMetric
	case program.UnknownVariantError:
		return ReasonUnknownVariant
	case DurationLimitError:
		return ReasonDurationLimit
	}
	return ReasonUnreadable
}
