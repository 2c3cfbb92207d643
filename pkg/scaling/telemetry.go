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
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Reasons a result file is skipped.
const (
	ReasonUnreadable     = "unreadable"
	ReasonCorrupt        = "corrupt"
	ReasonMissingMetric  = "missing_metric"
	ReasonUnknownVariant = "unknown_variant"
	ReasonDurationLimit  = "duration_limit"
)

// Telemetry counts loaded and skipped result documents. A nil Telemetry counts nothing.
type Telemetry struct {
	registry *prometheus.Registry
	loaded   prometheus.Counter
	skipped  *prometheus.CounterVec
	entries  prometheus.Gauge
}

// NewTelemetry creates the counters on a private registry.
func NewTelemetry() *Telemetry {
	t := &Telemetry{
		registry: prometheus.NewRegistry(),
		loaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kaspan_bench",
			Name:      "results_loaded_total",
			Help:      "Result documents aggregated into a dataset.",
		}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kaspan_bench",
			Name:      "results_skipped_total",
			Help:      "Result documents excluded from aggregation by reason.",
		}, []string{"reason"}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kaspan_bench",
			Name:      "dataset_entries",
			Help:      "Entries of the most recently loaded dataset.",
		}),
	}
	t.registry.MustRegister(t.loaded, t.skipped, t.entries)
	return t
}

func (t *Telemetry) countLoaded() {
	if t != nil {
		t.loaded.Inc()
	}
}

func (t *Telemetry) countSkipped(reason string) {
	if t != nil {
		t.skipped.WithLabelValues(reason).Inc()
	}
}

func (t *Telemetry) setEntries(n int) {
	if t != nil {
		t.entries.Set(float64(n))
	}
}

// WriteToTextfile writes the counters in the text format read by the node exporter textfile collector.
func (t *Telemetry) WriteToTextfile(path string) error {
	if t == nil {
		return nil
	}
	return errors.Wrapf(prometheus.WriteToTextfile(path, t.registry), "cannot write telemetry to %q", path)
}
