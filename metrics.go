// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package weaver

import (
	"sync"

	"github.com/cockroachdb/redact"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robinloom/weaver/internal/traverse"
)

// Metrics records weaving statistics as Prometheus collectors. A nil
// *Metrics records nothing.
type Metrics struct {
	mu sync.Mutex

	totals MetricsSnapshot

	weavesTotal      *prometheus.CounterVec
	truncationsTotal *prometheus.CounterVec
	referencesTotal  *prometheus.CounterVec
	failuresTotal    *prometheus.CounterVec
	outputBytes      *prometheus.HistogramVec

	registerer prometheus.Registerer
	registered bool
}

// MetricsSnapshot holds the totals recorded by a Metrics.
type MetricsSnapshot struct {
	Weaves            uint64
	DepthTruncations  uint64
	LengthTruncations uint64
	Cycles            uint64
	Shared            uint64
	Failures          uint64
	OutputBytes       uint64
}

// SafeFormat implements redact.SafeFormatter.
func (s MetricsSnapshot) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("weaves: %d, bytes: %d, truncated: %d depth %d length, references: %d cycles %d shared, failures: %d",
		s.Weaves, s.OutputBytes, s.DepthTruncations, s.LengthTruncations, s.Cycles, s.Shared, s.Failures)
}

// String implements fmt.Stringer.
func (s MetricsSnapshot) String() string {
	return redact.StringWithoutMarkers(s)
}

func newCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "weaver",
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

// NewMetrics creates a new collector set. A nil registerer uses
// prometheus.DefaultRegisterer. The collectors are not registered until
// Register is called.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return &Metrics{
		registerer:       registerer,
		weavesTotal:      newCounterVec("weaves_total", "Total number of values woven", []string{"mode"}),
		truncationsTotal: newCounterVec("truncations_total", "Total number of truncated subtrees, sequences and outputs", []string{"mode", "reason"}),
		referencesTotal:  newCounterVec("references_total", "Total number of values not expanded because they were already visited", []string{"mode", "kind"}),
		failuresTotal:    newCounterVec("failures_total", "Total number of values whose textual form could not be produced", []string{"mode"}),
		outputBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "weaver",
				Name:      "output_bytes",
				Help:      "Length of woven output",
				Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
			},
			[]string{"mode"},
		),
	}
}

// Register registers the Prometheus collectors. Safe to call multiple times.
func (m *Metrics) Register() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.registered {
		return nil
	}
	collectors := []prometheus.Collector{
		m.weavesTotal,
		m.truncationsTotal,
		m.referencesTotal,
		m.failuresTotal,
		m.outputBytes,
	}
	for _, c := range collectors {
		if err := m.registerer.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	m.registered = true
	return nil
}

// Snapshot returns the totals recorded so far.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals
}

func (m *Metrics) observe(mode Mode, s traverse.Stats, n int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.totals.Weaves++
	m.totals.DepthTruncations += uint64(s.DepthTruncations)
	m.totals.LengthTruncations += uint64(s.LengthTruncations)
	m.totals.Cycles += uint64(s.Cycles)
	m.totals.Shared += uint64(s.Shared)
	m.totals.Failures += uint64(s.Failures)
	m.totals.OutputBytes += uint64(n)
	m.mu.Unlock()

	label := mode.String()
	m.weavesTotal.WithLabelValues(label).Inc()
	m.truncationsTotal.WithLabelValues(label, "depth").Add(float64(s.DepthTruncations))
	m.truncationsTotal.WithLabelValues(label, "length").Add(float64(s.LengthTruncations))
	m.referencesTotal.WithLabelValues(label, "cycle").Add(float64(s.Cycles))
	m.referencesTotal.WithLabelValues(label, "shared").Add(float64(s.Shared))
	m.failuresTotal.WithLabelValues(label).Add(float64(s.Failures))
	m.outputBytes.WithLabelValues(label).Observe(float64(n))
}
