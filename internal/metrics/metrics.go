// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package metrics exposes Prometheus counters and histograms for the
// Pipeline and Watcher.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type pipelineMetrics struct {
	once sync.Once

	discovered prometheus.Counter
	analyzed prometheus.Counter
	skipped prometheus.Counter
	removed prometheus.Counter
	extractorFailures prometheus.Counter
	watchDebounced prometheus.Counter
	watchTriggered prometheus.Counter

	passDuration prometheus.Histogram
}

var m pipelineMetrics

func (p *pipelineMetrics) init() {
	p.once.Do(func() {
		p.discovered = prometheus.NewCounter(prometheus.CounterOpts{Name: "ctx_agent_files_discovered_total", Help: "Files seen by the Scanner across all pipeline passes"})
		p.analyzed = prometheus.NewCounter(prometheus.CounterOpts{Name: "ctx_agent_files_analyzed_total", Help: "Files with a changed content hash, re-extracted"})
		p.skipped = prometheus.NewCounter(prometheus.CounterOpts{Name: "ctx_agent_files_skipped_total", Help: "Files with an unchanged content hash"})
		p.removed = prometheus.NewCounter(prometheus.CounterOpts{Name: "ctx_agent_files_removed_total", Help: "Files removed because they vanished from disk"})
		p.extractorFailures = prometheus.NewCounter(prometheus.CounterOpts{Name: "ctx_agent_extractor_failures_total", Help: "Per-file extractor failures, swallowed and counted"})
		p.watchDebounced = prometheus.NewCounter(prometheus.CounterOpts{Name: "ctx_agent_watch_debounced_total", Help: "Filesystem events discarded by the watcher's debounce gate"})
		p.watchTriggered = prometheus.NewCounter(prometheus.CounterOpts{Name: "ctx_agent_watch_triggered_total", Help: "Pipeline passes triggered by the watcher"})

		p.passDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "ctx_agent_pipeline_pass_seconds",
			Help: "Wall-clock duration of one pipeline pass",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		})

		prometheus.MustRegister(
			p.discovered, p.analyzed, p.skipped, p.removed,
			p.extractorFailures, p.watchDebounced, p.watchTriggered,
			p.passDuration,
		)
	})
}

// RecordPass records one pipeline pass's result counts and duration.
func RecordPass(discovered, analyzed, skipped, removed, extractorFailures int, durationSeconds float64) {
	m.init()
	m.discovered.Add(float64(discovered))
	m.analyzed.Add(float64(analyzed))
	m.skipped.Add(float64(skipped))
	m.removed.Add(float64(removed))
	m.extractorFailures.Add(float64(extractorFailures))
	m.passDuration.Observe(durationSeconds)
}

// RecordWatchDebounced increments the watcher's debounce-rejection counter.
func RecordWatchDebounced() {
	m.init()
	m.watchDebounced.Inc()
}

// RecordWatchTriggered increments the watcher's pipeline-trigger counter.
func RecordWatchTriggered() {
	m.init()
	m.watchTriggered.Inc()
}
