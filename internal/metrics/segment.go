// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus instrumentation for the segmentation
// service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	segmentRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kugiri_segment_requests_total",
		Help: "Segmentation requests by model and outcome",
	}, []string{"model", "outcome"}) // outcome=success|failure

	segmentDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kugiri_segment_duration_seconds",
		Help:    "Time spent segmenting one text",
		Buckets: []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1, .25},
	})

	segmentPhrases = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kugiri_segment_phrases_total",
		Help: "Total number of phrases produced",
	})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kugiri_cache_lookups_total",
		Help: "Result cache lookups by outcome",
	}, []string{"outcome"}) // outcome=hit|miss

	customModels = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kugiri_custom_models",
		Help: "Number of custom models currently loaded",
	})

	modelReloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kugiri_model_reloads_total",
		Help: "Total number of model directory rescans triggered by changes",
	})

	dictionaryMerges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kugiri_dictionary_merges_total",
		Help: "Boundaries removed by dictionary overrides",
	})
)

// RecordSegment records one segmentation request.
func RecordSegment(model string, err error, duration time.Duration, phrases int) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	segmentRequests.WithLabelValues(model, outcome).Inc()
	if err == nil {
		segmentDuration.Observe(duration.Seconds())
		segmentPhrases.Add(float64(phrases))
	}
}

// RecordCacheLookup records a result cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		cacheLookups.WithLabelValues("hit").Inc()
	} else {
		cacheLookups.WithLabelValues("miss").Inc()
	}
}

// SetCustomModels sets the loaded custom model gauge.
func SetCustomModels(n int) {
	customModels.Set(float64(n))
}

// RecordModelReload counts one watcher-triggered rescan.
func RecordModelReload() {
	modelReloads.Inc()
}

// RecordDictionaryMerges counts boundaries merged away by overrides.
func RecordDictionaryMerges(n int) {
	if n > 0 {
		dictionaryMerges.Add(float64(n))
	}
}
