// SPDX-License-Identifier: MIT

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func findMetric(t *testing.T, name string) *dto.MetricFamily {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func counterValue(mf *dto.MetricFamily, labels map[string]string) float64 {
outer:
	for _, m := range mf.GetMetric() {
		got := map[string]string{}
		for _, lp := range m.GetLabel() {
			got[lp.GetName()] = lp.GetValue()
		}
		for k, v := range labels {
			if got[k] != v {
				continue outer
			}
		}
		return m.GetCounter().GetValue()
	}
	return -1
}

func TestRecordSegment(t *testing.T) {
	RecordSegment("ja", nil, 2*time.Millisecond, 3)
	RecordSegment("ja", errors.New("boom"), 0, 0)

	mf := findMetric(t, "kugiri_segment_requests_total")
	if mf == nil {
		t.Fatal("kugiri_segment_requests_total not registered")
	}
	if v := counterValue(mf, map[string]string{"model": "ja", "outcome": "success"}); v < 1 {
		t.Errorf("success counter = %v, want >= 1", v)
	}
	if v := counterValue(mf, map[string]string{"model": "ja", "outcome": "failure"}); v < 1 {
		t.Errorf("failure counter = %v, want >= 1", v)
	}
}

func TestCacheAndModelMetricsRegistered(t *testing.T) {
	RecordCacheLookup(true)
	RecordCacheLookup(false)
	RecordModelReload()
	SetCustomModels(2)
	RecordDictionaryMerges(1)

	for _, name := range []string{
		"kugiri_cache_lookups_total",
		"kugiri_model_reloads_total",
		"kugiri_custom_models",
		"kugiri_dictionary_merges_total",
		"kugiri_segment_duration_seconds",
	} {
		if findMetric(t, name) == nil {
			t.Errorf("metric %s not registered", name)
		}
	}

	mf := findMetric(t, "kugiri_cache_lookups_total")
	if v := counterValue(mf, map[string]string{"outcome": "hit"}); v < 1 {
		t.Errorf("hit counter = %v, want >= 1", v)
	}
}
