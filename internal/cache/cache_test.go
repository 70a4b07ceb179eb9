// SPDX-License-Identifier: MIT

package cache

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestKeyDistinguishesInputs(t *testing.T) {
	base := Key("ja", 1, 1000, "これはテスト")

	if Key("ja", 1, 1000, "これはテスト") != base {
		t.Error("identical inputs must produce identical keys")
	}
	if Key("th", 1, 1000, "これはテスト") == base {
		t.Error("model must participate in the key")
	}
	if Key("ja", 2, 1000, "これはテスト") == base {
		t.Error("store generation must participate in the key")
	}
	if Key("ja", 1, 2000, "これはテスト") == base {
		t.Error("threshold must participate in the key")
	}
	if Key("ja", 1, 1000, "これはテスト。") == base {
		t.Error("text must participate in the key")
	}
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache(0)

	phrases := []string{"これは", "テストです。"}
	c.Set("k", phrases, 5*time.Minute)

	got, found := c.Get("k")
	if !found {
		t.Fatal("expected hit")
	}
	if diff := cmp.Diff(phrases, got); diff != "" {
		t.Errorf("cached phrases (-want +got):\n%s", diff)
	}

	// The cache must hold its own copy.
	got[0] = "mutated"
	again, _ := c.Get("k")
	if again[0] != "これは" {
		t.Error("cache returned aliased slice")
	}

	stats := c.Stats()
	if stats.Sets != 1 || stats.Hits != 2 {
		t.Errorf("stats = %+v, want 1 set / 2 hits", stats)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(0)
	c.Set("k", []string{"x"}, time.Millisecond)

	time.Sleep(5 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("expected expired entry to miss")
	}
	if stats := c.Stats(); stats.Misses != 1 {
		t.Errorf("misses = %d, want 1", stats.Misses)
	}
}

func TestMemoryCacheDeleteClear(t *testing.T) {
	c := NewMemoryCache(0)
	c.Set("a", []string{"x"}, time.Minute)
	c.Set("b", []string{"y"}, time.Minute)

	c.Delete("a")
	if _, found := c.Get("a"); found {
		t.Error("deleted key still present")
	}

	c.Clear()
	if _, found := c.Get("b"); found {
		t.Error("cleared key still present")
	}
	if stats := c.Stats(); stats.CurrentSize != 0 {
		t.Errorf("size after clear = %d", stats.CurrentSize)
	}
}

func TestMemoryCacheJanitor(t *testing.T) {
	c := NewMemoryCache(10 * time.Millisecond)
	mc := c.(*memoryCache)
	defer mc.Stop()

	c.Set("k", []string{"x"}, time.Millisecond)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if mc.Stats().CurrentSize == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("janitor never evicted the expired entry")
}

func TestNoOpCache(t *testing.T) {
	c := NewNoOpCache()
	c.Set("k", []string{"x"}, time.Minute)
	if _, found := c.Get("k"); found {
		t.Error("no-op cache must never hit")
	}
}
