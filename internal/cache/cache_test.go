// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package cache

import (
	"errors"
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := New(1 * time.Minute)

	c.Set("key1", "value1")

	value, found := c.Get("key1")
	if !found {
		t.Fatal("expected key1 to be present")
	}
	if value != "value1" {
		t.Errorf("expected value1, got %v", value)
	}
}

func TestCacheMiss(t *testing.T) {
	c := New(1 * time.Minute)

	_, found := c.Get("absent")
	if found {
		t.Error("expected miss for absent key")
	}

	stats := c.GetStats()
	if stats.Misses != 1 {
		t.Errorf("expected 1 miss, got %d", stats.Misses)
	}
}

func TestCacheExpiration(t *testing.T) {
	c := New(1 * time.Minute)

	c.SetWithTTL("short", "value", 10*time.Millisecond)

	if _, found := c.Get("short"); !found {
		t.Fatal("expected entry before expiry")
	}

	time.Sleep(20 * time.Millisecond)

	if _, found := c.Get("short"); found {
		t.Error("expected entry to expire")
	}
}

func TestCacheOverwrite(t *testing.T) {
	c := New(1 * time.Minute)

	c.Set("key", "first")
	c.Set("key", "second")

	value, found := c.Get("key")
	if !found {
		t.Fatal("expected key to be present")
	}
	if value != "second" {
		t.Errorf("expected last write to win, got %v", value)
	}
}

func TestCacheDelete(t *testing.T) {
	c := New(1 * time.Minute)

	c.Set("key", "value")
	c.Delete("key")

	if _, found := c.Get("key"); found {
		t.Error("expected key to be deleted")
	}
}

func TestCacheClear(t *testing.T) {
	c := New(1 * time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	if _, found := c.Get("a"); found {
		t.Error("expected a to be cleared")
	}
	if _, found := c.Get("b"); found {
		t.Error("expected b to be cleared")
	}

	stats := c.GetStats()
	if stats.TotalKeys != 0 {
		t.Errorf("expected 0 keys after clear, got %d", stats.TotalKeys)
	}
}

func TestCacheHitRate(t *testing.T) {
	c := New(1 * time.Minute)

	if rate := c.HitRate(); rate != 0.0 {
		t.Errorf("expected 0%% hit rate on empty cache, got %f", rate)
	}

	c.Set("key", "value")
	c.Get("key")
	c.Get("key")
	c.Get("absent")

	rate := c.HitRate()
	expected := 2.0 / 3.0 * 100.0
	if rate < expected-0.01 || rate > expected+0.01 {
		t.Errorf("expected hit rate %.2f, got %.2f", expected, rate)
	}
}

func TestRememberComputesOnce(t *testing.T) {
	c := New(1 * time.Minute)

	calls := 0
	compute := func() (interface{}, error) {
		calls++
		return "computed", nil
	}

	value, hit, err := c.Remember("key", time.Minute, compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hit {
		t.Error("expected first call to miss")
	}
	if value != "computed" {
		t.Errorf("expected computed value, got %v", value)
	}

	value, hit, err = c.Remember("key", time.Minute, compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hit {
		t.Error("expected second call to hit")
	}
	if value != "computed" {
		t.Errorf("expected cached value, got %v", value)
	}

	if calls != 1 {
		t.Errorf("expected compute to run once, ran %d times", calls)
	}
}

func TestRememberErrorNotCached(t *testing.T) {
	c := New(1 * time.Minute)

	failErr := errors.New("upstream failed")
	calls := 0

	_, _, err := c.Remember("key", time.Minute, func() (interface{}, error) {
		calls++
		return nil, failErr
	})
	if !errors.Is(err, failErr) {
		t.Fatalf("expected compute error, got %v", err)
	}

	value, hit, err := c.Remember("key", time.Minute, func() (interface{}, error) {
		calls++
		return "recovered", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hit {
		t.Error("failed computation must not populate the cache")
	}
	if value != "recovered" {
		t.Errorf("expected recomputed value, got %v", value)
	}
	if calls != 2 {
		t.Errorf("expected 2 compute calls, got %d", calls)
	}
}

func TestRememberRecomputesAfterExpiry(t *testing.T) {
	c := New(1 * time.Minute)

	calls := 0
	compute := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	c.Remember("key", 10*time.Millisecond, compute)
	time.Sleep(20 * time.Millisecond)

	value, hit, err := c.Remember("key", 10*time.Millisecond, compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hit {
		t.Error("expected recompute after TTL expiry")
	}
	if value != 2 {
		t.Errorf("expected second computation result, got %v", value)
	}
}

func TestGenerateKeyDeterministic(t *testing.T) {
	type params struct {
		Query   string `json:"q"`
		PerPage int    `json:"per_page"`
	}

	k1 := GenerateKey("search", params{Query: "playa", PerPage: 15})
	k2 := GenerateKey("search", params{Query: "playa", PerPage: 15})
	k3 := GenerateKey("search", params{Query: "selva", PerPage: 15})

	if k1 != k2 {
		t.Error("identical params must produce identical keys")
	}
	if k1 == k3 {
		t.Error("different params must produce different keys")
	}
	if k1 == GenerateKey("home", params{Query: "playa", PerPage: 15}) {
		t.Error("different endpoints must produce different keys")
	}
}
