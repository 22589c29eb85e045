package weather

import (
	"testing"
	"time"
)

func TestTTLCache_ExpiryWithInjectedClock(t *testing.T) {
	cache := newTTLCache()
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	ttl := time.Hour

	cond := &Conditions{Location: "Istanbul", TempC: 24}
	cache.set("istanbul", cond, base)

	if got, ok := cache.get("istanbul", base.Add(30*time.Minute), ttl); !ok || got != cond {
		t.Errorf("entry should still be fresh after 30m")
	}

	if _, ok := cache.get("istanbul", base.Add(ttl), ttl); ok {
		t.Errorf("entry should be expired at exactly the TTL")
	}

	// Expired entries remain available as a stale fallback.
	if got, ok := cache.getStale("istanbul"); !ok || got != cond {
		t.Errorf("stale read should still return the entry")
	}
}

func TestTTLCache_MissingKey(t *testing.T) {
	cache := newTTLCache()
	if _, ok := cache.get("nope", time.Now(), time.Hour); ok {
		t.Error("get on missing key should miss")
	}
	if _, ok := cache.getStale("nope"); ok {
		t.Error("getStale on missing key should miss")
	}
}

func TestCacheKey_Normalization(t *testing.T) {
	if cacheKey("  Istanbul ") != "istanbul" {
		t.Errorf("cacheKey should trim and lowercase, got %q", cacheKey("  Istanbul "))
	}
}
