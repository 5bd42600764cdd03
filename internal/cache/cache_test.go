package cache

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"joblens/internal/store"
)

func newTestCache() (*Cache, *store.Memory, *time.Time) {
	kv := store.NewMemory()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	c := New(kv, nil)
	c.now = func() time.Time { return now }
	return c, kv, &now
}

func TestCache_PutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestCache()

	payload := json.RawMessage(`{"match_percentage":82}`)
	if err := c.Put(ctx, "https://example.com/jobs/1", payload); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, hit, err := c.Get(ctx, "https://example.com/jobs/1")
	if err != nil || !hit {
		t.Fatalf("get: hit=%t err=%v", hit, err)
	}
	if string(got) != string(payload) {
		t.Fatalf("payload: got %s", got)
	}
}

func TestCache_KeyNormalizesURL(t *testing.T) {
	if Key("https://example.com/jobs/1/") != Key("  https://example.com/jobs/1") {
		t.Fatalf("trailing slash and surrounding space must not change the key")
	}
	if Key("https://example.com/jobs/1") == Key("https://example.com/jobs/2") {
		t.Fatalf("distinct URLs produced the same key")
	}
	if !strings.HasPrefix(Key("https://example.com"), store.CachePrefix) {
		t.Fatalf("key missing cache prefix: %q", Key("https://example.com"))
	}
}

func TestCache_ExpiryIsLazy(t *testing.T) {
	ctx := context.Background()
	c, kv, now := newTestCache()

	url := "https://example.com/jobs/1"
	if err := c.Put(ctx, url, json.RawMessage(`{}`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	// Exactly at the TTL the entry is still valid.
	*now = now.Add(TTL)
	if _, hit, err := c.Get(ctx, url); err != nil || !hit {
		t.Fatalf("at TTL: hit=%t err=%v", hit, err)
	}

	// One tick past the TTL it expires and is removed on read.
	*now = now.Add(time.Second)
	if _, hit, err := c.Get(ctx, url); err != nil || hit {
		t.Fatalf("past TTL: hit=%t err=%v", hit, err)
	}
	keys, err := kv.Keys(ctx, store.CachePrefix+"*")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("expired entry not deleted: %v", keys)
	}
}

func TestCache_MissWithoutError(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestCache()
	if _, hit, err := c.Get(ctx, "https://example.com/never-seen"); err != nil || hit {
		t.Fatalf("miss: hit=%t err=%v", hit, err)
	}
}

func TestCache_ClearCountsOnlyCacheEntries(t *testing.T) {
	ctx := context.Background()
	c, kv, _ := newTestCache()

	c.Put(ctx, "https://example.com/jobs/1", json.RawMessage(`{}`))
	c.Put(ctx, "https://example.com/jobs/2", json.RawMessage(`{}`))
	kv.SetJSON(ctx, store.KeyRateLimit, map[string]int{"remaining": 5})

	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n != 2 {
		t.Fatalf("cleared count: got %d, want 2", n)
	}
	var out map[string]int
	if found, _ := kv.GetJSON(ctx, store.KeyRateLimit, &out); !found {
		t.Fatalf("non-cache keys must survive a cache clear")
	}
}
