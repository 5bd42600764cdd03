package cache

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"joblens/internal/store"
)

// TTL bounds how long a computed analysis stays valid for the same page.
const TTL = 24 * time.Hour

// Entry pairs an opaque analysis payload with its write time. Expiry is
// lazy: expired entries are deleted on read, never swept proactively.
type Entry struct {
	Result    json.RawMessage `json:"result"`
	Timestamp time.Time       `json:"timestamp"`
}

// Cache maps a normalized page URL to a previously computed result.
// Distinct URLs hashing to the same key overwrite each other; the simple
// hash accepts that risk.
type Cache struct {
	kv     store.KV
	ttl    time.Duration
	logger *log.Logger
	now    func() time.Time
}

func New(kv store.KV, logger *log.Logger) *Cache {
	return &Cache{kv: kv, ttl: TTL, logger: logger, now: time.Now}
}

// Key derives the store key for a URL via a fast non-cryptographic hash.
func Key(rawURL string) string {
	u := strings.TrimRight(strings.TrimSpace(rawURL), "/")
	return store.CachePrefix + strconv.FormatUint(xxhash.Sum64String(u), 16)
}

func (c *Cache) Get(ctx context.Context, rawURL string) (json.RawMessage, bool, error) {
	key := Key(rawURL)

	var e Entry
	found, err := c.kv.GetJSON(ctx, key, &e)
	if err != nil || !found {
		return nil, false, err
	}

	// An entry is valid through exactly its TTL; only strictly older
	// entries expire.
	if c.now().Sub(e.Timestamp) > c.ttl {
		if err := c.kv.Delete(ctx, key); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}
	return e.Result, true, nil
}

func (c *Cache) Put(ctx context.Context, rawURL string, result json.RawMessage) error {
	return c.kv.SetJSON(ctx, Key(rawURL), Entry{Result: result, Timestamp: c.now()})
}

// Clear deletes every cache-namespace entry and returns how many went.
func (c *Cache) Clear(ctx context.Context) (int, error) {
	keys, err := c.kv.Keys(ctx, store.CachePrefix+"*")
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, k := range keys {
		if err := c.kv.Delete(ctx, k); err != nil {
			return deleted, err
		}
		deleted++
	}
	if c.logger != nil {
		c.logger.Printf("cache cleared | entries=%d", deleted)
	}
	return deleted, nil
}
