package store

import "context"

// KV is the shared key-value store used by every execution context.
// It is the only shared mutable resource; callers re-read before every
// write because no transaction primitive is assumed.
type KV interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, pattern string) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}

// Persisted state layout.
const (
	KeyResume    = "resume"
	KeySettings  = "settings"
	KeyHistory   = "history"
	KeyRateLimit = "rate_limit"

	CachePrefix  = "cache_"
	TabJobPrefix = "tabjob_"
)
