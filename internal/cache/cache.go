package cache

import (
	"context"
	"time"
)

const (
	ExpiryDefaultInMemory = 30 * time.Minute

	// ExpiryCatalogSnapshot keeps catalog snapshots short-lived so report
	// runs pick up rate edits within a few minutes.
	ExpiryCatalogSnapshot = 5 * time.Minute
)

// Cache is the application-level caching contract.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, expiry time.Duration)
	Delete(ctx context.Context, key string)
	DeleteByPrefix(ctx context.Context, prefix string)
	Flush(ctx context.Context)
}

// UnmarshalCacheValue attempts to convert a cached value to the requested
// type. Returns the typed value and true on success.
func UnmarshalCacheValue[T any](value interface{}) (*T, bool) {
	if value == nil {
		return nil, false
	}
	if typed, ok := value.(*T); ok {
		return typed, true
	}
	if typed, ok := value.(T); ok {
		return &typed, true
	}
	return nil, false
}
