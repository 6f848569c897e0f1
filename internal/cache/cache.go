package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ErrMiss is returned by Store.Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Store is a byte-level cache backend. Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}

const keySep = ":"

// Key joins query parameters into a cache key. Each part is query-escaped, so a part
// never contains keySep or a glob metacharacter and distinct parts never collide.
func Key(parts ...string) string {
	esc := make([]string, len(parts))
	for i, p := range parts {
		esc[i] = url.QueryEscape(p)
	}
	return strings.Join(esc, keySep)
}

// Query is a typed view over a Store for one query shape.
type Query[T any] struct {
	store  Store
	prefix string
	ttl    time.Duration
}

// NewQuery creates a typed query cache whose keys start with name.
func NewQuery[T any](store Store, name string, ttl time.Duration) *Query[T] {
	return &Query[T]{store: store, prefix: name, ttl: ttl}
}

func (q *Query[T]) key(params []string) string {
	return Key(append([]string{q.prefix}, params...)...)
}

// Get returns the cached value for params or ErrMiss.
func (q *Query[T]) Get(ctx context.Context, params ...string) (T, error) {
	var out T
	b, err := q.store.Get(ctx, q.key(params))
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("decode cached %s: %w", q.prefix, err)
	}
	return out, nil
}

// Set stores v under params.
func (q *Query[T]) Set(ctx context.Context, v T, params ...string) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s for cache: %w", q.prefix, err)
	}
	return q.store.Set(ctx, q.key(params), b, q.ttl)
}

// Fetch returns the cached value or calls load and caches its result.
// Load errors are returned and nothing is cached. Concurrent misses may both load; last write wins.
func (q *Query[T]) Fetch(ctx context.Context, load func(context.Context) (T, error), params ...string) (T, error) {
	if v, err := q.Get(ctx, params...); err == nil {
		return v, nil
	}
	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	// a failed cache write only costs a refetch
	_ = q.Set(ctx, v, params...)
	return v, nil
}

// Invalidate drops the entry for params and every entry keyed under them, so Invalidate(ctx, vendorID)
// also drops (vendorID, caller) entries. With no params it drops every entry of this query.
func (q *Query[T]) Invalidate(ctx context.Context, params ...string) error {
	k := q.key(params)
	if err := q.store.Delete(ctx, k); err != nil {
		return err
	}
	return q.store.DeletePrefix(ctx, k+keySep)
}
