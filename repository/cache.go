package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
	"github.com/go-streamline/aiworkflow/config"
)

// recordCache holds record values by id for at most ttl. Records are stored and
// returned by value: top-level fields are copied, but pointer fields
// (Description, StartedAt, ...) point at memory shared with the cache and must
// not be written through.
type recordCache[T any] struct {
	client *ristretto.Cache
	cache  *cache.Cache[T]
	prefix string
	ttl    time.Duration
}

func newRecordCache[T any](cfg config.Cache, prefix string) (*recordCache[T], error) {
	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        cfg.NumCounters,
		MaxCost:            cfg.MaxCost,
		BufferItems:        cfg.BufferItems,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToInitializeCache, err)
	}

	return &recordCache[T]{
		client: client,
		cache:  cache.New[T](ristretto_store.NewRistretto(client)),
		prefix: prefix,
		ttl:    cfg.TTL,
	}, nil
}

func (c *recordCache[T]) key(id string) string {
	return c.prefix + ":" + id
}

func (c *recordCache[T]) get(ctx context.Context, id string) (*T, bool) {
	value, err := c.cache.Get(ctx, c.key(id))
	if err != nil {
		return nil, false
	}
	return &value, true
}

func (c *recordCache[T]) set(ctx context.Context, id string, value T) error {
	if err := c.cache.Set(ctx, c.key(id), value, store.WithExpiration(c.ttl)); err != nil {
		return err
	}
	// ristretto applies writes asynchronously
	c.client.Wait()
	return nil
}

func (c *recordCache[T]) invalidate(ctx context.Context, id string) error {
	return c.cache.Delete(ctx, c.key(id))
}
