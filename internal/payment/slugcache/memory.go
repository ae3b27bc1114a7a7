package slugcache

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is the single-instance fallback when redis is disabled.
type MemoryCache struct {
	store *gocache.Cache
}

func NewMemory(ttl time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(ttl, 2*ttl)}
}

func (c *MemoryCache) Get(_ context.Context, slug string) (snowflake.ID, bool, error) {
	v, ok := c.store.Get(slug)
	if !ok {
		return 0, false, nil
	}
	id, ok := v.(snowflake.ID)
	return id, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, slug string, paymentMethodID snowflake.ID) error {
	c.store.SetDefault(slug, paymentMethodID)
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, slug string) error {
	c.store.Delete(slug)
	return nil
}
