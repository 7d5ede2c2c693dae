package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kaskita/kasledger/internal/domain"
	"github.com/kaskita/kasledger/internal/usecase"
)

// PricingCache is a read-through cache in front of the pricing catalog.
// Catalog rows change rarely and are read on every top-up, so a short
// TTL keeps the kiosk responsive without an invalidation protocol.
type PricingCache struct {
	inner usecase.PricingCatalog
	cache usecase.Cache
	ttl   time.Duration
}

// NewPricingCache wraps a catalog with caching.
func NewPricingCache(inner usecase.PricingCatalog, cache usecase.Cache, ttl time.Duration) *PricingCache {
	return &PricingCache{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}
}

// Get fetches one item, preferring the cache. Cache errors fall through
// to the catalog; only domain.ErrProductNotFound surfaces from a miss.
func (p *PricingCache) Get(ctx context.Context, code string) (*domain.PricingItem, error) {
	key := "pricing:" + code

	if raw, err := p.cache.Get(ctx, key); err == nil {
		var item domain.PricingItem
		if err := json.Unmarshal([]byte(raw), &item); err == nil {
			return &item, nil
		}
	}

	item, err := p.inner.Get(ctx, code)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(item); err == nil {
		_ = p.cache.Set(ctx, key, string(raw), p.ttl)
	}

	return item, nil
}

// List always hits the catalog: the full listing is an operator screen,
// not a hot path.
func (p *PricingCache) List(ctx context.Context) ([]*domain.PricingItem, error) {
	return p.inner.List(ctx)
}
