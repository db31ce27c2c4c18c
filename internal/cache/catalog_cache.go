package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/models"
)

const (
	catalogTTL        = 5 * time.Minute
	catalogVersionKey = "catalog:ver"
)

// CatalogCache caches public catalog responses (package and service lists).
// Cache keys embed a version counter that admin writes bump, so invalidation
// is a single INCR and stale entries age out by TTL. A nil *CatalogCache is
// valid and disables caching, matching deployments without Redis.
type CatalogCache struct {
	redis *RedisClient
}

// NewCatalogCache creates a new CatalogCache.
func NewCatalogCache(redis *RedisClient) *CatalogCache {
	return &CatalogCache{redis: redis}
}

func (c *CatalogCache) version(ctx context.Context) string {
	v, err := c.redis.Get(ctx, catalogVersionKey)
	if err != nil {
		return "0"
	}
	return v
}

func (c *CatalogCache) packagesKey(ctx context.Context, category, status string, limit int) string {
	return fmt.Sprintf("catalog:v%s:packages:%s:%s:%d", c.version(ctx), category, status, limit)
}

// GetPackages returns a cached package listing, or (nil, false) on miss.
func (c *CatalogCache) GetPackages(ctx context.Context, category, status string, limit int) ([]models.Package, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}
	raw, err := c.redis.Get(ctx, c.packagesKey(ctx, category, status, limit))
	if err != nil {
		return nil, false
	}
	var pkgs []models.Package
	if err := json.Unmarshal([]byte(raw), &pkgs); err != nil {
		return nil, false
	}
	return pkgs, true
}

// SetPackages stores a package listing under the current catalog version.
func (c *CatalogCache) SetPackages(ctx context.Context, category, status string, limit int, pkgs []models.Package) {
	if c == nil || c.redis == nil {
		return
	}
	raw, err := json.Marshal(pkgs)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, c.packagesKey(ctx, category, status, limit), string(raw), catalogTTL)
}

// GetServices returns the cached service listing, or (nil, false) on miss.
func (c *CatalogCache) GetServices(ctx context.Context) ([]models.Service, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}
	raw, err := c.redis.Get(ctx, "catalog:services")
	if err != nil {
		return nil, false
	}
	var services []models.Service
	if err := json.Unmarshal([]byte(raw), &services); err != nil {
		return nil, false
	}
	return services, true
}

// SetServices stores the service listing.
func (c *CatalogCache) SetServices(ctx context.Context, services []models.Service) {
	if c == nil || c.redis == nil {
		return
	}
	raw, err := json.Marshal(services)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, "catalog:services", string(raw), catalogTTL)
}

// Invalidate bumps the catalog version, orphaning every package listing key.
// Called after any admin package write.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if c == nil || c.redis == nil {
		return
	}
	_, _ = c.redis.Incr(ctx, catalogVersionKey)
}
