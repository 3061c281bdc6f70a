package unlock

import (
	"encoding/json"
	"log"
	"time"

	"github.com/dripgate/dripgate/app/models"
	"github.com/dripgate/dripgate/internal/pkg/cache"
)

const (
	catalogCacheKey = "catalog:ordered"
	catalogCacheTTL = 5 * time.Minute
)

// CachedCatalog is a read-through cache in front of a CatalogSource. The
// catalog is small and read on every feed request, so one shared Redis
// entry carries most of the load. Cache failures fall back to the source.
type CachedCatalog struct {
	source CatalogSource
}

// NewCachedCatalog wraps a catalog source with the shared Redis cache.
func NewCachedCatalog(source CatalogSource) *CachedCatalog {
	return &CachedCatalog{source: source}
}

// GetAllOrdered returns the cached catalog, refreshing it from the source
// on miss.
func (c *CachedCatalog) GetAllOrdered() ([]models.Content, error) {
	if raw, err := cache.Get(catalogCacheKey); err == nil && raw != "" {
		var catalog []models.Content
		if err := json.Unmarshal([]byte(raw), &catalog); err == nil {
			return catalog, nil
		}
		// Unreadable cache entry; drop it and fall through to the source.
		_ = cache.Delete(catalogCacheKey)
	}

	catalog, err := c.source.GetAllOrdered()
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(catalog); err == nil {
		if err := cache.Set(catalogCacheKey, raw, catalogCacheTTL); err != nil {
			log.Printf("catalog cache write failed: %v", err)
		}
	}

	return catalog, nil
}

// InvalidateCatalogCache drops the shared catalog entry. Called after
// every catalog write so feeds never serve stale content lists.
func InvalidateCatalogCache() {
	if err := cache.Delete(catalogCacheKey); err != nil {
		log.Printf("catalog cache invalidation failed: %v", err)
	}
}
