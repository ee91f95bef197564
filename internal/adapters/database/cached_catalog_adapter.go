package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/adityakhanna/shopwise/internal/domain/entities"
	"github.com/adityakhanna/shopwise/internal/domain/providers"
	"github.com/adityakhanna/shopwise/internal/domain/repositories"
)

// CachedCatalogAdapter wraps a CatalogRepository with read-through caching
// for the hot lookups: single products, brand and category listings, and
// category counts. Filtered queries always hit the store.
type CachedCatalogAdapter struct {
	adapter repositories.CatalogRepository
	cache   providers.CacheProvider
}

// NewCachedCatalogAdapter creates a new cached catalog adapter
func NewCachedCatalogAdapter(adapter repositories.CatalogRepository, cache providers.CacheProvider) repositories.CatalogRepository {
	return &CachedCatalogAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	productByIDTTL  = 300 // 5 minutes for single product
	catalogNamesTTL = 600 // 10 minutes for brand/category listings
	categoryCountTTL = 180
)

func productCacheKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

func categoryCountCacheKey(category string) string {
	return fmt.Sprintf("catalog:count:%s", category)
}

// Create stores a product and invalidates listing caches
func (a *CachedCatalogAdapter) Create(ctx context.Context, product *entities.Product) error {
	if err := a.adapter.Create(ctx, product); err != nil {
		return err
	}

	for _, key := range []string{"catalog:brands", "catalog:categories", categoryCountCacheKey(product.Category)} {
		if err := a.cache.Delete(ctx, key); err != nil {
			log.Printf("Failed to invalidate cache key %s: %v", key, err)
		}
	}
	return nil
}

// FindByID retrieves a product by ID with caching
func (a *CachedCatalogAdapter) FindByID(ctx context.Context, id string) (*entities.Product, error) {
	cacheKey := productCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var product entities.Product
		if err := json.Unmarshal(cached, &product); err == nil {
			return &product, nil
		}
		log.Printf("Failed to unmarshal cached product %s: %v", id, err)
	}

	product, err := a.adapter.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(product); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, productByIDTTL); err != nil {
				log.Printf("Failed to cache product %s: %v", id, err)
			}
		}
	}()

	return product, nil
}

// ListAll returns every active product with reviews attached
func (a *CachedCatalogAdapter) ListAll(ctx context.Context) ([]*entities.Product, error) {
	return a.adapter.ListAll(ctx)
}

// FindByBrand returns products of a brand
func (a *CachedCatalogAdapter) FindByBrand(ctx context.Context, brand string, limit int) ([]*entities.Product, error) {
	return a.adapter.FindByBrand(ctx, brand, limit)
}

// FindByCategory returns products in a category
func (a *CachedCatalogAdapter) FindByCategory(ctx context.Context, category string, limit int) ([]*entities.Product, error) {
	return a.adapter.FindByCategory(ctx, category, limit)
}

// FindByBrandAndCategory returns products matching both brand and category
func (a *CachedCatalogAdapter) FindByBrandAndCategory(ctx context.Context, brand, category string, limit int) ([]*entities.Product, error) {
	return a.adapter.FindByBrandAndCategory(ctx, brand, category, limit)
}

// SearchByName performs a case-insensitive substring search over product names
func (a *CachedCatalogAdapter) SearchByName(ctx context.Context, term string, limit int) ([]*entities.Product, error) {
	return a.adapter.SearchByName(ctx, term, limit)
}

// ListBrands returns all brand names with caching
func (a *CachedCatalogAdapter) ListBrands(ctx context.Context) ([]string, error) {
	return a.cachedNames(ctx, "catalog:brands", a.adapter.ListBrands)
}

// ListCategories returns all category names with caching
func (a *CachedCatalogAdapter) ListCategories(ctx context.Context) ([]string, error) {
	return a.cachedNames(ctx, "catalog:categories", a.adapter.ListCategories)
}

// BrandsInCategory returns the distinct brands with products in a category
func (a *CachedCatalogAdapter) BrandsInCategory(ctx context.Context, category string) ([]string, error) {
	key := fmt.Sprintf("catalog:brands:%s", category)
	return a.cachedNames(ctx, key, func(ctx context.Context) ([]string, error) {
		return a.adapter.BrandsInCategory(ctx, category)
	})
}

// CountByCategory returns the number of products in a category with caching
func (a *CachedCatalogAdapter) CountByCategory(ctx context.Context, category string) (int, error) {
	cacheKey := categoryCountCacheKey(category)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var count int
		if err := json.Unmarshal(cached, &count); err == nil {
			return count, nil
		}
	}

	count, err := a.adapter.CountByCategory(ctx, category)
	if err != nil {
		return 0, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(count); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, categoryCountTTL); err != nil {
				log.Printf("Failed to cache count for %s: %v", category, err)
			}
		}
	}()

	return count, nil
}

// FilterByConstraints returns products matching the constraint set
func (a *CachedCatalogAdapter) FilterByConstraints(ctx context.Context, constraints entities.ConstraintSet, limit int) ([]*entities.Product, error) {
	return a.adapter.FilterByConstraints(ctx, constraints, limit)
}

// FilterBySpec returns products whose named spec satisfies the operator
func (a *CachedCatalogAdapter) FilterBySpec(ctx context.Context, filter entities.SpecFilter, category string, limit int) ([]*entities.Product, error) {
	return a.adapter.FilterBySpec(ctx, filter, category, limit)
}

func (a *CachedCatalogAdapter) cachedNames(ctx context.Context, cacheKey string, fetch func(context.Context) ([]string, error)) ([]string, error) {
	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var names []string
		if err := json.Unmarshal(cached, &names); err == nil {
			return names, nil
		}
	}

	names, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(names); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, catalogNamesTTL); err != nil {
				log.Printf("Failed to cache %s: %v", cacheKey, err)
			}
		}
	}()

	return names, nil
}
