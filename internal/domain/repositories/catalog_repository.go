package repositories

import (
	"context"

	"github.com/adityakhanna/shopwise/internal/domain/entities"
)

// CatalogRepository is the port onto the product catalog store. Any
// conforming backend is substitutable; the core never assumes a storage
// technology behind it.
type CatalogRepository interface {
	// Create stores a product together with its specs and reviews
	Create(ctx context.Context, product *entities.Product) error

	// FindByID returns the full product detail including specs and reviews
	FindByID(ctx context.Context, id string) (*entities.Product, error)

	// ListAll returns every active product with reviews attached
	ListAll(ctx context.Context) ([]*entities.Product, error)

	// FindByBrand returns products of a brand
	FindByBrand(ctx context.Context, brand string, limit int) ([]*entities.Product, error)

	// FindByCategory returns products in a category
	FindByCategory(ctx context.Context, category string, limit int) ([]*entities.Product, error)

	// FindByBrandAndCategory returns products matching both brand and category
	FindByBrandAndCategory(ctx context.Context, brand, category string, limit int) ([]*entities.Product, error)

	// SearchByName performs a case-insensitive substring search over product
	// names, most relevant match first
	SearchByName(ctx context.Context, term string, limit int) ([]*entities.Product, error)

	// ListBrands returns all brand names sorted ascending
	ListBrands(ctx context.Context) ([]string, error)

	// ListCategories returns all category names sorted ascending
	ListCategories(ctx context.Context) ([]string, error)

	// BrandsInCategory returns the distinct brands with products in a category
	BrandsInCategory(ctx context.Context, category string) ([]string, error)

	// CountByCategory returns the number of products in a category
	CountByCategory(ctx context.Context, category string) (int, error)

	// FilterByConstraints returns products matching the constraint set,
	// sorted by price ascending
	FilterByConstraints(ctx context.Context, constraints entities.ConstraintSet, limit int) ([]*entities.Product, error)

	// FilterBySpec returns products whose named spec satisfies the operator,
	// sorted by price ascending. Category is optional.
	FilterBySpec(ctx context.Context, filter entities.SpecFilter, category string, limit int) ([]*entities.Product, error)
}
