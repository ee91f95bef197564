package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/adityakhanna/shopwise/internal/domain/entities"
	"github.com/adityakhanna/shopwise/internal/domain/repositories"
	"github.com/adityakhanna/shopwise/internal/infrastructure/clients/postgres"
	apperrors "github.com/adityakhanna/shopwise/pkg/errors"
)

var productColumns = []interface{}{
	"id", "name", "brand", "category", "price", "specs", "tags",
	"is_active", "created_at", "updated_at",
}

// CatalogAdapter implements CatalogRepository on PostgreSQL
type CatalogAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCatalogAdapter creates a new catalog adapter
func NewCatalogAdapter(client *postgres.Client) repositories.CatalogRepository {
	return &CatalogAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create stores a product together with its specs and reviews
func (a *CatalogAdapter) Create(ctx context.Context, product *entities.Product) error {
	specs, err := json.Marshal(product.Specs)
	if err != nil {
		return apperrors.NewInternalError("failed to encode product specs", err)
	}

	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	record := goqu.Record{
		"id":         product.ID,
		"name":       product.Name,
		"brand":      product.Brand,
		"category":   product.Category,
		"price":      product.Price,
		"specs":      specs,
		"tags":       pq.Array(product.Tags),
		"is_active":  product.IsActive,
		"created_at": product.CreatedAt,
		"updated_at": product.UpdatedAt,
	}

	query, args, err := a.db.Insert("products").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create product", err)
	}

	for _, review := range product.Reviews {
		reviewRecord := goqu.Record{
			"id":         uuid.NewString(),
			"product_id": product.ID,
			"rating":     review.Rating,
			"text":       review.Text,
			"created_at": now,
		}

		query, args, err := a.db.Insert("reviews").Rows(reviewRecord).ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build review insert query", err)
		}
		if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewInternalError("failed to create review", err)
		}
	}

	return nil
}

// FindByID retrieves a product by ID with reviews attached
func (a *CatalogAdapter) FindByID(ctx context.Context, id string) (*entities.Product, error) {
	products, err := a.selectProducts(ctx, goqu.Ex{"id": id, "is_active": true}, "", 1)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with id %s not found", id))
	}
	return products[0], nil
}

// ListAll returns every active product with reviews attached
func (a *CatalogAdapter) ListAll(ctx context.Context) ([]*entities.Product, error) {
	return a.selectProducts(ctx, goqu.Ex{"is_active": true}, "name", 0)
}

// FindByBrand returns products of a brand
func (a *CatalogAdapter) FindByBrand(ctx context.Context, brand string, limit int) ([]*entities.Product, error) {
	return a.selectProducts(ctx, goqu.Ex{"brand": brand, "is_active": true}, "name", limit)
}

// FindByCategory returns products in a category
func (a *CatalogAdapter) FindByCategory(ctx context.Context, category string, limit int) ([]*entities.Product, error) {
	return a.selectProducts(ctx, goqu.Ex{"category": category, "is_active": true}, "name", limit)
}

// FindByBrandAndCategory returns products matching both brand and category
func (a *CatalogAdapter) FindByBrandAndCategory(ctx context.Context, brand, category string, limit int) ([]*entities.Product, error) {
	return a.selectProducts(ctx, goqu.Ex{"brand": brand, "category": category, "is_active": true}, "name", limit)
}

// SearchByName performs a case-insensitive substring search over product names
func (a *CatalogAdapter) SearchByName(ctx context.Context, term string, limit int) ([]*entities.Product, error) {
	pattern := "%" + strings.TrimSpace(term) + "%"
	return a.selectProducts(ctx, goqu.Ex{
		"name":      goqu.Op{"iLike": pattern},
		"is_active": true,
	}, "name", limit)
}

// ListBrands returns all brand names sorted ascending
func (a *CatalogAdapter) ListBrands(ctx context.Context) ([]string, error) {
	return a.selectDistinct(ctx, "brand", goqu.Ex{"is_active": true})
}

// ListCategories returns all category names sorted ascending
func (a *CatalogAdapter) ListCategories(ctx context.Context) ([]string, error) {
	return a.selectDistinct(ctx, "category", goqu.Ex{"is_active": true})
}

// BrandsInCategory returns the distinct brands with products in a category
func (a *CatalogAdapter) BrandsInCategory(ctx context.Context, category string) ([]string, error) {
	return a.selectDistinct(ctx, "brand", goqu.Ex{"category": category, "is_active": true})
}

// CountByCategory returns the number of products in a category
func (a *CatalogAdapter) CountByCategory(ctx context.Context, category string) (int, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("products").
		Where(goqu.Ex{"category": category, "is_active": true}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count products", err)
	}
	return count, nil
}

// FilterByConstraints returns products matching the constraint set, sorted by
// price ascending. Spec filters run over the decoded specs after the fetch
// because spec values are free text.
func (a *CatalogAdapter) FilterByConstraints(ctx context.Context, constraints entities.ConstraintSet, limit int) ([]*entities.Product, error) {
	where := []goqu.Expression{goqu.Ex{"is_active": true}}

	if constraints.MinPrice > 0 {
		where = append(where, goqu.C("price").Gte(constraints.MinPrice))
	}
	if !math.IsInf(constraints.MaxPrice, 1) {
		where = append(where, goqu.C("price").Lte(constraints.MaxPrice))
	}
	if constraints.Brand != "" {
		where = append(where, goqu.C("brand").Eq(constraints.Brand))
	}
	if constraints.Category != "" {
		where = append(where, goqu.C("category").Eq(constraints.Category))
	}

	fetchLimit := limit
	if len(constraints.SpecFilters) > 0 {
		fetchLimit = 0
	}

	products, err := a.selectProductsWhere(ctx, where, "price", fetchLimit)
	if err != nil {
		return nil, err
	}

	if len(constraints.SpecFilters) > 0 {
		products = filterBySpecs(products, constraints.SpecFilters)
		if limit > 0 && len(products) > limit {
			products = products[:limit]
		}
	}

	return products, nil
}

// FilterBySpec returns products whose named spec satisfies the operator,
// sorted by price ascending
func (a *CatalogAdapter) FilterBySpec(ctx context.Context, filter entities.SpecFilter, category string, limit int) ([]*entities.Product, error) {
	where := []goqu.Expression{goqu.Ex{"is_active": true}}
	if category != "" {
		where = append(where, goqu.C("category").Eq(category))
	}

	products, err := a.selectProductsWhere(ctx, where, "price", 0)
	if err != nil {
		return nil, err
	}

	products = filterBySpecs(products, []entities.SpecFilter{filter})
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

func filterBySpecs(products []*entities.Product, filters []entities.SpecFilter) []*entities.Product {
	matched := make([]*entities.Product, 0, len(products))
	for _, product := range products {
		ok := true
		for _, filter := range filters {
			value, present := product.Specs[filter.Name]
			if !present || !filter.Matches(value) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, product)
		}
	}
	return matched
}

func (a *CatalogAdapter) selectProducts(ctx context.Context, ex goqu.Ex, orderBy string, limit int) ([]*entities.Product, error) {
	return a.selectProductsWhere(ctx, []goqu.Expression{ex}, orderBy, limit)
}

func (a *CatalogAdapter) selectProductsWhere(ctx context.Context, where []goqu.Expression, orderBy string, limit int) ([]*entities.Product, error) {
	ds := a.db.Select(productColumns...).From("products").Where(where...)
	if orderBy != "" {
		ds = ds.Order(goqu.C(orderBy).Asc())
	}
	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query products", err)
	}
	defer rows.Close()

	var products []*entities.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read product rows", err)
	}

	if err := a.attachReviews(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

func scanProduct(rows *sql.Rows) (*entities.Product, error) {
	product := &entities.Product{}
	var specs []byte

	err := rows.Scan(
		&product.ID,
		&product.Name,
		&product.Brand,
		&product.Category,
		&product.Price,
		&specs,
		pq.Array(&product.Tags),
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to scan product", err)
	}

	if len(specs) > 0 {
		if err := json.Unmarshal(specs, &product.Specs); err != nil {
			return nil, apperrors.NewInternalError("failed to decode product specs", err)
		}
	}

	return product, nil
}

func (a *CatalogAdapter) attachReviews(ctx context.Context, products []*entities.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]string, 0, len(products))
	byID := make(map[string]*entities.Product, len(products))
	for _, product := range products {
		ids = append(ids, product.ID)
		byID[product.ID] = product
	}

	query, args, err := a.db.Select("product_id", "rating", "text").
		From("reviews").
		Where(goqu.Ex{"product_id": ids}).
		Order(goqu.C("created_at").Asc()).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build reviews query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to query reviews", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID string
		var review entities.Review
		if err := rows.Scan(&productID, &review.Rating, &review.Text); err != nil {
			return apperrors.NewInternalError("failed to scan review", err)
		}
		if product, ok := byID[productID]; ok {
			product.Reviews = append(product.Reviews, review)
		}
	}
	return rows.Err()
}

func (a *CatalogAdapter) selectDistinct(ctx context.Context, column string, ex goqu.Ex) ([]string, error) {
	query, args, err := a.db.Select(column).
		Distinct().
		From("products").
		Where(ex).
		Order(goqu.C(column).Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build distinct query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query distinct values", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, apperrors.NewInternalError("failed to scan value", err)
		}
		values = append(values, value)
	}
	return values, rows.Err()
}
