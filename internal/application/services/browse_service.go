package services

import (
	"context"
	"sort"

	"github.com/adityakhanna/shopwise/internal/domain/entities"
	"github.com/adityakhanna/shopwise/internal/domain/repositories"
)

// BrowseService backs the catalog browse endpoints: straight listings that
// need no query understanding.
type BrowseService struct {
	catalog repositories.CatalogRepository
}

// NewBrowseService creates a new browse service
func NewBrowseService(catalog repositories.CatalogRepository) *BrowseService {
	return &BrowseService{catalog: catalog}
}

// Brands returns all brand names
func (s *BrowseService) Brands(ctx context.Context) ([]string, error) {
	return s.catalog.ListBrands(ctx)
}

// Categories returns all category names
func (s *BrowseService) Categories(ctx context.Context) ([]string, error) {
	return s.catalog.ListCategories(ctx)
}

// ProductsByCategory returns products in a category
func (s *BrowseService) ProductsByCategory(ctx context.Context, category string, limit int) ([]*entities.Product, error) {
	if limit <= 0 {
		limit = catalogResultLimit
	}
	return s.catalog.FindByCategory(ctx, category, limit)
}

// Product returns one product with specs and reviews
func (s *BrowseService) Product(ctx context.Context, id string) (*entities.Product, error) {
	return s.catalog.FindByID(ctx, id)
}

// RatedProduct pairs a product with its sentiment summary
type RatedProduct struct {
	Product   *entities.Product         `json:"product"`
	Sentiment entities.SentimentSummary `json:"sentiment"`
}

// TopRated returns the highest-rated products with at least minReviews
// reviews, best first
func (s *BrowseService) TopRated(ctx context.Context, minReviews, limit int) ([]RatedProduct, error) {
	if minReviews <= 0 {
		minReviews = 1
	}
	if limit <= 0 {
		limit = 10
	}

	products, err := s.catalog.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var rated []RatedProduct
	for _, product := range products {
		sentiment := entities.SummarizeReviews(product.ID, product.Reviews)
		if sentiment.ReviewCount < minReviews {
			continue
		}
		rated = append(rated, RatedProduct{Product: product, Sentiment: sentiment})
	}

	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].Sentiment.AverageRating > rated[j].Sentiment.AverageRating
	})

	if len(rated) > limit {
		rated = rated[:limit]
	}
	return rated, nil
}
