package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/adityakhanna/shopwise/internal/domain/entities"
	"github.com/adityakhanna/shopwise/internal/domain/repositories"
)

// stubCatalog is an in-memory CatalogRepository for specialist tests
type stubCatalog struct {
	products []*entities.Product
}

func newStubCatalog(products ...*entities.Product) *stubCatalog {
	return &stubCatalog{products: products}
}

func (s *stubCatalog) Create(ctx context.Context, product *entities.Product) error {
	s.products = append(s.products, product)
	return nil
}

func (s *stubCatalog) FindByID(ctx context.Context, id string) (*entities.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("product %s not found", id)
}

func (s *stubCatalog) ListAll(ctx context.Context) ([]*entities.Product, error) {
	return s.products, nil
}

func (s *stubCatalog) FindByBrand(ctx context.Context, brand string, limit int) ([]*entities.Product, error) {
	return s.filter(func(p *entities.Product) bool { return p.Brand == brand }, limit), nil
}

func (s *stubCatalog) FindByCategory(ctx context.Context, category string, limit int) ([]*entities.Product, error) {
	return s.filter(func(p *entities.Product) bool { return p.Category == category }, limit), nil
}

func (s *stubCatalog) FindByBrandAndCategory(ctx context.Context, brand, category string, limit int) ([]*entities.Product, error) {
	return s.filter(func(p *entities.Product) bool {
		return p.Brand == brand && p.Category == category
	}, limit), nil
}

func (s *stubCatalog) SearchByName(ctx context.Context, term string, limit int) ([]*entities.Product, error) {
	lower := strings.ToLower(term)
	return s.filter(func(p *entities.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), lower)
	}, limit), nil
}

func (s *stubCatalog) ListBrands(ctx context.Context) ([]string, error) {
	return s.distinct(func(p *entities.Product) string { return p.Brand }), nil
}

func (s *stubCatalog) ListCategories(ctx context.Context) ([]string, error) {
	return s.distinct(func(p *entities.Product) string { return p.Category }), nil
}

func (s *stubCatalog) BrandsInCategory(ctx context.Context, category string) ([]string, error) {
	seen := map[string]struct{}{}
	var brands []string
	for _, p := range s.products {
		if p.Category != category {
			continue
		}
		if _, ok := seen[p.Brand]; !ok {
			seen[p.Brand] = struct{}{}
			brands = append(brands, p.Brand)
		}
	}
	sort.Strings(brands)
	return brands, nil
}

func (s *stubCatalog) CountByCategory(ctx context.Context, category string) (int, error) {
	count := 0
	for _, p := range s.products {
		if p.Category == category {
			count++
		}
	}
	return count, nil
}

func (s *stubCatalog) FilterByConstraints(ctx context.Context, constraints entities.ConstraintSet, limit int) ([]*entities.Product, error) {
	matched := s.filter(func(p *entities.Product) bool {
		if p.Price < constraints.MinPrice {
			return false
		}
		if !math.IsInf(constraints.MaxPrice, 1) && p.Price > constraints.MaxPrice {
			return false
		}
		if constraints.Brand != "" && p.Brand != constraints.Brand {
			return false
		}
		if constraints.Category != "" && p.Category != constraints.Category {
			return false
		}
		for _, f := range constraints.SpecFilters {
			value, ok := p.Specs[f.Name]
			if !ok || !f.Matches(value) {
				return false
			}
		}
		return true
	}, 0)

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *stubCatalog) FilterBySpec(ctx context.Context, filter entities.SpecFilter, category string, limit int) ([]*entities.Product, error) {
	matched := s.filter(func(p *entities.Product) bool {
		if category != "" && p.Category != category {
			return false
		}
		value, ok := p.Specs[filter.Name]
		return ok && filter.Matches(value)
	}, 0)

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *stubCatalog) filter(keep func(*entities.Product) bool, limit int) []*entities.Product {
	var out []*entities.Product
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func (s *stubCatalog) distinct(key func(*entities.Product) string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range s.products {
		k := key(p)
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// stubReviewIndex is an in-memory ReviewSearchRepository
type stubReviewIndex struct {
	hits []repositories.ReviewHit
}

func (s *stubReviewIndex) SemanticSearch(ctx context.Context, text string, topK int) ([]repositories.ReviewHit, error) {
	hits := s.hits
	if topK > 0 && len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

func (s *stubReviewIndex) ReviewsForProduct(ctx context.Context, productID string) ([]entities.Review, error) {
	var reviews []entities.Review
	for _, hit := range s.hits {
		if hit.ProductID == productID {
			reviews = append(reviews, entities.Review{Rating: hit.Rating, Text: hit.Text})
		}
	}
	return reviews, nil
}

func (s *stubReviewIndex) SentimentSummary(ctx context.Context, productID string) (entities.SentimentSummary, error) {
	reviews, _ := s.ReviewsForProduct(ctx, productID)
	return entities.SummarizeReviews(productID, reviews), nil
}

func (s *stubReviewIndex) Index(ctx context.Context, product *entities.Product) error {
	for _, r := range product.Reviews {
		s.hits = append(s.hits, repositories.ReviewHit{ProductID: product.ID, Text: r.Text, Rating: r.Rating, SimilarityScore: 1})
	}
	return nil
}

// stubExtractor returns fixed names or an error
type stubExtractor struct {
	names []string
	err   error
}

func (s *stubExtractor) ExtractProductNames(ctx context.Context, query string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.names, nil
}

// demoProduct builds a product with reviews for tests
func demoProduct(id, name, brand, category string, price float64, ratings ...float64) *entities.Product {
	p := &entities.Product{
		ID:       id,
		Name:     name,
		Brand:    brand,
		Category: category,
		Price:    price,
		Specs:    map[string]string{},
		IsActive: true,
	}
	for i, r := range ratings {
		p.Reviews = append(p.Reviews, entities.Review{
			Rating: r,
			Text:   fmt.Sprintf("Review %d of %s", i+1, name),
		})
	}
	return p
}
