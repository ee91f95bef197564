package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/adityakhanna/shopwise/internal/domain/entities"
	"github.com/adityakhanna/shopwise/internal/domain/providers"
	"github.com/adityakhanna/shopwise/internal/domain/repositories"
)

const (
	compareMinProducts = 2
	compareMaxProducts = 5
)

// CompareSpecialist resolves 2 to 5 target products out of a comparison
// query, builds a side-by-side comparison, and scores a weighted
// recommendation.
type CompareSpecialist struct {
	catalog   repositories.CatalogRepository
	extractor providers.EntityExtractor
}

// NewCompareSpecialist creates a new compare specialist
func NewCompareSpecialist(catalog repositories.CatalogRepository, extractor providers.EntityExtractor) *CompareSpecialist {
	return &CompareSpecialist{catalog: catalog, extractor: extractor}
}

var budgetKeywords = []string{"cheap", "budget", "affordable", "save money", "value"}
var premiumKeywords = []string{"best", "quality", "top", "premium", "highest rated"}

// Process runs the full comparison flow. Fewer than two resolvable products
// is a failure result, never an error; more than five are truncated.
func (s *CompareSpecialist) Process(ctx context.Context, query string, qctx *Context) (*CompareResult, error) {
	trace := []string{"Compare: analyzing comparison request"}

	productIDs := []string{}
	if qctx != nil {
		productIDs = qctx.ProductIDs
	}

	if len(productIDs) == 0 {
		trace = append(trace, "Compare: extracting product names from query")
		names, err := s.extractor.ExtractProductNames(ctx, query)
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			trace = append(trace, "Compare: could not extract products to compare")
			return &CompareResult{
				Trace:   trace,
				Success: false,
				Err:     "No products identified for comparison",
			}, nil
		}
		trace = append(trace, fmt.Sprintf("Compare: found products %s", strings.Join(names, ", ")))

		productIDs, err = s.resolveNames(ctx, names)
		if err != nil {
			return nil, err
		}
	}

	if len(productIDs) < compareMinProducts {
		trace = append(trace, "Compare: need at least 2 products to compare")
		return &CompareResult{
			Trace:   trace,
			Success: false,
			Err:     "Insufficient products for comparison",
		}, nil
	}
	if len(productIDs) > compareMaxProducts {
		trace = append(trace, "Compare: too many products, limiting to first 5")
		productIDs = productIDs[:compareMaxProducts]
	}

	trace = append(trace, fmt.Sprintf("Compare: comparing %d products", len(productIDs)))
	comparison, err := s.Compare(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	if len(comparison.Products) < compareMinProducts {
		trace = append(trace, "Compare: need at least 2 products to compare")
		return &CompareResult{
			Trace:   trace,
			Success: false,
			Err:     "Insufficient products for comparison",
		}, nil
	}

	weights := inferWeights(query, &trace)
	recommendation := Recommend(comparison, weights)
	trace = append(trace, fmt.Sprintf("Compare: recommended %s", recommendation.ProductName))

	return &CompareResult{
		Comparison:     comparison,
		Recommendation: recommendation,
		Trace:          trace,
		Success:        true,
	}, nil
}

// resolveNames maps extracted names to product IDs: exact-then-fuzzy name
// search, falling back to the individual multi-character tokens of a name
// when the full name has no match
func (s *CompareSpecialist) resolveNames(ctx context.Context, names []string) ([]string, error) {
	var ids []string
	for _, name := range names {
		matches, err := s.catalog.SearchByName(ctx, name, 5)
		if err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			ids = append(ids, matches[0].ID)
			continue
		}

		for _, token := range strings.Fields(name) {
			if len(token) <= 3 {
				continue
			}
			matches, err := s.catalog.SearchByName(ctx, token, 3)
			if err != nil {
				return nil, err
			}
			if len(matches) > 0 {
				ids = append(ids, matches[0].ID)
				break
			}
		}
	}
	return ids, nil
}

// Compare builds the side-by-side comparison. Winner ties break to the
// first-encountered product, and products with zero reviews never win the
// rating comparison.
func (s *CompareSpecialist) Compare(ctx context.Context, productIDs []string) (*entities.Comparison, error) {
	comparison := &entities.Comparison{}

	for _, id := range productIDs {
		product, err := s.catalog.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("loading product %s: %w", id, err)
		}

		sentiment := entities.SummarizeReviews(id, product.Reviews)
		comparison.Products = append(comparison.Products, entities.ComparedProduct{
			ID:            product.ID,
			Name:          product.Name,
			Brand:         product.Brand,
			Category:      product.Category,
			Price:         product.Price,
			ReviewCount:   sentiment.ReviewCount,
			AverageRating: sentiment.AverageRating,
			Specs:         product.Specs,
		})
	}

	if len(comparison.Products) == 0 {
		return comparison, nil
	}

	priceWinner := comparison.Products[0]
	var ratingWinner *entities.ComparedProduct
	for i := range comparison.Products {
		p := comparison.Products[i]
		if p.Price < priceWinner.Price {
			priceWinner = p
		}
		if p.ReviewCount > 0 && (ratingWinner == nil || p.AverageRating > ratingWinner.AverageRating) {
			ratingWinner = &comparison.Products[i]
		}
	}
	comparison.PriceWinner = priceWinner.ID
	if ratingWinner != nil {
		comparison.RatingWinner = ratingWinner.ID
	}

	comparison.SpecComparison = intersectSpecs(comparison.Products)

	return comparison, nil
}

// intersectSpecs compares only the spec keys present on every product
func intersectSpecs(products []entities.ComparedProduct) map[string]map[string]string {
	if len(products) == 0 {
		return nil
	}

	common := make(map[string]struct{})
	for key := range products[0].Specs {
		common[key] = struct{}{}
	}
	for _, p := range products[1:] {
		for key := range common {
			if _, ok := p.Specs[key]; !ok {
				delete(common, key)
			}
		}
	}

	if len(common) == 0 {
		return nil
	}

	table := make(map[string]map[string]string, len(common))
	for key := range common {
		row := make(map[string]string, len(products))
		for _, p := range products {
			row[p.Name] = p.Specs[key]
		}
		table[key] = row
	}
	return table
}

// inferWeights picks scoring weights from budget or quality vocabulary,
// defaulting to balanced
func inferWeights(query string, trace *[]string) entities.Weights {
	lower := strings.ToLower(query)
	if containsAny(lower, budgetKeywords) {
		*trace = append(*trace, "Compare: prioritizing budget-friendly options")
		return entities.BudgetWeights()
	}
	if containsAny(lower, premiumKeywords) {
		*trace = append(*trace, "Compare: prioritizing quality and ratings")
		return entities.QualityWeights()
	}
	return entities.BalancedWeights()
}

// Recommend scores every compared product and picks the best. The price
// score rewards cheaper products, scaled across the compared price range;
// the rating score is relative to the best average rating in the group.
func Recommend(comparison *entities.Comparison, weights entities.Weights) *entities.Recommendation {
	products := comparison.Products
	if len(products) == 0 {
		return nil
	}

	minPrice := products[0].Price
	maxPrice := products[0].Price
	maxRating := 0.0
	for _, p := range products {
		minPrice = math.Min(minPrice, p.Price)
		maxPrice = math.Max(maxPrice, p.Price)
		maxRating = math.Max(maxRating, p.AverageRating)
	}
	priceRange := maxPrice - minPrice

	best := &products[0]
	for i := range products {
		p := &products[i]

		priceScore := 0.5
		if priceRange > 0 {
			priceScore = 1 - (p.Price-minPrice)/priceRange
		}

		ratingScore := 0.0
		if maxRating > 0 {
			ratingScore = p.AverageRating / maxRating
		}

		p.Score = priceScore*weights.Price + ratingScore*weights.Rating
		if p.Score > best.Score {
			best = p
		}
	}

	var reasons []string
	if best.Price == minPrice {
		reasons = append(reasons, "lowest price")
	}
	if maxRating > 0 && best.AverageRating == maxRating {
		reasons = append(reasons, "highest rating")
	}
	if best.ReviewCount > 10 {
		reasons = append(reasons, fmt.Sprintf("%d customer reviews", best.ReviewCount))
	}

	reason := "Best overall score"
	if len(reasons) > 0 {
		reason = "Best choice based on " + strings.Join(reasons, ", ")
	}

	return &entities.Recommendation{
		ProductID:   best.ID,
		ProductName: best.Name,
		Score:       best.Score,
		Reason:      reason,
		Weights:     weights,
	}
}

// FindSimilar returns products in the same category within 20% of the
// source product's price, excluding the source itself
func (s *CompareSpecialist) FindSimilar(ctx context.Context, productID string, limit int) ([]*entities.Product, error) {
	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.catalog.FindByCategory(ctx, product.Category, limit*2)
	if err != nil {
		return nil, err
	}

	tolerance := product.Price * 0.2
	var similar []*entities.Product
	for _, candidate := range candidates {
		if candidate.ID == productID {
			continue
		}
		if math.Abs(candidate.Price-product.Price) <= tolerance {
			similar = append(similar, candidate)
		}
		if len(similar) == limit {
			break
		}
	}
	return similar, nil
}
