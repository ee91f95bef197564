package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/adityakhanna/shopwise/internal/domain/entities"
	"github.com/adityakhanna/shopwise/internal/domain/repositories"
)

const (
	reviewNamedProductCap = 3
	reviewProductCap      = 5
	reviewExcerptCap      = 2
	reviewSearchTopK      = 10
	qualityMinSimilarity  = 0.6
)

// ReviewSpecialist resolves review and sentiment questions, either for named
// products or through open-ended semantic search over review text.
type ReviewSpecialist struct {
	catalog repositories.CatalogRepository
	reviews repositories.ReviewSearchRepository
}

// NewReviewSpecialist creates a new review specialist
func NewReviewSpecialist(catalog repositories.CatalogRepository, reviews repositories.ReviewSearchRepository) *ReviewSpecialist {
	return &ReviewSpecialist{catalog: catalog, reviews: reviews}
}

var namedProductPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:think about|customers say about|reviews for)\s+(.+?)(?:\?|$)`),
	regexp.MustCompile(`(?i)(?:what do customers)\s+.+?\s+(?:about|for)\s+(.+?)(?:\?|$)`),
	regexp.MustCompile(`(?i)(?:about|for|of)\s+(.+?)(?:\?|$)`),
}

var explicitReviewKeywords = []string{"review", "rated", "opinion", "think", "customers say", "feedback"}

var qualityKeywords = []string{"good", "best", "excellent", "great", "top rated", "highest rated"}

var errReviewSearchUnavailable = errors.New("review search is not configured")

// Process resolves the query through a four-case priority: named products
// (from context or phrasing), explicit review vocabulary, quality vocabulary,
// then default semantic search.
func (s *ReviewSpecialist) Process(ctx context.Context, query string, qctx *Context) (*ReviewResult, error) {
	trace := []string{"Review: analyzing query for review-based insights"}
	lower := strings.ToLower(query)

	productIDs := []string{}
	if qctx != nil {
		productIDs = qctx.ProductIDs
	}

	// Try to pin down a named product when context gave us nothing
	if len(productIDs) == 0 && containsAny(lower, []string{"about", "for", "of", "think about"}) {
		trace = append(trace, "Review: attempting to extract a product name")
		name := extractNamedProduct(query)
		if name != "" {
			trace = append(trace, fmt.Sprintf("Review: extracted product name %q", name))
			matches, err := s.catalog.SearchByName(ctx, name, reviewNamedProductCap)
			if err != nil {
				return nil, err
			}
			for _, p := range matches {
				productIDs = append(productIDs, p.ID)
			}
			if len(productIDs) == 0 {
				trace = append(trace, "Review: no name match, falling back to semantic search")
			}
		}
	}

	switch {
	// Case 1: specific products, with review excerpts
	case len(productIDs) > 0:
		trace = append(trace, fmt.Sprintf("Review: gathering reviews for %d specific products", len(productIDs)))
		items, err := s.itemsForProducts(ctx, productIDs, reviewNamedProductCap, true)
		if err != nil {
			return nil, err
		}
		return reviewResult(items, trace), nil

	// Case 2: explicit review vocabulary, semantic search with excerpts
	case containsAny(lower, explicitReviewKeywords):
		trace = append(trace, "Review: searching reviews semantically")
		items, err := s.semanticItems(ctx, query, true, &trace)
		if err != nil {
			return nil, err
		}
		return reviewResult(items, trace), nil

	// Case 3: quality vocabulary, similarity-thresholded, no excerpts
	case containsAny(lower, qualityKeywords):
		if s.reviews == nil {
			return nil, errReviewSearchUnavailable
		}
		trace = append(trace, "Review: searching for top-rated products")
		hits, err := s.reviews.SemanticSearch(ctx, query, reviewSearchTopK)
		if err != nil {
			return nil, err
		}

		var filtered []repositories.ReviewHit
		for _, hit := range hits {
			if hit.SimilarityScore >= qualityMinSimilarity {
				filtered = append(filtered, hit)
			}
		}
		ids := dedupeProductIDs(filtered)
		trace = append(trace, fmt.Sprintf("Review: found %d highly rated products", len(ids)))

		items, err := s.itemsForProducts(ctx, ids, reviewProductCap, false)
		if err != nil {
			return nil, err
		}
		return reviewResult(items, trace), nil

	// Case 4: default semantic search, no excerpts
	default:
		trace = append(trace, "Review: performing semantic review search")
		items, err := s.semanticItems(ctx, query, false, &trace)
		if err != nil {
			return nil, err
		}
		return reviewResult(items, trace), nil
	}
}

func reviewResult(items []ReviewItem, trace []string) *ReviewResult {
	trace = append(trace, fmt.Sprintf("Review: analyzed reviews for %d products", len(items)))
	return &ReviewResult{
		Items:   items,
		Trace:   trace,
		Success: len(items) > 0,
	}
}

// semanticItems runs a semantic search and builds items for the deduplicated
// products, optionally attaching the matching review excerpts
func (s *ReviewSpecialist) semanticItems(ctx context.Context, query string, withExcerpts bool, trace *[]string) ([]ReviewItem, error) {
	if s.reviews == nil {
		return nil, errReviewSearchUnavailable
	}
	hits, err := s.reviews.SemanticSearch(ctx, query, reviewSearchTopK)
	if err != nil {
		return nil, err
	}

	ids := dedupeProductIDs(hits)
	*trace = append(*trace, fmt.Sprintf("Review: found reviews from %d products", len(ids)))

	if len(ids) > reviewProductCap {
		ids = ids[:reviewProductCap]
	}

	items := make([]ReviewItem, 0, len(ids))
	for _, id := range ids {
		product, err := s.catalog.FindByID(ctx, id)
		if err != nil {
			continue
		}

		item := ReviewItem{
			Product:   product,
			Sentiment: entities.SummarizeReviews(id, product.Reviews),
		}
		if withExcerpts {
			for _, hit := range hits {
				if hit.ProductID == id {
					item.RelevantReviews = append(item.RelevantReviews, entities.Review{Rating: hit.Rating, Text: hit.Text})
					if len(item.RelevantReviews) == reviewExcerptCap {
						break
					}
				}
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// itemsForProducts builds review items for explicit product IDs. Products
// with zero reviews are skipped.
func (s *ReviewSpecialist) itemsForProducts(ctx context.Context, ids []string, max int, withExcerpts bool) ([]ReviewItem, error) {
	if len(ids) > max {
		ids = ids[:max]
	}

	items := make([]ReviewItem, 0, len(ids))
	for _, id := range ids {
		product, err := s.catalog.FindByID(ctx, id)
		if err != nil {
			continue
		}

		sentiment := entities.SummarizeReviews(id, product.Reviews)
		if sentiment.ReviewCount == 0 {
			continue
		}

		item := ReviewItem{Product: product, Sentiment: sentiment}
		if withExcerpts {
			limit := reviewExcerptCap
			if len(product.Reviews) < limit {
				limit = len(product.Reviews)
			}
			item.RelevantReviews = product.Reviews[:limit]
		}
		items = append(items, item)
	}
	return items, nil
}

// dedupeProductIDs keeps the first occurrence of each product, preserving
// the hit order
func dedupeProductIDs(hits []repositories.ReviewHit) []string {
	seen := make(map[string]struct{}, len(hits))
	var ids []string
	for _, hit := range hits {
		if _, ok := seen[hit.ProductID]; ok {
			continue
		}
		seen[hit.ProductID] = struct{}{}
		ids = append(ids, hit.ProductID)
	}
	return ids
}

// extractNamedProduct pulls a product name out of review phrasing like
// "reviews for X" or "what do customers think about X"
func extractNamedProduct(query string) string {
	for _, pattern := range namedProductPatterns {
		match := pattern.FindStringSubmatch(query)
		if match == nil {
			continue
		}
		name := strings.TrimSpace(match[1])
		if name != "" {
			return name
		}
	}
	return ""
}
