package search

import (
	"context"
	"fmt"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/adityakhanna/shopwise/internal/domain/entities"
	"github.com/adityakhanna/shopwise/internal/domain/repositories"
	tsclient "github.com/adityakhanna/shopwise/internal/infrastructure/clients/typesense"
)

const collectionName = "reviews"

// TypesenseReviewAdapter implements semantic review search using Typesense
type TypesenseReviewAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseReviewAdapter implements ReviewSearchRepository
var _ repositories.ReviewSearchRepository = (*TypesenseReviewAdapter)(nil)

// NewTypesenseReviewAdapter creates a new Typesense review adapter
func NewTypesenseReviewAdapter(client *tsclient.Client) *TypesenseReviewAdapter {
	return &TypesenseReviewAdapter{client: client}
}

// Index upserts a product's reviews into the index
func (a *TypesenseReviewAdapter) Index(ctx context.Context, product *entities.Product) error {
	for i, review := range product.Reviews {
		document := map[string]interface{}{
			"id":           fmt.Sprintf("%s-%d", product.ID, i),
			"product_id":   product.ID,
			"product_name": product.Name,
			"text":         review.Text,
			"rating":       review.Rating,
			"created_at":   time.Now().Unix(),
		}

		_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
		if err != nil {
			return fmt.Errorf("failed to index review for product %s: %w", product.ID, err)
		}
	}

	return nil
}

// SemanticSearch returns the topK review hits most similar to the text.
// Scores are normalized to [0, 1] relative to the best match.
func (a *TypesenseReviewAdapter) SemanticSearch(ctx context.Context, text string, topK int) ([]repositories.ReviewHit, error) {
	if topK <= 0 {
		topK = 10
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(text),
		QueryBy: pointer.String("text,product_name"),
		PerPage: pointer.Int(topK),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search reviews: %w", err)
	}

	if result.Hits == nil {
		return []repositories.ReviewHit{}, nil
	}

	var maxMatch int64
	for _, hit := range *result.Hits {
		if hit.TextMatch != nil && *hit.TextMatch > maxMatch {
			maxMatch = *hit.TextMatch
		}
	}

	hits := make([]repositories.ReviewHit, 0, len(*result.Hits))
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document

		reviewHit := repositories.ReviewHit{}
		if val, ok := doc["product_id"].(string); ok {
			reviewHit.ProductID = val
		}
		if val, ok := doc["text"].(string); ok {
			reviewHit.Text = val
		}
		if val, ok := doc["rating"].(float64); ok {
			reviewHit.Rating = val
		}

		switch {
		case hit.VectorDistance != nil:
			reviewHit.SimilarityScore = 1 - float64(*hit.VectorDistance)
		case hit.TextMatch != nil && maxMatch > 0:
			reviewHit.SimilarityScore = float64(*hit.TextMatch) / float64(maxMatch)
		}

		hits = append(hits, reviewHit)
	}

	return hits, nil
}

// ReviewsForProduct returns all indexed reviews of a product
func (a *TypesenseReviewAdapter) ReviewsForProduct(ctx context.Context, productID string) ([]entities.Review, error) {
	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String("*"),
		QueryBy:  pointer.String("text"),
		FilterBy: pointer.String(fmt.Sprintf("product_id:=%s", productID)),
		PerPage:  pointer.Int(250),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews for product %s: %w", productID, err)
	}

	reviews := []entities.Review{}
	if result.Hits == nil {
		return reviews, nil
	}

	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document

		review := entities.Review{}
		if val, ok := doc["text"].(string); ok {
			review.Text = val
		}
		if val, ok := doc["rating"].(float64); ok {
			review.Rating = val
		}
		reviews = append(reviews, review)
	}

	return reviews, nil
}

// SentimentSummary aggregates ratings for a product
func (a *TypesenseReviewAdapter) SentimentSummary(ctx context.Context, productID string) (entities.SentimentSummary, error) {
	reviews, err := a.ReviewsForProduct(ctx, productID)
	if err != nil {
		return entities.SentimentSummary{}, err
	}
	return entities.SummarizeReviews(productID, reviews), nil
}
