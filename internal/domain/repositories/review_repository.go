package repositories

import (
	"context"

	"github.com/adityakhanna/shopwise/internal/domain/entities"
)

// ReviewHit is a single semantic-search match over review text
type ReviewHit struct {
	ProductID       string  `json:"product_id"`
	Text            string  `json:"text"`
	Rating          float64 `json:"rating"`
	SimilarityScore float64 `json:"similarity_score"`
}

// ReviewSearchRepository is the port onto the semantic review index
type ReviewSearchRepository interface {
	// SemanticSearch returns the topK review hits most similar to the text
	SemanticSearch(ctx context.Context, text string, topK int) ([]ReviewHit, error)

	// ReviewsForProduct returns all indexed reviews of a product
	ReviewsForProduct(ctx context.Context, productID string) ([]entities.Review, error)

	// SentimentSummary aggregates ratings for a product
	SentimentSummary(ctx context.Context, productID string) (entities.SentimentSummary, error)

	// Index upserts a product's reviews into the index
	Index(ctx context.Context, product *entities.Product) error
}
