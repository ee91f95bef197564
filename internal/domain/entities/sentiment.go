package entities

// SentimentSummary aggregates the review ratings of a single product
type SentimentSummary struct {
	ProductID     string  `json:"product_id"`
	ReviewCount   int     `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
	MinRating     float64 `json:"min_rating,omitempty"`
	MaxRating     float64 `json:"max_rating,omitempty"`
	Positive      int     `json:"positive"`
	Neutral       int     `json:"neutral"`
	Negative      int     `json:"negative"`
}

// SummarizeReviews computes a sentiment summary from raw reviews. Products
// with no reviews get a zero summary and should not win "best" rankings.
func SummarizeReviews(productID string, reviews []Review) SentimentSummary {
	summary := SentimentSummary{ProductID: productID}
	if len(reviews) == 0 {
		return summary
	}

	summary.ReviewCount = len(reviews)
	summary.MinRating = reviews[0].Rating
	summary.MaxRating = reviews[0].Rating

	var sum float64
	for _, r := range reviews {
		sum += r.Rating
		if r.Rating < summary.MinRating {
			summary.MinRating = r.Rating
		}
		if r.Rating > summary.MaxRating {
			summary.MaxRating = r.Rating
		}
		switch {
		case r.Rating >= 4:
			summary.Positive++
		case r.Rating <= 2:
			summary.Negative++
		default:
			summary.Neutral++
		}
	}
	summary.AverageRating = sum / float64(len(reviews))

	return summary
}
