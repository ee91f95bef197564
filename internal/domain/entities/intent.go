package entities

// IntentType identifies the primary class of a user query
type IntentType string

// Intent type constants, one per routing plan
const (
	IntentComparison     IntentType = "comparison"
	IntentCounting       IntentType = "counting"
	IntentSpecSearch     IntentType = "spec_search"
	IntentReviewSearch   IntentType = "review_search"
	IntentFilteredSearch IntentType = "filtered_search"
	IntentComplexSearch  IntentType = "complex_search"
	IntentGeneral        IntentType = "general"
)

// Intent is the result of classifying a query. Exactly one Type is set per
// query; the boolean flags are derived from keyword hits independently of the
// type and serve as hints to downstream specialists.
type Intent struct {
	Type            IntentType `json:"type"`
	NeedsFiltering  bool       `json:"needs_filtering"`
	NeedsReviews    bool       `json:"needs_reviews"`
	NeedsComparison bool       `json:"needs_comparison"`
}
