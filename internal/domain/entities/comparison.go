package entities

// ComparedProduct is a product enriched with review sentiment for comparison
type ComparedProduct struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Brand         string            `json:"brand"`
	Category      string            `json:"category"`
	Price         float64           `json:"price"`
	ReviewCount   int               `json:"review_count"`
	AverageRating float64           `json:"average_rating"`
	Specs         map[string]string `json:"specs,omitempty"`
	Score         float64           `json:"score"`
}

// Comparison is a side-by-side analysis of 2 to 5 products. SpecComparison
// only carries spec keys present on every compared product.
type Comparison struct {
	Products       []ComparedProduct            `json:"products"`
	PriceWinner    string                       `json:"price_winner"`
	RatingWinner   string                       `json:"rating_winner"`
	SpecComparison map[string]map[string]string `json:"spec_comparison,omitempty"`
}

// Weights are the scoring weights for a recommendation
type Weights struct {
	Price  float64 `json:"price"`
	Rating float64 `json:"rating"`
}

// BalancedWeights is the default weighting when the query expresses no preference
func BalancedWeights() Weights { return Weights{Price: 0.5, Rating: 0.5} }

// BudgetWeights favors cheaper products
func BudgetWeights() Weights { return Weights{Price: 0.7, Rating: 0.3} }

// QualityWeights favors higher-rated products
func QualityWeights() Weights { return Weights{Price: 0.3, Rating: 0.7} }

// Recommendation is the weighted-score pick out of a comparison
type Recommendation struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Score       float64 `json:"score"`
	Reason      string  `json:"reason"`
	Weights     Weights `json:"weights"`
}
