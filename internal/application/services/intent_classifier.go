package services

import (
	"regexp"
	"strings"

	"github.com/adityakhanna/shopwise/internal/domain/entities"
)

// IntentClassifier resolves a raw query into exactly one intent by evaluating
// an ordered rule list, first match wins. The order is a contract: "compare
// cheap phones" must be a comparison, not a filtered search, so comparison
// outranks everything else.
type IntentClassifier struct {
	rules []intentRule
}

type intentRule struct {
	name  string
	apply func(query string, intent *entities.Intent) bool
}

var comparisonKeywords = []string{"compare", "versus", "difference between", "which is better"}

// Short tokens need word boundaries so "for" and "divs" do not trip them
var comparisonTokenPattern = regexp.MustCompile(`\b(?:vs|or)\b`)

var countingKeywords = []string{"how many", "count", "number of", "total"}

var specKeywords = []string{"ram", "storage", "display", "screen", "battery", "camera", "processor", "gb", "tb", "inch"}

var specOperators = []string{">", "<", "more than", "less than", "at least", "above", "below", "minimum", "maximum"}

var priceKeywords = []string{"under", "below", "budget", "cheap", "affordable", "price", "within", "₹", "between", "around"}

var reviewKeywords = []string{
	"review", "rating", "good", "best", "quality", "recommend", "opinion",
	"think", "say", "customers", "feedback", "worth", "reliable", "durable",
}

// NewIntentClassifier creates the classifier with its fixed rule order
func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{
		rules: []intentRule{
			{name: "comparison", apply: matchComparison},
			{name: "counting", apply: matchCounting},
			{name: "spec_search", apply: matchSpecSearch},
			{name: "filtered_or_review", apply: matchFilteredOrReview},
		},
	}
}

// Classify resolves the query to an intent. Classification is total: a query
// matching no rule comes back as general.
func (c *IntentClassifier) Classify(query string) entities.Intent {
	lower := strings.ToLower(query)

	intent := entities.Intent{Type: entities.IntentGeneral}
	for _, rule := range c.rules {
		if rule.apply(lower, &intent) {
			return intent
		}
	}
	return intent
}

func matchComparison(query string, intent *entities.Intent) bool {
	matched := containsAny(query, comparisonKeywords) || comparisonTokenPattern.MatchString(query)
	if !matched {
		return false
	}
	intent.Type = entities.IntentComparison
	intent.NeedsComparison = true
	return true
}

func matchCounting(query string, intent *entities.Intent) bool {
	if !containsAny(query, countingKeywords) {
		return false
	}
	intent.Type = entities.IntentCounting
	return true
}

func matchSpecSearch(query string, intent *entities.Intent) bool {
	if !containsAny(query, specKeywords) || !containsAny(query, specOperators) {
		return false
	}
	intent.Type = entities.IntentSpecSearch
	return true
}

// matchFilteredOrReview sets the filtering and review flags independently;
// both present means a complex search (filter first, then reviews).
func matchFilteredOrReview(query string, intent *entities.Intent) bool {
	if containsAny(query, priceKeywords) {
		intent.NeedsFiltering = true
		intent.Type = entities.IntentFilteredSearch
	}

	if containsAny(query, reviewKeywords) {
		intent.NeedsReviews = true
		if intent.Type == entities.IntentFilteredSearch {
			intent.Type = entities.IntentComplexSearch
		} else {
			intent.Type = entities.IntentReviewSearch
		}
	}

	return intent.Type != entities.IntentGeneral
}

func containsAny(query string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(query, keyword) {
			return true
		}
	}
	return false
}
