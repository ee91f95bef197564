package extraction

import (
	"context"
	"regexp"
	"strings"

	"github.com/adityakhanna/shopwise/internal/domain/providers"
)

// RuleExtractor extracts product names from comparison phrasing without any
// model call. It peels off the comparison framing and splits the remainder
// on the separators people actually use.
type RuleExtractor struct{}

// Ensure RuleExtractor implements EntityExtractor
var _ providers.EntityExtractor = (*RuleExtractor)(nil)

// NewRuleExtractor creates a new rule-based extractor
func NewRuleExtractor() *RuleExtractor {
	return &RuleExtractor{}
}

var leadingPhrases = []string{
	"compare the", "compare",
	"what is the difference between", "what's the difference between",
	"difference between",
	"which is better", "which one is better", "which is the better",
}

var trailingPhrases = []string{
	"which is better", "which one is better", "which should i buy",
	"what do you recommend",
}

var separatorPattern = regexp.MustCompile(`(?i)\s+(?:vs\.?|versus|and|or|with|to)\s+|,`)

// ExtractProductNames splits a comparison query into candidate product names
func (e *RuleExtractor) ExtractProductNames(ctx context.Context, query string) ([]string, error) {
	text := strings.TrimSpace(query)
	text = strings.Trim(text, "?!.")

	lower := strings.ToLower(text)
	for _, phrase := range leadingPhrases {
		if strings.HasPrefix(lower, phrase) {
			text = strings.TrimSpace(text[len(phrase):])
			lower = strings.ToLower(text)
			break
		}
	}
	for _, phrase := range trailingPhrases {
		if strings.HasSuffix(lower, phrase) {
			text = strings.TrimSpace(text[:len(text)-len(phrase)])
			text = strings.TrimRight(text, ",?!. ")
			lower = strings.ToLower(text)
			break
		}
	}

	parts := separatorPattern.Split(text, -1)

	names := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(strings.Trim(part, "?!.,"))
		if name == "" {
			continue
		}
		names = append(names, name)
	}

	return names, nil
}
