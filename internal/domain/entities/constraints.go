package entities

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// SpecOperator is the comparison operator of a spec filter
type SpecOperator string

// Spec filter operators
const (
	OpGreater      SpecOperator = ">"
	OpLess         SpecOperator = "<"
	OpGreaterEqual SpecOperator = ">="
	OpLessEqual    SpecOperator = "<="
	OpEqual        SpecOperator = "="
	OpContains     SpecOperator = "contains"
)

// SpecFilter is a single constraint on an open-ended spec field
type SpecFilter struct {
	Name     string       `json:"name"`
	Operator SpecOperator `json:"operator"`
	Value    string       `json:"value"`
}

// Matches reports whether a raw spec value satisfies the filter. Numeric
// operators compare against the first number embedded in the value, so
// "8GB LPDDR5" matches ram >= 8.
func (f SpecFilter) Matches(value string) bool {
	switch f.Operator {
	case OpContains:
		return strings.Contains(strings.ToLower(value), strings.ToLower(f.Value))
	case OpEqual:
		if strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(f.Value)) {
			return true
		}
	}

	have, haveOK := firstNumber(value)
	want, wantOK := firstNumber(f.Value)
	if !haveOK || !wantOK {
		return false
	}

	switch f.Operator {
	case OpGreater:
		return have > want
	case OpLess:
		return have < want
	case OpGreaterEqual:
		return have >= want
	case OpLessEqual:
		return have <= want
	case OpEqual:
		return have == want
	default:
		return false
	}
}

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

func firstNumber(s string) (float64, bool) {
	match := numberPattern.FindString(s)
	if match == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ConstraintSet is the normalized filter bundle extracted from free text
type ConstraintSet struct {
	MinPrice    float64      `json:"min_price"`
	MaxPrice    float64      `json:"max_price"`
	Brand       string       `json:"brand,omitempty"`
	Category    string       `json:"category,omitempty"`
	SpecFilters []SpecFilter `json:"spec_filters,omitempty"`
}

// NewConstraintSet returns a constraint set with an unbounded price range
func NewConstraintSet() ConstraintSet {
	return ConstraintSet{MinPrice: 0, MaxPrice: math.Inf(1)}
}

// HasPriceBound reports whether either price bound was narrowed from the default
func (c ConstraintSet) HasPriceBound() bool {
	return c.MinPrice > 0 || !math.IsInf(c.MaxPrice, 1)
}

// PriceRangeString renders the price bounds for user-facing messages
func (c ConstraintSet) PriceRangeString() string {
	if math.IsInf(c.MaxPrice, 1) {
		return fmt.Sprintf("above ₹%.0f", c.MinPrice)
	}
	return fmt.Sprintf("₹%.0f - ₹%.0f", c.MinPrice, c.MaxPrice)
}
