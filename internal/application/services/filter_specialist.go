package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/adityakhanna/shopwise/internal/domain/entities"
	"github.com/adityakhanna/shopwise/internal/domain/repositories"
)

const filterResultLimit = 20

// FilterSpecialist extracts numeric and categorical constraints from free
// text and runs a constrained catalog search.
type FilterSpecialist struct {
	catalog repositories.CatalogRepository
	rules   []constraintRule
}

// NewFilterSpecialist creates a new filter specialist
func NewFilterSpecialist(catalog repositories.CatalogRepository) *FilterSpecialist {
	return &FilterSpecialist{
		catalog: catalog,
		rules:   defaultConstraintRules(),
	}
}

// Process extracts constraints and returns matching products sorted by price
// ascending. An empty result is success=false with the bounds echoed in the
// constraints, never an error.
func (s *FilterSpecialist) Process(ctx context.Context, query string, qctx *Context) (*FilterResult, error) {
	trace := []string{"Filter: analyzing price and constraint requirements"}

	constraints, err := s.ExtractConstraints(ctx, query, qctx)
	if err != nil {
		return nil, err
	}
	trace = append(trace, fmt.Sprintf("Filter: identified constraints %s, brand=%q, category=%q",
		constraints.PriceRangeString(), constraints.Brand, constraints.Category))

	products, err := s.catalog.FilterByConstraints(ctx, constraints, filterResultLimit)
	if err != nil {
		return nil, err
	}
	trace = append(trace, fmt.Sprintf("Filter: found %d products matching constraints", len(products)))

	return &FilterResult{
		Products:    products,
		Constraints: constraints,
		Trace:       trace,
		Success:     len(products) > 0,
	}, nil
}

// ExtractConstraints builds a constraint set from the query. Context values
// for brand and category take precedence over anything found in the text.
func (s *FilterSpecialist) ExtractConstraints(ctx context.Context, query string, qctx *Context) (entities.ConstraintSet, error) {
	constraints := entities.NewConstraintSet()
	lower := strings.ToLower(query)

	for _, rule := range s.rules {
		rule(lower, &constraints)
	}

	if qctx != nil && qctx.Brand != "" {
		constraints.Brand = qctx.Brand
	}
	if constraints.Brand == "" {
		brands, err := s.catalog.ListBrands(ctx)
		if err != nil {
			return constraints, err
		}
		for _, brand := range brands {
			if strings.Contains(lower, strings.ToLower(brand)) {
				constraints.Brand = brand
				break
			}
		}
	}

	if qctx != nil && qctx.Category != "" {
		constraints.Category = qctx.Category
	}
	if constraints.Category == "" {
		constraints.Category = MapCategory(query)
	}

	return constraints, nil
}

// constraintRule mutates the constraint set when its pattern matches. Rules
// are independent and composable; order matters only where a later rule
// overrides an earlier one (between overrides under/above).
type constraintRule func(query string, c *entities.ConstraintSet)

func defaultConstraintRules() []constraintRule {
	under := pricePattern(`(?:under|below|less than|max(?:imum)?)`)
	above := pricePattern(`(?:above|over|more than|min(?:imum)?)`)
	between := regexp.MustCompile(`between\s*₹?\s*(\d+(?:,\d+)*)\s*(?:and|to)\s*₹?\s*(\d+(?:,\d+)*)`)
	around := pricePattern(`around`)

	return []constraintRule{
		func(q string, c *entities.ConstraintSet) {
			if m := under.FindStringSubmatch(q); m != nil {
				c.MaxPrice = parsePrice(m[1])
			}
		},
		func(q string, c *entities.ConstraintSet) {
			if m := above.FindStringSubmatch(q); m != nil {
				c.MinPrice = parsePrice(m[1])
			}
		},
		func(q string, c *entities.ConstraintSet) {
			if m := between.FindStringSubmatch(q); m != nil {
				c.MinPrice = parsePrice(m[1])
				c.MaxPrice = parsePrice(m[2])
			}
		},
		func(q string, c *entities.ConstraintSet) {
			if m := around.FindStringSubmatch(q); m != nil {
				price := parsePrice(m[1])
				c.MinPrice = price * 0.8
				c.MaxPrice = price * 1.2
			}
		},
	}
}

func pricePattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + prefix + `\s*₹?\s*(\d+(?:,\d+)*)`)
}

// parsePrice parses a comma-grouped rupee amount like 1,00,000
func parsePrice(s string) float64 {
	n, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return n
}
