package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/adityakhanna/shopwise/internal/domain/entities"
	"github.com/adityakhanna/shopwise/internal/domain/repositories"
)

const catalogResultLimit = 20

// CatalogSpecialist answers catalog-shape questions: brand and category
// lookups, spec filtering, counting, enumerations, and full product detail.
type CatalogSpecialist struct {
	catalog repositories.CatalogRepository
}

// NewCatalogSpecialist creates a new catalog specialist
func NewCatalogSpecialist(catalog repositories.CatalogRepository) *CatalogSpecialist {
	return &CatalogSpecialist{catalog: catalog}
}

// Patterns that pull a candidate product name out of a detail request, tried
// in order. The first capture group is the name.
var detailNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:what are|what is)\s+(?:the\s+)?(?:specification|specifications|specs|spec|details|features)\s+(?:of|for)\s+(?:the\s+)?(.+?)(?:\?|$)`),
	regexp.MustCompile(`(?i)(?:specification|specifications|specs|spec|details|features)\s+(?:of|for)\s+(?:the\s+)?(.+?)(?:\?|$)`),
	regexp.MustCompile(`(?i)(?:tell me about|show me)\s+(?:the\s+)?(.+?)(?:\?|$)`),
	regexp.MustCompile(`(?i)(.+?)\s+(?:specification|specifications|specs|spec|details|features)(?:\?|$)`),
}

var leadingArticlePattern = regexp.MustCompile(`(?i)^(?:the|a|an)\s+`)
var trailingSpecPattern = regexp.MustCompile(`(?i)\s+(?:specification|specifications|specs|spec|details|features)$`)

// Templates that recognize a (spec name, value) pair in the query text
var specValuePatterns = []struct {
	pattern *regexp.Regexp
	name    string
	format  string
}{
	{regexp.MustCompile(`(\d+)\s*gb\s+ram`), "RAM", "%sGB"},
	{regexp.MustCompile(`ram.*?(\d+)\s*gb`), "RAM", "%sGB"},
	{regexp.MustCompile(`(\d+)\s*gb\s+storage`), "Storage", "%sGB"},
	{regexp.MustCompile(`storage.*?(\d+)\s*gb`), "Storage", "%sGB"},
	{regexp.MustCompile(`(\d+\.?\d*)\s*inch.*display`), "Display", "%s inch"},
	{regexp.MustCompile(`display.*?(\d+\.?\d*)\s*inch`), "Display", "%s inch"},
}

var searchStopWords = map[string]struct{}{
	"what": {}, "which": {}, "show": {}, "me": {}, "find": {}, "get": {},
	"tell": {}, "about": {}, "is": {}, "are": {}, "the": {}, "of": {},
}

// Process resolves the query through an ordered case chain. Earlier cases
// that fail to extract anything fall through to later ones instead of
// failing the whole request.
func (s *CatalogSpecialist) Process(ctx context.Context, query string, qctx *Context) (*CatalogResult, error) {
	trace := []string{"Catalog: analyzing query for product information needs"}
	lower := strings.ToLower(query)
	mappedCategory := MapCategory(query)

	// Case 0: full product detail request
	if isDetailRequest(lower) {
		trace = append(trace, "Catalog: detected product detail request")
		detail, err := s.resolveDetail(ctx, query, &trace)
		if err != nil {
			return nil, err
		}
		if detail != nil {
			trace = append(trace, "Catalog: found product details with specifications")
			return &CatalogResult{
				ResultType: ResultProductDetails,
				Detail:     detail,
				Trace:      trace,
				Success:    true,
			}, nil
		}
		trace = append(trace, "Catalog: could not pin down a product, trying other strategies")
	}

	// Case 1: counting
	if containsAny(lower, countingKeywords) {
		trace = append(trace, "Catalog: detected counting query")
		count, err := s.resolveCount(ctx, lower, mappedCategory, &trace)
		if err != nil {
			return nil, err
		}
		return &CatalogResult{
			ResultType: ResultCount,
			Count:      count,
			Trace:      trace,
			Success:    count != nil,
		}, nil
	}

	// Case 2: spec filtering with an operator
	if containsAny(lower, specKeywords) && containsAny(lower, specOperators) {
		trace = append(trace, "Catalog: detected specification filtering query")
		products, matched, err := s.resolveSpecFilter(ctx, lower, mappedCategory, &trace)
		if err != nil {
			return nil, err
		}
		if matched {
			return &CatalogResult{
				ResultType: ResultProducts,
				Products:   products,
				Trace:      trace,
				Success:    len(products) > 0,
			}, nil
		}
	}

	// Case 3: brand query
	brand, err := s.findBrand(ctx, lower)
	if err != nil {
		return nil, err
	}
	if brand != "" {
		trace = append(trace, fmt.Sprintf("Catalog: searching products by brand %s", brand))
		var products []*entities.Product
		if mappedCategory != "" {
			trace = append(trace, fmt.Sprintf("Catalog: with category filter %s", mappedCategory))
			products, err = s.catalog.FindByBrandAndCategory(ctx, brand, mappedCategory, catalogResultLimit)
		} else {
			products, err = s.catalog.FindByBrand(ctx, brand, catalogResultLimit)
		}
		if err != nil {
			return nil, err
		}
		return productsResult(products, trace), nil
	}

	// Case 4: category query
	if mappedCategory != "" {
		trace = append(trace, fmt.Sprintf("Catalog: searching products by category %s", mappedCategory))
		products, err := s.catalog.FindByCategory(ctx, mappedCategory, catalogResultLimit)
		if err != nil {
			return nil, err
		}
		return productsResult(products, trace), nil
	}

	// Case 5: enumerate brands
	if strings.Contains(lower, "all brands") || strings.Contains(lower, "brands available") {
		trace = append(trace, "Catalog: retrieving all available brands")
		brands, err := s.catalog.ListBrands(ctx)
		if err != nil {
			return nil, err
		}
		return &CatalogResult{
			ResultType: ResultList,
			List:       &ListResult{Brands: brands},
			Trace:      trace,
			Success:    true,
		}, nil
	}

	// Case 6: enumerate categories
	if strings.Contains(lower, "all categories") || strings.Contains(lower, "categories available") {
		trace = append(trace, "Catalog: retrieving all product categories")
		categories, err := s.catalog.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		return &CatalogResult{
			ResultType: ResultList,
			List:       &ListResult{Categories: categories},
			Trace:      trace,
			Success:    true,
		}, nil
	}

	// Case 7: free-text fallback over product names
	term := extractSearchTerm(query)
	trace = append(trace, fmt.Sprintf("Catalog: general product search for %q", term))
	products, err := s.catalog.SearchByName(ctx, term, catalogResultLimit)
	if err != nil {
		return nil, err
	}
	return productsResult(products, trace), nil
}

func productsResult(products []*entities.Product, trace []string) *CatalogResult {
	trace = append(trace, fmt.Sprintf("Catalog: found %d products", len(products)))
	return &CatalogResult{
		ResultType: ResultProducts,
		Products:   products,
		Trace:      trace,
		Success:    len(products) > 0,
	}
}

func isDetailRequest(lower string) bool {
	detailKeywords := []string{"specification", "specifications", "specs", "spec", "details", "features"}
	questionStarters := []string{"what are", "what is", "tell me about", "show me"}
	return containsAny(lower, detailKeywords) || containsAny(lower, questionStarters)
}

// resolveDetail extracts a product name, looks it up by fuzzy search, and
// returns the full detail of the best match. A nil product with nil error
// means extraction or lookup failed and the caller should fall through.
func (s *CatalogSpecialist) resolveDetail(ctx context.Context, query string, trace *[]string) (*entities.Product, error) {
	name := extractDetailName(query)
	if name == "" {
		return nil, nil
	}
	*trace = append(*trace, fmt.Sprintf("Catalog: extracted product name %q", name))

	matches, err := s.catalog.SearchByName(ctx, name, 3)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		*trace = append(*trace, fmt.Sprintf("Catalog: no products found for %q", name))
		return nil, nil
	}

	*trace = append(*trace, fmt.Sprintf("Catalog: best match %s", matches[0].Name))
	return s.catalog.FindByID(ctx, matches[0].ID)
}

func extractDetailName(query string) string {
	for _, pattern := range detailNamePatterns {
		match := pattern.FindStringSubmatch(query)
		if match == nil {
			continue
		}

		name := strings.TrimSpace(match[1])
		name = leadingArticlePattern.ReplaceAllString(name, "")
		name = trailingSpecPattern.ReplaceAllString(name, "")
		name = strings.TrimSpace(name)

		if len(name) > 3 {
			return name
		}
	}
	return ""
}

func (s *CatalogSpecialist) resolveCount(ctx context.Context, lower, category string, trace *[]string) (*CountResult, error) {
	switch {
	case strings.Contains(lower, "brand"):
		if category != "" {
			*trace = append(*trace, fmt.Sprintf("Catalog: counting brands in category %s", category))
			brands, err := s.catalog.BrandsInCategory(ctx, category)
			if err != nil {
				return nil, err
			}
			sort.Strings(brands)
			return &CountResult{Type: "brand_count", Category: category, Count: len(brands), Brands: brands}, nil
		}

		*trace = append(*trace, "Catalog: counting all brands")
		brands, err := s.catalog.ListBrands(ctx)
		if err != nil {
			return nil, err
		}
		sort.Strings(brands)
		return &CountResult{Type: "brand_count", Count: len(brands), Brands: brands}, nil

	case strings.Contains(lower, "categor"):
		*trace = append(*trace, "Catalog: counting all categories")
		categories, err := s.catalog.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		sort.Strings(categories)
		return &CountResult{Type: "category_count", Count: len(categories), Categories: categories}, nil

	case strings.Contains(lower, "product") || category != "":
		if category == "" {
			return nil, nil
		}
		*trace = append(*trace, fmt.Sprintf("Catalog: counting products in category %s", category))
		count, err := s.catalog.CountByCategory(ctx, category)
		if err != nil {
			return nil, err
		}
		samples, err := s.catalog.FindByCategory(ctx, category, 10)
		if err != nil {
			return nil, err
		}
		return &CountResult{Type: "product_count", Category: category, Count: count, Products: samples}, nil
	}

	return nil, nil
}

// resolveSpecFilter extracts a (spec, operator, value) triple and delegates
// to the catalog's spec filter. matched=false means no spec pattern applied
// and the caller should fall through.
func (s *CatalogSpecialist) resolveSpecFilter(ctx context.Context, lower, category string, trace *[]string) ([]*entities.Product, bool, error) {
	var specName, specValue string
	for _, template := range specValuePatterns {
		match := template.pattern.FindStringSubmatch(lower)
		if match != nil {
			specName = template.name
			specValue = fmt.Sprintf(template.format, match[1])
			break
		}
	}
	if specName == "" {
		return nil, false, nil
	}

	operator := entities.OpContains
	switch {
	case strings.Contains(lower, "more than") || strings.Contains(lower, ">") || strings.Contains(lower, "greater") || strings.Contains(lower, "above"):
		operator = entities.OpGreater
	case strings.Contains(lower, "less than") || strings.Contains(lower, "<") || strings.Contains(lower, "below"):
		operator = entities.OpLess
	case strings.Contains(lower, "at least") || strings.Contains(lower, "minimum"):
		operator = entities.OpGreaterEqual
	}

	*trace = append(*trace, fmt.Sprintf("Catalog: filtering by %s %s %s", specName, operator, specValue))
	if category != "" {
		*trace = append(*trace, fmt.Sprintf("Catalog: in category %s", category))
	}

	filter := entities.SpecFilter{Name: specName, Operator: operator, Value: specValue}
	products, err := s.catalog.FilterBySpec(ctx, filter, category, catalogResultLimit)
	if err != nil {
		return nil, true, err
	}
	return products, true, nil
}

func (s *CatalogSpecialist) findBrand(ctx context.Context, lower string) (string, error) {
	brands, err := s.catalog.ListBrands(ctx)
	if err != nil {
		return "", err
	}
	for _, brand := range brands {
		if strings.Contains(lower, strings.ToLower(brand)) {
			return brand, nil
		}
	}
	return "", nil
}

// extractSearchTerm keeps the first 4 significant tokens of the query
func extractSearchTerm(query string) string {
	var kept []string
	for _, token := range strings.Fields(strings.ToLower(query)) {
		token = strings.Trim(token, "?!.,")
		if _, stop := searchStopWords[token]; stop || len(token) <= 2 {
			continue
		}
		kept = append(kept, token)
		if len(kept) == 4 {
			break
		}
	}
	return strings.Join(kept, " ")
}
