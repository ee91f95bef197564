package providers

import (
	"context"
	"errors"
)

// ErrExtractionUnavailable indicates the extraction backend rejected the call
var ErrExtractionUnavailable = errors.New("entity extraction unavailable")

// EntityExtractor pulls structured product names out of free-form comparison
// phrasing. Implementations may call a language model; tests use a
// deterministic rule-based implementation.
type EntityExtractor interface {
	// ExtractProductNames returns candidate product names in query order,
	// possibly empty when the query names no products
	ExtractProductNames(ctx context.Context, query string) ([]string, error)
}
