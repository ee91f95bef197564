package extraction

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/adityakhanna/shopwise/internal/domain/providers"
)

// FallbackExtractor tries a primary extractor and falls back to a secondary
// one when the primary is unavailable. The comparison flow stays usable when
// the model endpoint is down or unconfigured.
type FallbackExtractor struct {
	primary  providers.EntityExtractor
	fallback providers.EntityExtractor
}

// Ensure FallbackExtractor implements EntityExtractor
var _ providers.EntityExtractor = (*FallbackExtractor)(nil)

// NewFallbackExtractor creates an extractor with a fallback
func NewFallbackExtractor(primary, fallback providers.EntityExtractor) *FallbackExtractor {
	return &FallbackExtractor{primary: primary, fallback: fallback}
}

// ExtractProductNames extracts product names, falling back when the primary
// extractor cannot be reached
func (e *FallbackExtractor) ExtractProductNames(ctx context.Context, query string) ([]string, error) {
	if e.primary != nil {
		names, err := e.primary.ExtractProductNames(ctx, query)
		if err == nil {
			return names, nil
		}
		if !errors.Is(err, providers.ErrExtractionUnavailable) {
			return nil, err
		}
		log.Warn().Err(err).Msg("primary extractor unavailable, using rule-based fallback")
	}

	return e.fallback.ExtractProductNames(ctx, query)
}
