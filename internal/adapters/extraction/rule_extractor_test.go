package extraction

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityakhanna/shopwise/internal/domain/providers"
)

func TestRuleExtractorSplitsComparisons(t *testing.T) {
	extractor := NewRuleExtractor()

	cases := []struct {
		query string
		want  []string
	}{
		{"Compare iPhone 15 and Galaxy S24", []string{"iPhone 15", "Galaxy S24"}},
		{"iPhone 15 vs Galaxy S24", []string{"iPhone 15", "Galaxy S24"}},
		{"iPhone 15 vs. Galaxy S24 versus Pixel 8", []string{"iPhone 15", "Galaxy S24", "Pixel 8"}},
		{"What is the difference between MacBook Air and ThinkPad X1?", []string{"MacBook Air", "ThinkPad X1"}},
		{"Galaxy S24 or Pixel 8, which is better?", []string{"Galaxy S24", "Pixel 8"}},
		{"compare the OnePlus 12 with the iPhone 15", []string{"OnePlus 12", "the iPhone 15"}},
	}

	for _, tc := range cases {
		names, err := extractor.ExtractProductNames(context.Background(), tc.query)
		require.NoError(t, err, tc.query)
		assert.Equal(t, tc.want, names, tc.query)
	}
}

func TestRuleExtractorEmptyQuery(t *testing.T) {
	extractor := NewRuleExtractor()

	names, err := extractor.ExtractProductNames(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, names)
}

type fixedExtractor struct {
	names []string
	err   error
}

func (f *fixedExtractor) ExtractProductNames(ctx context.Context, query string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.names, nil
}

func TestFallbackExtractorPrefersPrimary(t *testing.T) {
	primary := &fixedExtractor{names: []string{"iPhone 15"}}
	extractor := NewFallbackExtractor(primary, NewRuleExtractor())

	names, err := extractor.ExtractProductNames(context.Background(), "compare iPhone 15 and Galaxy S24")
	require.NoError(t, err)
	assert.Equal(t, []string{"iPhone 15"}, names)
}

func TestFallbackExtractorFallsBackWhenUnavailable(t *testing.T) {
	primary := &fixedExtractor{err: fmt.Errorf("%w: connection refused", providers.ErrExtractionUnavailable)}
	extractor := NewFallbackExtractor(primary, NewRuleExtractor())

	names, err := extractor.ExtractProductNames(context.Background(), "compare iPhone 15 and Galaxy S24")
	require.NoError(t, err)
	assert.Equal(t, []string{"iPhone 15", "Galaxy S24"}, names)
}

func TestFallbackExtractorPropagatesOtherErrors(t *testing.T) {
	primary := &fixedExtractor{err: errors.New("malformed response")}
	extractor := NewFallbackExtractor(primary, NewRuleExtractor())

	_, err := extractor.ExtractProductNames(context.Background(), "compare iPhone 15 and Galaxy S24")
	assert.Error(t, err)
}

func TestFallbackExtractorNilPrimary(t *testing.T) {
	extractor := NewFallbackExtractor(nil, NewRuleExtractor())

	names, err := extractor.ExtractProductNames(context.Background(), "iPhone 15 vs Galaxy S24")
	require.NoError(t, err)
	assert.Equal(t, []string{"iPhone 15", "Galaxy S24"}, names)
}
