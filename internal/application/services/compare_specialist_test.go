package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityakhanna/shopwise/internal/domain/entities"
)

func TestCompareTwoNamedProducts(t *testing.T) {
	catalog := electronicsCatalog()
	extractor := &stubExtractor{names: []string{"iPhone 15", "Galaxy S24"}}
	specialist := NewCompareSpecialist(catalog, extractor)

	result, err := specialist.Process(context.Background(), "Compare iPhone 15 and Galaxy S24", nil)
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.NotNil(t, result.Comparison)
	require.Len(t, result.Comparison.Products, 2)
	assert.NotEmpty(t, result.Comparison.PriceWinner)
	assert.NotEmpty(t, result.Comparison.RatingWinner)
	require.NotNil(t, result.Recommendation)
	assert.Equal(t, entities.BalancedWeights(), result.Recommendation.Weights)
}

func TestCompareWinners(t *testing.T) {
	catalog := electronicsCatalog()
	specialist := NewCompareSpecialist(catalog, &stubExtractor{})

	comparison, err := specialist.Compare(context.Background(), []string{"p1", "p2", "p3"})
	require.NoError(t, err)

	// p3 is the cheapest, p2 has the highest average rating
	assert.Equal(t, "p3", comparison.PriceWinner)
	assert.Equal(t, "p2", comparison.RatingWinner)
}

func TestCompareZeroReviewProductNeverWinsRating(t *testing.T) {
	unrated := demoProduct("u1", "NoName Phone", "NoName", "Smartphones", 5000)
	rated := demoProduct("u2", "Rated Phone", "Rated", "Smartphones", 9000, 3.0)
	specialist := NewCompareSpecialist(newStubCatalog(unrated, rated), &stubExtractor{})

	comparison, err := specialist.Compare(context.Background(), []string{"u1", "u2"})
	require.NoError(t, err)

	assert.Equal(t, "u1", comparison.PriceWinner)
	assert.Equal(t, "u2", comparison.RatingWinner)
}

func TestCompareTiesBreakToFirstEncountered(t *testing.T) {
	first := demoProduct("t1", "Twin A", "Acme", "Speakers", 4000, 4.0)
	second := demoProduct("t2", "Twin B", "Acme", "Speakers", 4000, 4.0)
	specialist := NewCompareSpecialist(newStubCatalog(first, second), &stubExtractor{})

	comparison, err := specialist.Compare(context.Background(), []string{"t1", "t2"})
	require.NoError(t, err)

	assert.Equal(t, "t1", comparison.PriceWinner)
	assert.Equal(t, "t1", comparison.RatingWinner)
}

func TestCompareSpecTableUsesCommonKeysOnly(t *testing.T) {
	specialist := NewCompareSpecialist(electronicsCatalog(), &stubExtractor{})

	// p1 has RAM, Storage, Display; p2 has RAM, Storage
	comparison, err := specialist.Compare(context.Background(), []string{"p1", "p2"})
	require.NoError(t, err)

	assert.Contains(t, comparison.SpecComparison, "RAM")
	assert.Contains(t, comparison.SpecComparison, "Storage")
	assert.NotContains(t, comparison.SpecComparison, "Display")
}

func TestCompareInsufficientProducts(t *testing.T) {
	specialist := NewCompareSpecialist(electronicsCatalog(), &stubExtractor{names: []string{"Galaxy S24"}})

	result, err := specialist.Process(context.Background(), "compare the Galaxy S24", nil)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, "Insufficient products for comparison", result.Err)
	assert.Nil(t, result.Recommendation)
}

func TestCompareNoExtractedProducts(t *testing.T) {
	specialist := NewCompareSpecialist(electronicsCatalog(), &stubExtractor{})

	result, err := specialist.Process(context.Background(), "compare them", nil)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, "No products identified for comparison", result.Err)
}

func TestCompareTruncatesToFiveProducts(t *testing.T) {
	catalog := newStubCatalog(
		demoProduct("c1", "One", "B", "Speakers", 1000, 4),
		demoProduct("c2", "Two", "B", "Speakers", 2000, 4),
		demoProduct("c3", "Three", "B", "Speakers", 3000, 4),
		demoProduct("c4", "Four", "B", "Speakers", 4000, 4),
		demoProduct("c5", "Five", "B", "Speakers", 5000, 4),
		demoProduct("c6", "Sixth", "B", "Speakers", 6000, 4),
	)
	specialist := NewCompareSpecialist(catalog, &stubExtractor{})

	qctx := &Context{ProductIDs: []string{"c1", "c2", "c3", "c4", "c5", "c6"}}
	result, err := specialist.Process(context.Background(), "compare all of these", qctx)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Len(t, result.Comparison.Products, 5)
}

func TestRecommendScalesWithWeights(t *testing.T) {
	cheapOK := demoProduct("r1", "Value Pick", "A", "Tablets", 10000, 2.5)
	pricyGreat := demoProduct("r2", "Premium Pick", "B", "Tablets", 30000, 5.0)
	specialist := NewCompareSpecialist(newStubCatalog(cheapOK, pricyGreat), &stubExtractor{})

	comparison, err := specialist.Compare(context.Background(), []string{"r1", "r2"})
	require.NoError(t, err)

	budget := Recommend(comparison, entities.BudgetWeights())
	assert.Equal(t, "r1", budget.ProductID)

	quality := Recommend(comparison, entities.QualityWeights())
	assert.Equal(t, "r2", quality.ProductID)
}

func TestRecommendEqualPricesSplitPriceScore(t *testing.T) {
	a := demoProduct("e1", "Same Price A", "A", "Cameras", 20000, 4.0)
	b := demoProduct("e2", "Same Price B", "B", "Cameras", 20000, 5.0)
	specialist := NewCompareSpecialist(newStubCatalog(a, b), &stubExtractor{})

	comparison, err := specialist.Compare(context.Background(), []string{"e1", "e2"})
	require.NoError(t, err)

	rec := Recommend(comparison, entities.BalancedWeights())
	assert.Equal(t, "e2", rec.ProductID)
	assert.Contains(t, rec.Reason, "highest rating")
}

func TestFindSimilarExcludesSourceAndDistantPrices(t *testing.T) {
	catalog := newStubCatalog(
		demoProduct("s1", "Base Tablet", "A", "Tablets", 20000, 4),
		demoProduct("s2", "Near Tablet", "B", "Tablets", 22000, 4),
		demoProduct("s3", "Far Tablet", "C", "Tablets", 40000, 4),
		demoProduct("s4", "Other Phone", "D", "Smartphones", 20000, 4),
	)
	specialist := NewCompareSpecialist(catalog, &stubExtractor{})

	similar, err := specialist.FindSimilar(context.Background(), "s1", 5)
	require.NoError(t, err)

	require.Len(t, similar, 1)
	assert.Equal(t, "s2", similar[0].ID)
}

func TestCompareProcessFailsWhenNoProductLoads(t *testing.T) {
	specialist := NewCompareSpecialist(electronicsCatalog(), &stubExtractor{})

	result, err := specialist.Process(context.Background(), "compare my shortlist", &Context{ProductIDs: []string{"gone1", "gone2"}})
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestCompareProcessFailsWhenOneProductLoadFails(t *testing.T) {
	specialist := NewCompareSpecialist(electronicsCatalog(), &stubExtractor{})

	result, err := specialist.Process(context.Background(), "compare my shortlist", &Context{ProductIDs: []string{"p1", "gone"}})
	require.Error(t, err)
	assert.Nil(t, result)

	_, err = specialist.Compare(context.Background(), []string{"p1", "gone"})
	assert.Error(t, err)
}

func TestRecommendInvariantUnderWeightRescaling(t *testing.T) {
	specialist := NewCompareSpecialist(electronicsCatalog(), &stubExtractor{})

	comparison, err := specialist.Compare(context.Background(), []string{"p1", "p2", "p3"})
	require.NoError(t, err)

	cases := []struct {
		name         string
		base, scaled entities.Weights
	}{
		{"balanced doubled", entities.Weights{Price: 0.5, Rating: 0.5}, entities.Weights{Price: 1, Rating: 1}},
		{"budget doubled", entities.Weights{Price: 0.7, Rating: 0.3}, entities.Weights{Price: 1.4, Rating: 0.6}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			base := Recommend(comparison, tc.base)
			scaled := Recommend(comparison, tc.scaled)
			require.NotNil(t, base)
			require.NotNil(t, scaled)

			assert.Equal(t, base.ProductID, scaled.ProductID)
			assert.InDelta(t, 2*base.Score, scaled.Score, 1e-9)
		})
	}
}
