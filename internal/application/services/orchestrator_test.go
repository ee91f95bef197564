package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityakhanna/shopwise/internal/domain/entities"
)

func newTestOrchestrator(catalog *stubCatalog, index *stubReviewIndex, extractor *stubExtractor) *Orchestrator {
	return NewOrchestrator(
		NewIntentClassifier(),
		NewCatalogSpecialist(catalog),
		NewFilterSpecialist(catalog),
		NewReviewSpecialist(catalog, index),
		NewCompareSpecialist(catalog, extractor),
		nil,
		nil,
	)
}

func TestOrchestratorRoutesComparison(t *testing.T) {
	extractor := &stubExtractor{names: []string{"iPhone 15", "Galaxy S24"}}
	orchestrator := newTestOrchestrator(electronicsCatalog(), &stubReviewIndex{}, extractor)

	trace := orchestrator.Process(context.Background(), "Compare iPhone 15 vs Galaxy S24", "")

	assert.Equal(t, entities.IntentComparison, trace.Intent)
	assert.Equal(t, []string{"compare"}, trace.AgentsUsed)
	assert.True(t, trace.Success)
	assert.Contains(t, trace.FinalAnswer, "Our Recommendation")
	assert.NotEmpty(t, trace.SessionID)
}

func TestOrchestratorRoutesFilteredSearch(t *testing.T) {
	orchestrator := newTestOrchestrator(electronicsCatalog(), &stubReviewIndex{}, &stubExtractor{})

	trace := orchestrator.Process(context.Background(), "Find me laptops under ₹100000", "session-1")

	assert.Equal(t, entities.IntentFilteredSearch, trace.Intent)
	assert.Equal(t, []string{"filter"}, trace.AgentsUsed)
	assert.True(t, trace.Success)
	assert.Contains(t, trace.FinalAnswer, "MacBook Air M2")
	assert.Equal(t, "session-1", trace.SessionID)
}

func TestOrchestratorRoutesCounting(t *testing.T) {
	orchestrator := newTestOrchestrator(electronicsCatalog(), &stubReviewIndex{}, &stubExtractor{})

	trace := orchestrator.Process(context.Background(), "How many brands sell smartphones?", "")

	assert.Equal(t, entities.IntentCounting, trace.Intent)
	assert.Equal(t, []string{"catalog"}, trace.AgentsUsed)
	assert.True(t, trace.Success)
	assert.Contains(t, trace.FinalAnswer, "3")
}

func TestOrchestratorRoutesReview(t *testing.T) {
	orchestrator := newTestOrchestrator(electronicsCatalog(), &stubReviewIndex{}, &stubExtractor{})

	trace := orchestrator.Process(context.Background(), "What do customers think about Galaxy S24?", "")

	assert.Equal(t, entities.IntentReviewSearch, trace.Intent)
	assert.Equal(t, []string{"review"}, trace.AgentsUsed)
	assert.True(t, trace.Success)
	assert.Contains(t, trace.FinalAnswer, "Galaxy S24")
}

func TestOrchestratorComplexSearchHandsProductsToReview(t *testing.T) {
	orchestrator := newTestOrchestrator(electronicsCatalog(), &stubReviewIndex{}, &stubExtractor{})

	trace := orchestrator.Process(context.Background(), "best smartphones under ₹90,000 with good reviews", "")

	assert.Equal(t, entities.IntentComplexSearch, trace.Intent)
	assert.Equal(t, []string{"filter", "review"}, trace.AgentsUsed)
	assert.True(t, trace.Success)
	// Review output wins synthesis and covers the filtered products
	assert.Contains(t, trace.FinalAnswer, "OnePlus 12")
}

func TestOrchestratorFallsBackOnEmptyResult(t *testing.T) {
	orchestrator := newTestOrchestrator(electronicsCatalog(), &stubReviewIndex{}, &stubExtractor{})

	trace := orchestrator.Process(context.Background(), "laptops under ₹5,000", "")

	assert.False(t, trace.Success)
	assert.Equal(t, FallbackAnswer, trace.FinalAnswer)
}

func TestOrchestratorSurvivesSpecialistError(t *testing.T) {
	extractor := &stubExtractor{err: errors.New("extraction backend down")}
	orchestrator := newTestOrchestrator(electronicsCatalog(), &stubReviewIndex{}, extractor)

	trace := orchestrator.Process(context.Background(), "Compare iPhone 15 vs Galaxy S24", "")

	assert.False(t, trace.Success)
	assert.Equal(t, FallbackAnswer, trace.FinalAnswer)

	failed := false
	for _, step := range trace.Steps {
		if step == "Error: compare specialist failed: extraction backend down" {
			failed = true
		}
	}
	assert.True(t, failed, "trace should record the specialist failure")
}

func TestOrchestratorSynthesisPriority(t *testing.T) {
	results := &specialistResults{
		filter:  &FilterResult{Success: true, Products: []*entities.Product{demoProduct("x", "X", "B", "Tablets", 1000)}},
		catalog: &CatalogResult{Success: true, ResultType: ResultProducts},
	}
	orchestrator := newTestOrchestrator(electronicsCatalog(), &stubReviewIndex{}, &stubExtractor{})

	answer, ok := orchestrator.synthesize(results)
	require.True(t, ok)
	assert.Contains(t, answer, "X")

	results.review = &ReviewResult{Success: true, Items: []ReviewItem{{
		Product:   demoProduct("y", "Y Product", "B", "Tablets", 2000, 4),
		Sentiment: entities.SummarizeReviews("y", []entities.Review{{Rating: 4}}),
	}}}
	answer, ok = orchestrator.synthesize(results)
	require.True(t, ok)
	assert.Contains(t, answer, "Y Product")
}
