package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adityakhanna/shopwise/internal/domain/entities"
	"github.com/adityakhanna/shopwise/internal/domain/providers"
	"github.com/adityakhanna/shopwise/internal/infrastructure/observability"
)

// Orchestrator is the top-level pipeline: classify the query, route it to
// the specialists its intent calls for, thread the per-query context between
// them, and synthesize one final answer with a full execution trace.
//
// Specialist failures never abort the request. A failed call becomes a trace
// entry and the answer falls back to the generic suggestion text.
type Orchestrator struct {
	classifier *IntentClassifier
	catalog    *CatalogSpecialist
	filter     *FilterSpecialist
	review     *ReviewSpecialist
	compare    *CompareSpecialist
	bus        providers.EventBus
	metrics    *observability.Metrics
}

// NewOrchestrator creates the orchestrator with its specialists injected.
// The event bus and metrics are optional.
func NewOrchestrator(
	classifier *IntentClassifier,
	catalog *CatalogSpecialist,
	filter *FilterSpecialist,
	review *ReviewSpecialist,
	compare *CompareSpecialist,
	bus providers.EventBus,
	metrics *observability.Metrics,
) *Orchestrator {
	return &Orchestrator{
		classifier: classifier,
		catalog:    catalog,
		filter:     filter,
		review:     review,
		compare:    compare,
		bus:        bus,
		metrics:    metrics,
	}
}

// specialistResults collects the per-specialist outcomes of one query
type specialistResults struct {
	catalog *CatalogResult
	filter  *FilterResult
	review  *ReviewResult
	compare *CompareResult
}

// Process is the sole entry point: query text in, answer plus execution
// trace out. It never returns an error; the worst case is the generic
// fallback answer with Success=false.
func (o *Orchestrator) Process(ctx context.Context, query, sessionID string) *entities.Trace {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	start := time.Now()
	trace := &entities.Trace{
		Query:     query,
		SessionID: sessionID,
	}

	trace.AddStep("Orchestrator: analyzing query intent")
	intent := o.classifier.Classify(query)
	trace.Intent = intent.Type
	trace.AddStep(fmt.Sprintf("Orchestrator: detected intent %s", intent.Type))

	qctx := &Context{}
	results := o.route(ctx, query, intent, qctx, trace)

	trace.AddStep("Orchestrator: synthesizing final answer")
	trace.FinalAnswer, trace.Success = o.synthesize(results)

	o.emit(ctx, trace, time.Since(start))

	return trace
}

// route invokes the specialists the intent calls for, sequentially, handing
// the query context from one to the next
func (o *Orchestrator) route(ctx context.Context, query string, intent entities.Intent, qctx *Context, trace *entities.Trace) *specialistResults {
	results := &specialistResults{}

	switch intent.Type {
	case entities.IntentComparison:
		trace.AddStep("Orchestrator: routing to compare specialist")
		trace.AddAgent("compare")
		o.recordSpecialist(ctx, "compare")
		result, err := o.compare.Process(ctx, query, qctx)
		if err != nil {
			o.recordFailure(ctx, trace, "compare", err)
		} else {
			trace.Steps = append(trace.Steps, result.Trace...)
			results.compare = result
		}

	case entities.IntentCounting, entities.IntentSpecSearch, entities.IntentGeneral:
		trace.AddStep("Orchestrator: routing to catalog specialist")
		trace.AddAgent("catalog")
		o.recordSpecialist(ctx, "catalog")
		result, err := o.catalog.Process(ctx, query, qctx)
		if err != nil {
			o.recordFailure(ctx, trace, "catalog", err)
		} else {
			trace.Steps = append(trace.Steps, result.Trace...)
			results.catalog = result
		}

	case entities.IntentReviewSearch:
		trace.AddStep("Orchestrator: routing to review specialist")
		trace.AddAgent("review")
		o.recordSpecialist(ctx, "review")
		result, err := o.review.Process(ctx, query, qctx)
		if err != nil {
			o.recordFailure(ctx, trace, "review", err)
		} else {
			trace.Steps = append(trace.Steps, result.Trace...)
			results.review = result
		}

	case entities.IntentComplexSearch:
		if intent.NeedsFiltering {
			trace.AddStep("Orchestrator: routing to filter specialist")
			trace.AddAgent("filter")
			o.recordSpecialist(ctx, "filter")
			result, err := o.filter.Process(ctx, query, qctx)
			if err != nil {
				o.recordFailure(ctx, trace, "filter", err)
			} else {
				trace.Steps = append(trace.Steps, result.Trace...)
				results.filter = result
				if result.Success {
					for _, p := range result.Products {
						qctx.ProductIDs = append(qctx.ProductIDs, p.ID)
					}
				}
			}
		}

		if intent.NeedsReviews {
			trace.AddStep("Orchestrator: routing to review specialist")
			trace.AddAgent("review")
			o.recordSpecialist(ctx, "review")
			result, err := o.review.Process(ctx, query, qctx)
			if err != nil {
				o.recordFailure(ctx, trace, "review", err)
			} else {
				trace.Steps = append(trace.Steps, result.Trace...)
				results.review = result
			}
		}

	case entities.IntentFilteredSearch:
		trace.AddStep("Orchestrator: routing to filter specialist")
		trace.AddAgent("filter")
		o.recordSpecialist(ctx, "filter")
		result, err := o.filter.Process(ctx, query, qctx)
		if err != nil {
			o.recordFailure(ctx, trace, "filter", err)
		} else {
			trace.Steps = append(trace.Steps, result.Trace...)
			results.filter = result
		}

	default:
		trace.AddStep("Orchestrator: routing to catalog specialist")
		trace.AddAgent("catalog")
		o.recordSpecialist(ctx, "catalog")
		result, err := o.catalog.Process(ctx, query, qctx)
		if err != nil {
			o.recordFailure(ctx, trace, "catalog", err)
		} else {
			trace.Steps = append(trace.Steps, result.Trace...)
			results.catalog = result
		}
	}

	return results
}

// synthesize picks the richest successful result in fixed priority:
// compare, then review, then filter, then catalog, then the fallback text
func (o *Orchestrator) synthesize(results *specialistResults) (string, bool) {
	if results.compare != nil && results.compare.Success {
		return FormatCompareAnswer(results.compare), true
	}
	if results.review != nil && results.review.Success {
		return FormatReviewAnswer(results.review), true
	}
	if results.filter != nil && results.filter.Success {
		return FormatFilterAnswer(results.filter), true
	}
	if results.catalog != nil && results.catalog.Success {
		return FormatCatalogAnswer(results.catalog), true
	}
	return FallbackAnswer, false
}

func (o *Orchestrator) recordFailure(ctx context.Context, trace *entities.Trace, agent string, err error) {
	trace.AddStep(fmt.Sprintf("Error: %s specialist failed: %v", agent, err))
	logger := observability.LoggerFromContext(ctx)
	logger.Error().Err(err).Str("agent", agent).Str("query", trace.Query).Msg("specialist failed")
}

func (o *Orchestrator) recordSpecialist(ctx context.Context, agent string) {
	if o.metrics != nil {
		observability.RecordSpecialist(ctx, o.metrics, agent)
	}
}

// emit publishes the analytics event and records pipeline metrics
func (o *Orchestrator) emit(ctx context.Context, trace *entities.Trace, elapsed time.Duration) {
	if o.metrics != nil {
		observability.RecordQueryMetric(ctx, o.metrics, string(trace.Intent), trace.Success, elapsed)
	}

	if o.bus != nil {
		event := &entities.QueryEvent{
			ID:         uuid.NewString(),
			SessionID:  trace.SessionID,
			Query:      trace.Query,
			Intent:     trace.Intent,
			AgentsUsed: trace.AgentsUsed,
			Success:    trace.Success,
			DurationMs: elapsed.Milliseconds(),
			Timestamp:  time.Now(),
		}
		if err := o.bus.Publish(ctx, providers.EventChannelQueriesAnswered, event); err != nil {
			logger := observability.LoggerFromContext(ctx)
			logger.Warn().Err(err).Msg("failed to publish query event")
		}
	}
}
