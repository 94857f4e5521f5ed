// Package enrich runs fault records through a staged completion pipeline
// that adds an AI-written overview, rewritten troubleshooting steps, and
// repair resource links. A record that cannot be enriched is kept with the
// failure recorded in its enrichment metadata, never dropped.
package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BoilerWiseAI/boilerwise-mvp/engine/domain"
	"github.com/BoilerWiseAI/boilerwise-mvp/pkg/fn"
	"github.com/BoilerWiseAI/boilerwise-mvp/pkg/llm"
	"github.com/BoilerWiseAI/boilerwise-mvp/pkg/resilience"
)

// APICallsPerRecord is how many completions a full enrichment makes.
const APICallsPerRecord = 2

// Deps holds the external dependencies for the enrichment pipeline.
type Deps struct {
	Completer llm.Completer
	Limiter   *resilience.Limiter
	Retry     fn.RetryOpts
	Logger    *slog.Logger
	// ModelName is recorded in enrichment metadata.
	ModelName string
	// Now is the clock used for metadata stamps. Defaults to time.Now.
	Now func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now().UTC()
}

// Validate rejects records missing their key fields before any completion
// is spent on them.
var Validate fn.Stage[domain.FaultRecord, domain.FaultRecord] = func(_ context.Context, rec domain.FaultRecord) fn.Result[domain.FaultRecord] {
	if err := domain.ValidateRecord(rec); err != nil {
		return fn.Err[domain.FaultRecord](err)
	}
	return fn.Ok(rec)
}

// NewOverviewStage asks the completer for an overview and enhanced
// troubleshooting and folds them into the record.
func NewOverviewStage(c llm.Completer) fn.Stage[domain.FaultRecord, domain.FaultRecord] {
	return func(ctx context.Context, rec domain.FaultRecord) fn.Result[domain.FaultRecord] {
		raw, err := c.Complete(ctx, OverviewPrompt(rec))
		if err != nil {
			return fn.Err[domain.FaultRecord](fmt.Errorf("overview completion: %w", err))
		}
		payload, err := parseOverview(raw)
		if err != nil {
			return fn.Err[domain.FaultRecord](err)
		}
		rec.AIOverview = payload.AIOverview
		if payload.Troubleshooting != "" {
			rec.Troubleshooting = payload.Troubleshooting
		}
		return fn.Ok(rec)
	}
}

// NewResourcesStage asks the completer for repair resources. Resource
// lookup is best-effort: a failed or malformed completion leaves the record
// with no resources instead of failing the pipeline.
func NewResourcesStage(c llm.Completer, log *slog.Logger) fn.Stage[domain.FaultRecord, domain.FaultRecord] {
	return func(ctx context.Context, rec domain.FaultRecord) fn.Result[domain.FaultRecord] {
		raw, err := c.Complete(ctx, ResourcesPrompt(rec))
		if err != nil {
			log.Warn("resources completion failed", "maker", rec.Maker, "model", rec.Model, "code", rec.ErrorCode, "error", err)
			rec.HelpfulResources = nil
			return fn.Ok(rec)
		}
		rec.HelpfulResources = parseResources(raw).HelpfulResources
		return fn.Ok(rec)
	}
}

// NewPipeline composes the per-record stages: validation, rate-limited and
// retried overview completion, then best-effort resources.
func NewPipeline(deps Deps) fn.Stage[domain.FaultRecord, domain.FaultRecord] {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	overview := fn.RetryStage(deps.Retry, NewOverviewStage(deps.Completer))
	resources := NewResourcesStage(deps.Completer, log)
	if deps.Limiter != nil {
		overview = resilience.LimiterStageWait(deps.Limiter, overview)
		resources = resilience.LimiterStageWait(deps.Limiter, resources)
	}

	return fn.Pipeline(
		Validate,
		fn.TracedStage("enrich.overview", overview),
		fn.TracedStage("enrich.resources", resources),
	)
}

// Enricher applies the pipeline one record at a time, converting stage
// failures into metadata on the original record.
type Enricher struct {
	deps     Deps
	pipeline fn.Stage[domain.FaultRecord, domain.FaultRecord]
}

// New builds an Enricher from its dependencies.
func New(deps Deps) *Enricher {
	return &Enricher{deps: deps, pipeline: NewPipeline(deps)}
}

// Enrich runs one record through the pipeline. On failure it returns the
// original record stamped with error metadata and the error itself; the
// caller decides whether to keep going.
func (e *Enricher) Enrich(ctx context.Context, rec domain.FaultRecord) (domain.FaultRecord, error) {
	out, err := e.pipeline(ctx, domain.NormalizeRecord(rec)).Unwrap()
	stamp := map[string]any{
		"enriched_at": e.deps.now().Format(time.RFC3339),
		"model_used":  e.deps.ModelName,
		"api_calls":   APICallsPerRecord,
	}
	if err != nil {
		stamp["success"] = false
		stamp["error"] = err.Error()
		rec.EnrichmentMetadata = stamp
		return rec, err
	}
	stamp["success"] = true
	out.EnrichmentMetadata = stamp
	return out, nil
}
