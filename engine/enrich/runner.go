package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BoilerWiseAI/boilerwise-mvp/engine/dataset"
	"github.com/BoilerWiseAI/boilerwise-mvp/engine/domain"
)

// RunOpts controls a batch enrichment run.
type RunOpts struct {
	InputPath    string
	OutputPath   string
	ProgressPath string // defaults next to OutputPath
	SaveEvery    int    // write the output file every N records
	TestMode     bool   // only process the first TestCount records
	TestCount    int
}

// Stats summarises a completed run.
type Stats struct {
	Total    int
	Enriched int
	Skipped  int
	Failed   int
}

// Runner drives an Enricher over a whole dataset file with batch saves and
// resumable progress.
type Runner struct {
	enricher *Enricher
	deps     Deps
	log      *slog.Logger
}

// NewRunner builds a Runner from the pipeline dependencies.
func NewRunner(deps Deps) *Runner {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Runner{enricher: New(deps), deps: deps, log: log}
}

// Run enriches every record in the input file and writes the enriched
// dataset to the output path. Individual record failures are kept in the
// output with error metadata; only I/O problems or context cancellation
// abort the run.
func (r *Runner) Run(ctx context.Context, opts RunOpts) (Stats, error) {
	if opts.SaveEvery <= 0 {
		opts.SaveEvery = 10
	}
	if opts.TestCount <= 0 {
		opts.TestCount = 5
	}
	if opts.ProgressPath == "" {
		opts.ProgressPath = ProgressPath(opts.OutputPath)
	}

	ds, err := dataset.Load(opts.InputPath)
	if err != nil {
		return Stats{}, err
	}
	records := ds.BoilerFaults
	if opts.TestMode && len(records) > opts.TestCount {
		records = records[:opts.TestCount]
	}

	progress, err := LoadProgress(opts.ProgressPath)
	if err != nil {
		return Stats{}, fmt.Errorf("load progress: %w", err)
	}
	if progress.Count() > 0 {
		r.log.Info("resuming run", "already_processed", progress.Count())
	}

	stats := Stats{Total: len(records)}
	out := make([]domain.FaultRecord, 0, len(records))

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			r.saveOutput(out, opts)
			return stats, err
		}
		if progress.Done(i) {
			out = append(out, rec)
			stats.Skipped++
			continue
		}

		enriched, err := r.enricher.Enrich(ctx, rec)
		if err != nil {
			stats.Failed++
			r.log.Error("record enrichment failed",
				"index", i, "maker", rec.Maker, "model", rec.Model, "code", rec.ErrorCode, "error", err)
		} else {
			stats.Enriched++
		}
		out = append(out, enriched)

		if err := progress.Mark(i); err != nil {
			r.log.Warn("progress save failed", "error", err)
		}
		if (i+1)%opts.SaveEvery == 0 {
			if err := r.saveOutput(out, opts); err != nil {
				return stats, err
			}
			r.log.Info("batch saved", "processed", i+1, "total", len(records))
		}
	}

	if err := r.saveOutput(out, opts); err != nil {
		return stats, err
	}
	if err := progress.Remove(); err != nil {
		r.log.Warn("progress cleanup failed", "error", err)
	}
	r.log.Info("run complete",
		"total", stats.Total, "enriched", stats.Enriched, "skipped", stats.Skipped, "failed", stats.Failed)
	return stats, nil
}

func (r *Runner) saveOutput(records []domain.FaultRecord, opts RunOpts) error {
	ds := domain.Dataset{
		BoilerFaults: records,
		Metadata: domain.DatasetMetadata{
			EnrichedAt: r.deps.now().Format(time.RFC3339),
			ModelUsed:  r.deps.ModelName,
			TestMode:   opts.TestMode,
		},
	}
	return dataset.Write(opts.OutputPath, ds)
}
