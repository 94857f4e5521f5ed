// Command enrich runs a boiler fault dataset through the completion
// pipeline, adding AI overviews, rewritten troubleshooting steps, and
// repair resource links, then writes the enriched dataset for the API
// server to load.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/BoilerWiseAI/boilerwise-mvp/engine/dataset"
	"github.com/BoilerWiseAI/boilerwise-mvp/engine/enrich"
	"github.com/BoilerWiseAI/boilerwise-mvp/pkg/fn"
	"github.com/BoilerWiseAI/boilerwise-mvp/pkg/llm"
	"github.com/BoilerWiseAI/boilerwise-mvp/pkg/metrics"
	"github.com/BoilerWiseAI/boilerwise-mvp/pkg/natsutil"
	"github.com/BoilerWiseAI/boilerwise-mvp/pkg/resilience"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

var met = metrics.New()

// Enrichment metrics
var (
	mRecordsEnriched = met.Counter("boilerwise_enrich_records_total", "Records successfully enriched")
	mRecordsFailed   = met.Counter("boilerwise_enrich_failures_total", "Records kept with failure metadata")
	mRecordsSkipped  = met.Counter("boilerwise_enrich_skipped_total", "Records skipped via resume progress")
	mAPICalls        = met.Counter("boilerwise_enrich_api_calls_total", "Completion API calls made")
	mAPIErrors       = met.Counter("boilerwise_enrich_api_errors_total", "Completion API calls that failed")
	mAPIDur          = met.Histogram("boilerwise_enrich_api_duration_seconds", "Completion API call latency", nil)
)

// meteredCompleter counts and times every completion call.
type meteredCompleter struct {
	inner llm.Completer
}

func (m meteredCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	out, err := m.inner.Complete(ctx, prompt)
	mAPIDur.Since(start)
	mAPICalls.Inc()
	if err != nil {
		mAPIErrors.Inc()
	}
	return out, err
}

func main() {
	var (
		input        = flag.String("input", "data/boiler_data.json", "input dataset file")
		output       = flag.String("output", "data/enriched_boiler_data.json", "enriched output file")
		model        = flag.String("model", "gpt-5-mini-2025-08-07", "completion model")
		apiBase      = flag.String("api-base", llm.DefaultBaseURL, "completion API base URL")
		batchSize    = flag.Int("batch-size", 10, "save output every N records")
		rateLimit    = flag.Float64("rate", 1.0, "completion calls per second")
		testMode     = flag.Bool("test", false, "only process the first few records")
		testCount    = flag.Int("test-count", 5, "records to process in test mode")
		progressFile = flag.String("progress", "", "progress file (default derived from -output)")
		natsURL      = flag.String("nats", "", "publish a catalog update event to this NATS URL when done")
		metricsPort  = flag.Int("metrics-port", 9092, "metrics listen port")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		logger.Error("OPENAI_API_KEY is not set")
		os.Exit(1)
	}

	met.CollectRuntime("boilerwise_enrich", 15*time.Second)
	met.ServeAsync(*metricsPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := enrich.NewRunner(enrich.Deps{
		Completer: meteredCompleter{inner: llm.New(*apiBase, apiKey, *model)},
		Limiter:   resilience.NewLimiter(resilience.LimiterOpts{Rate: *rateLimit, Burst: 1}),
		Retry:     fn.DefaultRetry,
		Logger:    logger,
		ModelName: *model,
	})

	runID := uuid.NewString()
	logger.Info("starting enrichment run",
		"run_id", runID, "input", *input, "output", *output, "model", *model, "test_mode", *testMode)

	stats, err := runner.Run(ctx, enrich.RunOpts{
		InputPath:    *input,
		OutputPath:   *output,
		ProgressPath: *progressFile,
		SaveEvery:    *batchSize,
		TestMode:     *testMode,
		TestCount:    *testCount,
	})
	mRecordsEnriched.Add(int64(stats.Enriched))
	mRecordsFailed.Add(int64(stats.Failed))
	mRecordsSkipped.Add(int64(stats.Skipped))
	if err != nil {
		logger.Error("enrichment run aborted", "run_id", runID, "err", err)
		os.Exit(1)
	}

	if *natsURL != "" {
		publishUpdate(ctx, logger, *natsURL, *output, stats.Total, runID)
	}
}

// publishUpdate tells running API servers the enriched dataset changed.
func publishUpdate(ctx context.Context, logger *slog.Logger, url, path string, total int, runID string) {
	nc, err := nats.Connect(url)
	if err != nil {
		logger.Warn("nats connect failed, update event not published", "err", err)
		return
	}
	defer nc.Close()

	ev := dataset.UpdatedEvent{
		Path:         path,
		TotalEntries: total,
		EnrichedAt:   time.Now().UTC().Format(time.RFC3339),
		RunID:        runID,
	}
	if err := natsutil.Publish(ctx, nc, dataset.SubjectUpdated, ev); err != nil {
		logger.Warn("update event publish failed", "err", err)
		return
	}
	logger.Info("catalog update published", "subject", dataset.SubjectUpdated, "entries", total)
}
