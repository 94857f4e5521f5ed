// Package main implements the BoilerWise fault lookup API server.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/BoilerWiseAI/boilerwise-mvp/engine/dataset"
	"github.com/BoilerWiseAI/boilerwise-mvp/engine/domain"
	"github.com/BoilerWiseAI/boilerwise-mvp/pkg/faultnlp"
	"github.com/BoilerWiseAI/boilerwise-mvp/pkg/metrics"
	"github.com/BoilerWiseAI/boilerwise-mvp/pkg/mid"
	"github.com/BoilerWiseAI/boilerwise-mvp/pkg/natsutil"
	"github.com/nats-io/nats.go"
)

// Config holds all environment-based configuration.
type Config struct {
	Port        string
	DataFile    string
	CORSOrigin  string
	NATSURL     string
	MetricsPort int
}

func loadConfig() Config {
	return Config{
		Port:        envOr("PORT", "8080"),
		DataFile:    envOr("DATA_FILE", "data/enriched_boiler_data.json"),
		CORSOrigin:  envOr("CORS_ORIGIN", "*"),
		NATSURL:     envOr("NATS_URL", ""),
		MetricsPort: envOrInt("METRICS_PORT", 9091),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := loadConfig()

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Load fault catalog ---
	store := dataset.NewStore(cfg.DataFile, logger)
	if err := store.Load(); err != nil {
		// The server still starts; queries serve empty results until a
		// successful reload.
		logger.Error("initial catalog load failed", "file", cfg.DataFile, "err", err)
	} else {
		logger.Info("catalog loaded", "file", cfg.DataFile, "entries", store.Index().Len())
	}

	// --- Optional NATS reload trigger ---
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL)
		if err != nil {
			logger.Warn("nats connect failed, reload events disabled", "err", err)
		} else {
			defer nc.Close()
			_, err := natsutil.Subscribe(nc, dataset.SubjectUpdated, func(_ context.Context, ev dataset.UpdatedEvent) {
				logger.Info("catalog update event", "path", ev.Path, "entries", ev.TotalEntries, "run_id", ev.RunID)
				if err := store.Load(); err != nil {
					logger.Error("catalog reload failed", "err", err)
				}
			})
			if err != nil {
				logger.Warn("nats subscribe failed", "err", err)
			}
		}
	}

	// --- Metrics ---
	reg := metrics.New()
	reg.CollectRuntime("api", 15*time.Second)
	reg.ServeAsync(cfg.MetricsPort)

	// --- Build HTTP server ---
	handler := mid.Chain(newMux(store, logger),
		mid.Recover(logger),
		mid.RequestID(),
		mid.Logger(logger),
		mid.CORS(cfg.CORSOrigin),
		mid.Metrics(reg, "api"),
		mid.OTel("boilerwise-api"),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// --- Graceful shutdown ---
	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "port", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}

// newMux wires every route onto a fresh ServeMux.
func newMux(store *dataset.Store, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", handleRoot(store))
	mux.HandleFunc("GET /api/health", handleHealth(store))
	mux.HandleFunc("GET /api/makers", handleMakers(store))
	// The bare route serves the union of models across all makers.
	mux.HandleFunc("GET /api/models", handleModels(store))
	mux.HandleFunc("GET /api/models/{maker}", handleModels(store))
	mux.HandleFunc("GET /api/faults/{maker}/{model}", handleFaults(store))
	mux.HandleFunc("GET /api/fault/{maker}/{model}/{code}", handleFault(store, logger))
	mux.HandleFunc("GET /api/all-faults", handleAllFaults(store))
	mux.HandleFunc("GET /api/search", handleSearch(store))
	return mux
}

// --- Handlers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func handleRoot(store *dataset.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "boiler-api",
			"entries": store.Index().Len(),
		})
	}
}

func handleHealth(store *dataset.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		body := map[string]any{
			"status":  "ok",
			"entries": store.Index().Len(),
		}
		if t := store.LoadedAt(); !t.IsZero() {
			body["loaded_at"] = t.UTC().Format(time.RFC3339)
		}
		if err := store.Err(); err != nil {
			body["load_error"] = err.Error()
		}
		writeJSON(w, http.StatusOK, body)
	}
}

func handleMakers(store *dataset.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"makers": store.Index().Makers()})
	}
}

func handleModels(store *dataset.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maker := r.PathValue("maker")
		writeJSON(w, http.StatusOK, map[string]any{
			"maker":  maker,
			"models": store.Index().Models(maker),
		})
	}
}

func handleFaults(store *dataset.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maker := r.PathValue("maker")
		model := r.PathValue("model")
		writeJSON(w, http.StatusOK, map[string]any{
			"maker":  maker,
			"model":  model,
			"faults": store.Index().FaultCodes(maker, model),
		})
	}
}

func handleFault(store *dataset.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maker := r.PathValue("maker")
		model := r.PathValue("model")
		code := r.PathValue("code")

		rec, err := store.Index().Fault(maker, model, code)
		if err != nil {
			logger.Info("fault not found",
				"maker", maker, "model", model, "code", code,
				"request_id", mid.RequestIDFrom(r.Context()))
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Fault not found"})
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func handleAllFaults(store *dataset.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"faults": store.Index().Keys()})
	}
}

// SearchResponse is the JSON response for GET /api/search.
type SearchResponse struct {
	Maker   string               `json:"maker,omitempty"`
	Model   string               `json:"model,omitempty"`
	Code    string               `json:"code,omitempty"`
	Count   int                  `json:"count"`
	Results []domain.FaultRecord `json:"results"`
}

func handleSearch(store *dataset.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		maker := q.Get("maker")
		model := q.Get("model")
		code := q.Get("code")

		// Free-text queries fill in whatever the structured params left
		// empty.
		if text := q.Get("q"); text != "" {
			m := faultnlp.Extract(text)
			if maker == "" {
				maker = m.Maker
			}
			if model == "" {
				model = m.Model
			}
			if code == "" {
				code = m.Code
			}
		}

		results := store.Index().Filter(maker, model, code)
		if results == nil {
			results = []domain.FaultRecord{}
		}
		writeJSON(w, http.StatusOK, SearchResponse{
			Maker:   maker,
			Model:   model,
			Code:    code,
			Count:   len(results),
			Results: results,
		})
	}
}
