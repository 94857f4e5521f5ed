package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/BoilerWiseAI/boilerwise-mvp/engine/domain"
	"github.com/BoilerWiseAI/boilerwise-mvp/engine/index"
	"github.com/BoilerWiseAI/boilerwise-mvp/pkg/resilience"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RemoteOpts configures the remote catalog client.
type RemoteOpts struct {
	// Timeout bounds each query. A timed-out query is a fetch failure and
	// collapses to an empty result.
	Timeout time.Duration
	Breaker resilience.BreakerOpts
}

// DefaultRemoteOpts provides sensible defaults.
var DefaultRemoteOpts = RemoteOpts{
	Timeout: 10 * time.Second,
	Breaker: resilience.DefaultBreakerOpts,
}

// Remote serves the catalog contract over the read API. Any transport
// failure (non-success status, network error, malformed body) is absorbed
// at the query boundary into the same empty/not-found outcomes the embedded
// index produces, so rendering code never distinguishes "no data" from
// "fetch failed". The distinction is still logged.
type Remote struct {
	baseURL string
	client  *http.Client
	breaker *resilience.Breaker
	log     *slog.Logger
}

var _ Catalog = (*Remote)(nil)

// NewRemote creates a remote catalog client for the API at baseURL.
func NewRemote(baseURL string, opts RemoteOpts, log *slog.Logger) *Remote {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultRemoteOpts.Timeout
	}
	return &Remote{
		baseURL: baseURL,
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   opts.Timeout,
		},
		breaker: resilience.NewBreaker(opts.Breaker),
		log:     log,
	}
}

// errNotFound marks a 404 so Fault can map it distinctly.
var errNotFound = fmt.Errorf("remote: %w", domain.ErrFaultNotFound)

// get fetches path and decodes the JSON body into out. A 404 is the
// backend's ordinary answer for an unknown key, not a backend fault, so it
// is reported as errNotFound without counting toward tripping the breaker.
func (r *Remote) get(ctx context.Context, path string, out any) error {
	notFound := false
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
		if err != nil {
			return err
		}
		resp, err := r.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", path, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			notFound = true
			return nil
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("fetch %s: status %d", path, resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if notFound {
		return errNotFound
	}
	return nil
}

// absorb logs a query failure and reports it as an empty outcome.
func (r *Remote) absorb(op string, err error) {
	if r.log != nil {
		r.log.Warn("remote catalog query failed", "op", op, "error", err)
	}
}

func seg(s string) string { return url.PathEscape(s) }

func (r *Remote) Makers(ctx context.Context) []string {
	var body struct {
		Makers []string `json:"makers"`
	}
	if err := r.get(ctx, "/api/makers", &body); err != nil {
		r.absorb("makers", err)
		return nil
	}
	return body.Makers
}

func (r *Remote) Models(ctx context.Context, maker string) []string {
	var body struct {
		Models []string `json:"models"`
	}
	// No maker selected asks for the union of models across all makers.
	path := "/api/models"
	if maker != "" {
		path += "/" + seg(maker)
	}
	if err := r.get(ctx, path, &body); err != nil {
		r.absorb("models", err)
		return nil
	}
	return body.Models
}

func (r *Remote) FaultCodes(ctx context.Context, maker, model string) []index.CodeEntry {
	var body struct {
		Faults []index.CodeEntry `json:"faults"`
	}
	if err := r.get(ctx, "/api/faults/"+seg(maker)+"/"+seg(model), &body); err != nil {
		r.absorb("fault_codes", err)
		return nil
	}
	return body.Faults
}

func (r *Remote) Fault(ctx context.Context, maker, model, code string) (domain.FaultRecord, error) {
	var rec domain.FaultRecord
	err := r.get(ctx, "/api/fault/"+seg(maker)+"/"+seg(model)+"/"+seg(code), &rec)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, domain.ErrFaultNotFound) {
		// Transport failures collapse to not-found for callers.
		r.absorb("fault", err)
	}
	return domain.FaultRecord{}, domain.ErrFaultNotFound
}

func (r *Remote) AllFaults(ctx context.Context) []domain.FaultKey {
	var body struct {
		Faults []domain.FaultKey `json:"faults"`
	}
	if err := r.get(ctx, "/api/all-faults", &body); err != nil {
		r.absorb("all_faults", err)
		return nil
	}
	return body.Faults
}
