package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"hearth.homes/internal/audit"
	"hearth.homes/internal/obs"
	"hearth.homes/internal/registry"
	"hearth.homes/internal/stream"
	"hearth.homes/internal/trends"
)

// Request bodies are bounded to keep memory use predictable.
const maxBodyBytes = 1_000_000

// ReadyProbe reports readiness (for example, a DB ping when the Postgres
// share store is enabled).
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// API is the HTTP layer of the buyer registry.
type API struct {
	mux        *http.ServeMux
	readyProbe ReadyProbe
	version    string

	homes      registry.HomeCatalog
	shares     registry.ShareStore
	wishlists  registry.WishlistCatalog
	visibility *registry.Visibility
	trends     *trends.Resolver
	stream     *stream.Stream

	rateBurst  int
	ratePerSec int
}

// New wires the API to its stores and resolvers.
func New(rp ReadyProbe, version string, homes registry.HomeCatalog, shares registry.ShareStore,
	wishlists registry.WishlistCatalog, tr *trends.Resolver, st *stream.Stream) *API {
	a := &API{
		mux:        http.NewServeMux(),
		readyProbe: rp,
		version:    version,
		homes:      homes,
		shares:     shares,
		wishlists:  wishlists,
		visibility: registry.NewVisibility(shares),
		trends:     tr,
		stream:     st,
		rateBurst:  20,
		ratePerSec: 10,
	}

	// health/ready/info
	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	// dev token issuance + live share events
	a.mux.HandleFunc("/v1/auth/token", a.handleAuthToken)
	a.mux.HandleFunc("/v1/events", a.Stream)

	// registry surface
	a.mux.HandleFunc("/market-trends", a.handleMarketTrends)
	a.mux.HandleFunc("/homes/", a.handleHomeShares)
	a.mux.HandleFunc("/shared/homes/", a.handleSharedHome)
	a.mux.HandleFunc("/wishlists/", a.handleWishlists)

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, codeNotFound, "resource not found")
	})

	return a
}

// Handler assembles the middleware chain around the mux.
func (a *API) Handler() http.Handler {
	h := http.Handler(a.mux)
	h = a.withIdentity(h)
	h = MaxBodyBytes(h, maxBodyBytes)
	h = RateLimit(h, a.rateBurst, a.ratePerSec)
	h = CORS(h)
	h = SecurityHeaders(h)
	h = Recover(h)
	h = LoggingJSON(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

// --- Handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "hearth-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		obs.SetReady(false)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	obs.SetReady(true)
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "hearth-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}

// --- helpers ---

// Machine-readable error codes per the API error taxonomy.
const (
	codeValidation      = "validation_error"
	codeUnauthenticated = "unauthenticated"
	codeForbidden       = "forbidden"
	codeNotFound        = "not_found"
	codeRateLimited     = "rate_limited"
	codeInternal        = "internal_error"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeErrorPayload(w, r, status, map[string]any{
		"code":  code,
		"error": msg,
	})
}

func writeErrorPayload(w http.ResponseWriter, r *http.Request, status int, payload map[string]any) {
	if rid := RequestIDFromContext(r.Context()); rid != "" {
		payload["request_id"] = rid
	}
	writeJSON(w, status, payload)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, codeValidation, "method not allowed")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	reader := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer reader.Close()
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}

func handleRegistryError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, registry.ErrNotFound):
		writeError(w, r, http.StatusNotFound, codeNotFound, "not found")
	default:
		writeError(w, r, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

func (a *API) audit(ctx context.Context, event, resourceType, resourceID string, meta map[string]string) {
	fields := map[string]any{
		"resource_type": resourceType,
		"resource_id":   resourceID,
	}
	if len(meta) > 0 {
		fields["meta"] = meta
	}
	_ = audit.LogEvent(ctx, event, fields)
}
