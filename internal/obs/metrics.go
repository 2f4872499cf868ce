package obs

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Shared HTTP metrics.
var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	serviceReady = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "service_ready",
		Help: "1 when the service considers itself ready.",
	})

	shareOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "share_grant_operations_total",
			Help: "Share grant store operations by outcome.",
		},
		[]string{"op", "outcome"},
	)

	trendLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trend_resolutions_total",
			Help: "Market trend resolutions by outcome.",
		},
		[]string{"outcome"},
	)
)

// Init registers all metrics in the default registry.
func Init() {
	prometheus.MustRegister(
		httpInFlight,
		httpRequestsTotal,
		httpRequestDuration,
		serviceReady,
		shareOpsTotal,
		trendLookupsTotal,
	)
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// SetReady flips the readiness gauge.
func SetReady(ready bool) {
	if ready {
		serviceReady.Set(1)
		return
	}
	serviceReady.Set(0)
}

// ShareOp records a share store operation (create/update/delete/upsert).
func ShareOp(op, outcome string) {
	shareOpsTotal.WithLabelValues(op, outcome).Inc()
}

// TrendLookup records the outcome of a market trend resolution.
func TrendLookup(outcome string) {
	trendLookupsTotal.WithLabelValues(outcome).Inc()
}

// Instrument wraps a handler with RPS/latency/in-flight measurement.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := CanonicalPath(r.URL.Path)
		method := r.Method

		httpInFlight.Inc()
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, code: 200}
		next.ServeHTTP(sw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(sw.code)

		httpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpInFlight.Dec()
	})
}

// CanonicalPath collapses resource identifiers so metric labels stay bounded.
func CanonicalPath(p string) string {
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "/"
	}
	seg := strings.Split(strings.Trim(p, "/"), "/")
	switch {
	case len(seg) >= 2 && seg[0] == "homes":
		switch len(seg) {
		case 3:
			if seg[2] == "shares" {
				return "/homes/:id/shares"
			}
		case 4:
			if seg[2] == "shares" {
				return "/homes/:id/shares/:share_id"
			}
		}
	case len(seg) == 3 && seg[0] == "shared" && seg[1] == "homes":
		return "/shared/homes/:id"
	case len(seg) == 3 && seg[0] == "wishlists":
		if seg[2] == "supply-snapshot" || seg[2] == "matched-homes" {
			return "/wishlists/:id/" + seg[2]
		}
	}
	return p
}

// statusWriter is a local copy so the wrapper can observe the response code.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
