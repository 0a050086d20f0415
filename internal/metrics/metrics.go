package metrics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	endpointCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_endpoint_calls_total",
		Help: "Total number of calls per endpoint.",
	}, []string{"endpoint", "method"})

	endpointErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_endpoint_errors_total",
		Help: "Total number of 5xx responses per endpoint.",
	}, []string{"endpoint", "method"})

	guardDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_guard_decisions_total",
		Help: "Guard outcomes per navigation.",
	}, []string{"outcome"})
)

func GuardDecision(denied bool) {
	outcome := "allow"
	if denied {
		outcome = "redirect"
	}
	guardDecisions.WithLabelValues(outcome).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware counts calls and server errors per route pattern. The
// pattern keeps label cardinality bounded on parameterized routes; it is
// only known after routing, so it is read once the handler returns.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		endpoint := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				endpoint = p
			}
		}
		endpointCalls.WithLabelValues(endpoint, r.Method).Inc()
		if rec.status >= 500 {
			endpointErrors.WithLabelValues(endpoint, r.Method).Inc()
		}
	})
}

// Handler serves the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
