package restapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/appconf"
)

// SetRoutes registers all endpoints on the given mux. The metrics
// middleware wraps each route rather than the whole mux so r.Pattern is
// populated when it records the path label.
func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	withMetrics := MetricsHandler(api.Metrics)

	mux.Handle("POST /api/features/compute.json", withMetrics(api.requireValidAPIKey(http.HandlerFunc(api.computeFeaturesHandler))))
	mux.Handle("GET /api/features/trip/{id}", withMetrics(api.requireValidAPIKey(http.HandlerFunc(api.featuresForTripHandler))))
	mux.Handle("GET /api/features/trips.json", withMetrics(api.requireValidAPIKey(http.HandlerFunc(api.featuresForTripsHandler))))

	mux.Handle("GET /api/health.json", withMetrics(http.HandlerFunc(api.healthHandler)))

	if api.Metrics != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(api.Metrics.Registry, promhttp.HandlerOpts{}))
	}

	if api.Config.Env == appconf.Development {
		mux.HandleFunc("GET /debug/features/{id}", api.debugFeaturesHandler)
	}
}

// Handler builds the full HTTP handler: routes wrapped in request ID,
// logging and rate limiting middleware.
func (api *RestAPI) Handler() http.Handler {
	mux := http.NewServeMux()
	api.SetRoutes(mux)

	var handler http.Handler = mux
	handler = api.rateLimiter.Handler()(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	handler = RequestIDMiddleware(handler)

	return handler
}

func (api *RestAPI) requireValidAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.sendUnauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
