// Package restapi exposes the feature computation pipeline over HTTP.
package restapi

import (
	"time"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/app"
)

// RestAPI holds the handlers and middleware for the JSON API.
type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI builds the API around the shared application dependencies.
func NewRestAPI(application *app.Application) *RestAPI {
	return &RestAPI{
		Application: application,
		rateLimiter: NewRateLimitMiddleware(
			application.Config.RateLimit,
			time.Second,
			application.Config.ApiKeys,
			application.Clock,
		),
	}
}

// Shutdown stops the API's background goroutines.
func (api *RestAPI) Shutdown() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}
