// Package app wires the service's shared dependencies together for the HTTP
// handlers and middleware.
package app

import (
	"log/slog"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/appconf"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/clock"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/metrics"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/tripdb"
)

// Application holds the dependencies for our HTTP handlers, helpers, and
// middleware.
type Application struct {
	Config  appconf.Config
	Logger  *slog.Logger
	Store   *tripdb.Client
	Clock   clock.Clock
	Metrics *metrics.Metrics
}
