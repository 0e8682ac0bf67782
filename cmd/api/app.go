package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/app"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/appconf"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/clock"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/logging"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/metrics"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/restapi"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/tripdb"
)

const dbStatsInterval = 15 * time.Second

// ParseAPIKeys splits a comma-separated list of API keys, trimming
// whitespace and dropping empties.
func ParseAPIKeys(raw string) []string {
	keys := []string{}
	for _, key := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(key)
		if trimmed != "" {
			keys = append(keys, trimmed)
		}
	}
	return keys
}

// BuildApplication assembles the shared dependencies: logger, trip store
// (with GTFS and elevation data imported when sources are configured),
// clock and metrics.
func BuildApplication(cfg appconf.Config, storeCfg appconf.StoreConfigData) (*app.Application, error) {
	logger := logging.NewLogger(cfg.Verbose)
	slog.SetDefault(logger)

	store, err := tripdb.NewClient(tripdb.ConfigFromStoreData(storeCfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open trip store: %w", err)
	}

	if storeCfg.GtfsSource != "" {
		if err := store.ImportGTFSStatic(context.Background(), storeCfg.GtfsSource); err != nil {
			return nil, fmt.Errorf("failed to import GTFS data: %w", err)
		}
	}
	if storeCfg.ElevationPath != "" {
		if err := store.ImportElevationFromFile(context.Background(), storeCfg.ElevationPath); err != nil {
			return nil, fmt.Errorf("failed to import elevation profiles: %w", err)
		}
	}

	appMetrics := metrics.NewWithLogger(logger)
	appMetrics.StartDBStatsCollector(store.DB, dbStatsInterval)

	return &app.Application{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		Clock:   clock.RealClock{},
		Metrics: appMetrics,
	}, nil
}

// CreateServer builds the HTTP server around the API's handler chain.
func CreateServer(coreApp *app.Application, cfg appconf.Config) (*http.Server, *restapi.RestAPI) {
	api := restapi.NewRestAPI(coreApp)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return srv, api
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests and
// releases the store and metrics collectors.
func Run(coreApp *app.Application) error {
	srv, api := CreateServer(coreApp, coreApp.Config)
	defer api.Shutdown()

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		logging.LogOperation(coreApp.Logger, "shutting_down_server",
			slog.String("signal", s.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	logging.LogOperation(coreApp.Logger, "starting_server",
		slog.String("addr", srv.Addr),
		slog.String("env", coreApp.Config.Env.String()))

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdownError; err != nil {
		return err
	}

	coreApp.Metrics.Shutdown()
	logging.SafeCloseWithLogging(coreApp.Store, coreApp.Logger, "trip store")

	logging.LogOperation(coreApp.Logger, "server_stopped")
	return nil
}
