package restapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/app"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/appconf"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/clock"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/logging"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/metrics"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/tripdb"
)

func newDevelopmentServer(t *testing.T) (*RestAPI, *httptest.Server) {
	t.Helper()

	store, err := tripdb.NewClient(tripdb.NewConfig(":memory:", appconf.Test, false))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	api := NewRestAPI(&app.Application{
		Config: appconf.Config{
			Env:       appconf.Development,
			ApiKeys:   []string{testAPIKey},
			RateLimit: 100,
		},
		Logger:  logging.NewLogger(false),
		Store:   store,
		Clock:   clock.NewMockClock(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)),
		Metrics: metrics.New(),
	})
	t.Cleanup(api.Shutdown)

	server := httptest.NewServer(api.Handler())
	t.Cleanup(server.Close)
	return api, server
}

func TestDebugFeaturesHandlerDumpsFeatureSet(t *testing.T) {
	api, server := newDevelopmentServer(t)
	seedStoredTrip(t, api.Store, "t1")

	resp, err := http.Get(server.URL + "/debug/features/t1")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "trip t1")
	assert.Contains(t, string(body), "FeatureSet")
}

func TestDebugRouteNotRegisteredOutsideDevelopment(t *testing.T) {
	api, server := newTestServer(t)
	seedStoredTrip(t, api.Store, "t1")

	resp, err := http.Get(server.URL + "/debug/features/t1")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
