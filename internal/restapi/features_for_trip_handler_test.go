package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/models"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/tripdb"
)

func TestFeaturesForTripHandler(t *testing.T) {
	api, server := newTestServer(t)
	seedStoredTrip(t, api.Store, "t1")

	resp := authedGet(t, server, "/api/features/trip/t1.json")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope models.FeaturesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))

	assert.Equal(t, []string{"t1"}, envelope.TripIDs)
	assert.Nil(t, envelope.Error)
	require.NotNil(t, envelope.Statistics)
	assert.Equal(t, 10, envelope.Statistics.StopCount)
	assert.InDelta(t, 3600.0, envelope.Statistics.TotalDistanceM, 1e-9)
}

func TestFeaturesForTripHandlerUnknownTrip(t *testing.T) {
	_, server := newTestServer(t)

	resp := authedGet(t, server, "/api/features/trip/nope.json")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFeaturesForTripHandlerMissingElevationProfile(t *testing.T) {
	api, server := newTestServer(t)
	seedStoredTrip(t, api.Store, "t1")

	// A trip with no stored profile: reuse t1's schedule rows under a new id.
	ctx := context.Background()
	require.NoError(t, api.Store.Queries.CreateTrip(ctx, tripdb.CreateTripParams{
		ID:        "t2",
		RouteID:   "r1",
		ServiceID: "weekday",
	}))
	trip, err := api.Store.GetTrip(ctx, "t1")
	require.NoError(t, err)
	for _, visit := range trip.Visits {
		require.NoError(t, api.Store.Queries.CreateStopVisit(ctx, tripdb.CreateStopVisitParams{
			TripID:           "t2",
			StopID:           visit.StopID,
			StopSequence:     int64(visit.Sequence),
			ArrivalSeconds:   int64(visit.ArrivalSeconds),
			DepartureSeconds: int64(visit.DepartureSeconds),
		}))
	}

	resp := authedGet(t, server, "/api/features/trip/t2.json")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFeaturesForTripsHandlerSingle(t *testing.T) {
	api, server := newTestServer(t)
	seedStoredTrip(t, api.Store, "t1")

	resp := authedGet(t, server, "/api/features/trips.json?ids=t1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope models.FeaturesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, []string{"t1"}, envelope.TripIDs)
	require.NotNil(t, envelope.Statistics)
	assert.Equal(t, 1, envelope.Statistics.TripCount)
}

func TestFeaturesForTripsHandlerMissingIDs(t *testing.T) {
	_, server := newTestServer(t)

	resp := authedGet(t, server, "/api/features/trips.json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFeaturesForTripsHandlerUnknownTrip(t *testing.T) {
	api, server := newTestServer(t)
	seedStoredTrip(t, api.Store, "t1")

	resp := authedGet(t, server, "/api/features/trips.json?ids=t1,missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthHandlerReturnsOK(t *testing.T) {
	_, server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/health.json")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
}

func TestHealthHandlerWithNilApplication(t *testing.T) {
	api := &RestAPI{
		Application: nil,
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health.json", nil)
	w := httptest.NewRecorder()

	api.healthHandler(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var health HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&health))
	assert.Equal(t, "unavailable", health.Status)
}

func TestMetricsEndpointExposed(t *testing.T) {
	api, server := newTestServer(t)
	seedStoredTrip(t, api.Store, "t1")

	_ = authedGet(t, server, "/api/features/trip/t1.json")

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
