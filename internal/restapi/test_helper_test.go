// Shared fixtures for handler tests: an API backed by an in-memory trip
// store seeded with a reference trip and elevation profile.
package restapi

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/app"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/appconf"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/clock"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/elevation"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/logging"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/metrics"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/timetable"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/tripdb"
)

const testAPIKey = "test"

func newTestAPI(t *testing.T) *RestAPI {
	t.Helper()

	store, err := tripdb.NewClient(tripdb.NewConfig(":memory:", appconf.Test, false))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	application := &app.Application{
		Config: appconf.Config{
			Env:       appconf.Test,
			ApiKeys:   []string{testAPIKey},
			RateLimit: 100,
		},
		Logger:  logging.NewLogger(false),
		Store:   store,
		Clock:   clock.NewMockClock(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)),
		Metrics: metrics.New(),
	}

	api := NewRestAPI(application)
	t.Cleanup(api.Shutdown)
	return api
}

func newTestServer(t *testing.T) (*RestAPI, *httptest.Server) {
	t.Helper()

	api := newTestAPI(t)
	server := httptest.NewServer(api.Handler())
	t.Cleanup(server.Close)
	return api, server
}

// seedStoredTrip inserts a ten-stop trip on a climb-and-descend profile,
// with an elevation profile stored under the trip id.
func seedStoredTrip(t *testing.T, store *tripdb.Client, tripID string) {
	t.Helper()
	ctx := context.Background()

	altitudes := []float64{300, 310, 290, 298, 283, 271, 277, 259, 281, 265}

	require.NoError(t, store.Queries.CreateTrip(ctx, tripdb.CreateTripParams{
		ID:        tripID,
		RouteID:   "r1",
		ServiceID: "weekday",
	}))

	points := make([]elevation.Point, len(altitudes))
	for i, altitude := range altitudes {
		stopID := tripID + "-s" + string(rune('a'+i))
		lat := 46.0 + float64(i)*0.004
		lon := 8.95 + float64(i)*0.004

		require.NoError(t, store.Queries.CreateStop(ctx, tripdb.CreateStopParams{
			ID:   stopID,
			Name: sql.NullString{String: "Stop " + stopID, Valid: true},
			Lat:  sql.NullFloat64{Float64: lat, Valid: true},
			Lon:  sql.NullFloat64{Float64: lon, Valid: true},
		}))

		arrival := 28800 + i*75
		departure := arrival + 15
		if i == 0 || i == len(altitudes)-1 {
			departure = arrival
		}
		require.NoError(t, store.Queries.CreateStopVisit(ctx, tripdb.CreateStopVisitParams{
			TripID:           tripID,
			StopID:           stopID,
			StopSequence:     int64(i + 1),
			ArrivalSeconds:   int64(arrival),
			DepartureSeconds: int64(departure),
		}))

		points[i] = elevation.Point{
			CumulativeDistanceM: float64(i) * 400,
			AltitudeM:           altitude,
			Position:            &timetable.Position{Lat: lat, Lon: lon},
		}
	}

	profile, err := elevation.NewRawProfile(points)
	require.NoError(t, err)
	require.NoError(t, store.PutElevationProfile(ctx, tripID, profile))
}

func authedGet(t *testing.T, server *httptest.Server, path string) *http.Response {
	t.Helper()

	separator := "?"
	for _, c := range path {
		if c == '?' {
			separator = "&"
		}
	}
	resp, err := http.Get(server.URL + path + separator + "key=" + testAPIKey)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}
