package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/clock"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/features"
)

func floatPtr(f float64) *float64 { return &f }

func TestTripModelToTrip(t *testing.T) {
	model := TripModel{
		TripID: "t1",
		Stops: []StopVisitModel{
			{StopID: "a", StopName: "Alpha", Lat: floatPtr(46.0), Lon: floatPtr(8.95), Sequence: 1, ArrivalTime: "08:00:00", DepartureTime: "08:00:30"},
			{StopID: "b", StopName: "Beta", Sequence: 2, ArrivalTime: "08:05:00", DepartureTime: "08:05:00"},
		},
	}

	trip, err := model.ToTrip()
	require.NoError(t, err)

	assert.Equal(t, "t1", trip.ID)
	require.Len(t, trip.Visits, 2)
	assert.Equal(t, 28800, trip.Visits[0].ArrivalSeconds)
	require.NotNil(t, trip.Visits[0].Position)
	assert.Equal(t, 46.0, trip.Visits[0].Position.Lat)
	assert.Nil(t, trip.Visits[1].Position)
}

func TestTripModelToTripRejectsBadTimes(t *testing.T) {
	model := TripModel{
		TripID: "t1",
		Stops: []StopVisitModel{
			{StopID: "a", Sequence: 1, ArrivalTime: "8 o'clock", DepartureTime: "08:00:30"},
		},
	}
	_, err := model.ToTrip()
	assert.Error(t, err)
}

func TestElevationProfileModelToProfile(t *testing.T) {
	model := ElevationProfileModel{
		Presegmented: true,
		Points: []ElevationPointModel{
			{CumulativeDistanceM: 0, AltitudeM: 300},
			{CumulativeDistanceM: 400, AltitudeM: 312},
		},
	}

	profile, err := model.ToProfile()
	require.NoError(t, err)
	assert.True(t, profile.Presegmented)
	require.Len(t, profile.Points, 2)
	assert.Equal(t, 312.0, profile.Points[1].AltitudeM)
}

func TestElevationProfileModelEmpty(t *testing.T) {
	_, err := ElevationProfileModel{}.ToProfile()
	assert.Error(t, err)
}

func TestFeaturesResponseMutualExclusion(t *testing.T) {
	c := clock.NewMockClock(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))

	success := NewFeaturesResponse([]string{"t1"}, &features.FeatureSet{StopCount: 10}, c)
	assert.NotNil(t, success.Statistics)
	assert.Nil(t, success.Error)
	assert.Equal(t, 200, success.Code)

	failure := NewFeaturesErrorResponse(422, []string{"t1"}, "missing elevation data", c)
	assert.Nil(t, failure.Statistics)
	require.NotNil(t, failure.Error)
	assert.Equal(t, "missing elevation data", *failure.Error)

	raw, err := json.Marshal(failure)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"statistics":null`)
	assert.Contains(t, string(raw), `"missing elevation data"`)
}
