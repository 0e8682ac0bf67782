package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/elevation"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/gtfstime"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/timetable"
)

func mustVisit(t *testing.T, stopID string, sequence int, arrival, departure string) timetable.StopVisit {
	t.Helper()
	v, err := timetable.NewVisit(stopID, "Stop "+stopID, nil, sequence, arrival, departure)
	require.NoError(t, err)
	return v
}

func presegmented(t *testing.T, distances, altitudes []float64) elevation.Profile {
	t.Helper()
	require.Equal(t, len(distances), len(altitudes))
	points := make([]elevation.Point, len(distances))
	for i := range distances {
		points[i] = elevation.Point{CumulativeDistanceM: distances[i], AltitudeM: altitudes[i]}
	}
	profile, err := elevation.NewPresegmentedProfile(points)
	require.NoError(t, err)
	return profile
}

func TestBuildSegmentsBasics(t *testing.T) {
	trip := timetable.Trip{ID: "t1", Visits: []timetable.StopVisit{
		mustVisit(t, "a", 1, "08:00:00", "08:00:30"),
		mustVisit(t, "b", 2, "08:03:00", "08:03:20"),
		mustVisit(t, "c", 3, "08:06:00", "08:06:00"),
	}}
	schedule, err := timetable.Combine([]timetable.Trip{trip})
	require.NoError(t, err)

	profile := presegmented(t, []float64{0, 500, 1100}, []float64{300, 312, 306})
	matched, err := elevation.Match(schedule, profile)
	require.NoError(t, err)

	segments, err := BuildSegments(schedule, matched, profile)
	require.NoError(t, err)
	require.Len(t, segments, 2)

	first := segments[0]
	assert.Equal(t, "a", first.FromStopID)
	assert.Equal(t, "b", first.ToStopID)
	assert.Equal(t, 500.0, first.DistanceM)
	assert.Equal(t, 150.0, first.DrivingDurationS) // 08:00:30 -> 08:03:00
	assert.Equal(t, 30.0, first.DwellS)            // standing at "a" before departure
	assert.Equal(t, 12.0, first.AscentM)
	assert.Equal(t, 0.0, first.DescentM)
	assert.InDelta(t, 12.0/500.0, first.Gradient, 1e-12)
	assert.False(t, first.Boundary)

	second := segments[1]
	assert.Equal(t, 20.0, second.DwellS)
	assert.Equal(t, 6.0, second.DescentM)
	assert.InDelta(t, -6.0/600.0, second.Gradient, 1e-12)
}

func TestBuildSegmentsZeroDistanceGradient(t *testing.T) {
	trip := timetable.Trip{ID: "t1", Visits: []timetable.StopVisit{
		mustVisit(t, "a", 1, "08:00:00", "08:00:00"),
		mustVisit(t, "b", 2, "08:01:00", "08:01:00"),
	}}
	schedule, err := timetable.Combine([]timetable.Trip{trip})
	require.NoError(t, err)

	profile := presegmented(t, []float64{100, 100}, []float64{300, 300})
	matched, err := elevation.Match(schedule, profile)
	require.NoError(t, err)

	segments, err := BuildSegments(schedule, matched, profile)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, 0.0, segments[0].DistanceM)
	assert.Equal(t, 0.0, segments[0].Gradient)
}

func TestBuildSegmentsSumsIntermediateRawDeltas(t *testing.T) {
	// Two stops bracketing four raw samples: the hill between them must show
	// up in both ascent and descent, not just the endpoint delta.
	trip := timetable.Trip{ID: "t1", Visits: []timetable.StopVisit{
		{StopID: "a", Position: &timetable.Position{Lat: 46.0000, Lon: 8.95}, Sequence: 1, ArrivalSeconds: 28800, DepartureSeconds: 28800},
		{StopID: "b", Position: &timetable.Position{Lat: 46.0030, Lon: 8.95}, Sequence: 2, ArrivalSeconds: 28920, DepartureSeconds: 28920},
	}}
	schedule, err := timetable.Combine([]timetable.Trip{trip})
	require.NoError(t, err)

	points := []elevation.Point{
		{CumulativeDistanceM: 0, AltitudeM: 300, Position: &timetable.Position{Lat: 46.0000, Lon: 8.95}},
		{CumulativeDistanceM: 120, AltitudeM: 310, Position: &timetable.Position{Lat: 46.0010, Lon: 8.95}},
		{CumulativeDistanceM: 240, AltitudeM: 304, Position: &timetable.Position{Lat: 46.0020, Lon: 8.95}},
		{CumulativeDistanceM: 360, AltitudeM: 308, Position: &timetable.Position{Lat: 46.0030, Lon: 8.95}},
	}
	profile, err := elevation.NewRawProfile(points)
	require.NoError(t, err)

	matched, err := elevation.Match(schedule, profile)
	require.NoError(t, err)

	segments, err := BuildSegments(schedule, matched, profile)
	require.NoError(t, err)
	require.Len(t, segments, 1)

	assert.Equal(t, 360.0, segments[0].DistanceM)
	assert.Equal(t, 14.0, segments[0].AscentM)  // +10 and +4
	assert.Equal(t, 6.0, segments[0].DescentM)  // -6 in the middle
	assert.InDelta(t, 8.0/360.0, segments[0].Gradient, 1e-12) // endpoints only
}

func TestBuildSegmentsBoundaryFlag(t *testing.T) {
	outbound := timetable.Trip{ID: "t1", Visits: []timetable.StopVisit{
		mustVisit(t, "a", 1, "08:00:00", "08:00:00"),
		mustVisit(t, "b", 2, "08:05:00", "08:05:00"),
	}}
	inbound := timetable.Trip{ID: "t2", Visits: []timetable.StopVisit{
		mustVisit(t, "b", 1, "08:20:00", "08:20:00"),
		mustVisit(t, "a", 2, "08:25:00", "08:25:00"),
	}}
	schedule, err := timetable.Combine([]timetable.Trip{outbound, inbound})
	require.NoError(t, err)

	profile := presegmented(t,
		[]float64{0, 1200, 1200, 2400},
		[]float64{300, 320, 320, 300})
	matched, err := elevation.Match(schedule, profile)
	require.NoError(t, err)

	segments, err := BuildSegments(schedule, matched, profile)
	require.NoError(t, err)

	// N1+N2-1 segments, exactly one of them a boundary.
	require.Len(t, segments, 3)
	assert.False(t, segments[0].Boundary)
	assert.True(t, segments[1].Boundary)
	assert.False(t, segments[2].Boundary)
	assert.Len(t, nonBoundary(segments), 2)
}

func TestBuildSegmentsRejectsOrderingViolation(t *testing.T) {
	// Arrival at the next stop before departure from the previous one.
	trip := timetable.Trip{ID: "t1", Visits: []timetable.StopVisit{
		mustVisit(t, "a", 1, "08:10:00", "08:10:00"),
		mustVisit(t, "b", 2, "08:05:00", "08:05:00"),
	}}
	schedule := timetable.CombinedSchedule{
		TripIDs:      []string{"t1"},
		Visits:       trip.Visits,
		TripBoundary: []bool{false, false},
	}

	profile := presegmented(t, []float64{0, 500}, []float64{300, 310})
	matched, err := elevation.Match(schedule, profile)
	require.NoError(t, err)

	_, err = BuildSegments(schedule, matched, profile)
	require.Error(t, err)

	var negative *gtfstime.NegativeDurationError
	assert.ErrorAs(t, err, &negative)
}
