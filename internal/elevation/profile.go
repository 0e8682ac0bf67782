// Package elevation models terrain elevation traces and aligns them with the
// stops of a combined schedule. A profile is either raw (sampled
// independently of stop locations, matched geometrically) or pre-segmented
// (already one sample per stop, matched positionally); both matchers produce
// the same per-stop output contract.
package elevation

import (
	"fmt"

	"github.com/twpayne/go-polyline"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/timetable"
)

// Point is a single elevation sample along the route.
type Point struct {
	CumulativeDistanceM float64
	AltitudeM           float64
	Position            *timetable.Position
}

// Profile is an ordered, non-decreasing-by-distance elevation trace.
type Profile struct {
	Presegmented bool
	Points       []Point
}

// MissingElevationError reports that no usable elevation data was supplied.
// The pipeline fails outright rather than estimating distances some other
// way; a haversine fallback was ruled out as a correctness hazard.
type MissingElevationError struct {
	Reason string
}

func (e *MissingElevationError) Error() string {
	return fmt.Sprintf("missing elevation data: %s", e.Reason)
}

// MatchError reports that an elevation profile could not be aligned with the
// schedule's stops.
type MatchError struct {
	StopID string
	Reason string
}

func (e *MatchError) Error() string {
	if e.StopID == "" {
		return fmt.Sprintf("elevation match failed: %s", e.Reason)
	}
	return fmt.Sprintf("elevation match failed at stop %s: %s", e.StopID, e.Reason)
}

// NewRawProfile builds a raw (independently sampled) profile.
func NewRawProfile(points []Point) (Profile, error) {
	if err := validatePoints(points); err != nil {
		return Profile{}, err
	}
	return Profile{Presegmented: false, Points: points}, nil
}

// NewPresegmentedProfile builds a profile whose points are already aligned
// one-to-one with stops.
func NewPresegmentedProfile(points []Point) (Profile, error) {
	if err := validatePoints(points); err != nil {
		return Profile{}, err
	}
	return Profile{Presegmented: true, Points: points}, nil
}

func validatePoints(points []Point) error {
	if len(points) == 0 {
		return &MissingElevationError{Reason: "profile has no points"}
	}
	for i := 1; i < len(points); i++ {
		if points[i].CumulativeDistanceM < points[i-1].CumulativeDistanceM {
			return &MatchError{Reason: fmt.Sprintf("cumulative distance decreases at point %d", i)}
		}
	}
	return nil
}

// PointsFromPolyline builds elevation points whose positions arrive as a
// Google encoded polyline instead of per-point coordinates. The polyline
// must decode to exactly one coordinate per sample.
func PointsFromPolyline(encoded string, distancesM, altitudesM []float64) ([]Point, error) {
	if len(distancesM) != len(altitudesM) {
		return nil, &MatchError{Reason: fmt.Sprintf("got %d distances for %d altitudes", len(distancesM), len(altitudesM))}
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, &MatchError{Reason: fmt.Sprintf("decoding polyline: %v", err)}
	}
	if len(coords) != len(distancesM) {
		return nil, &MatchError{Reason: fmt.Sprintf("polyline decodes to %d coordinates for %d samples", len(coords), len(distancesM))}
	}

	points := make([]Point, len(coords))
	for i, coord := range coords {
		points[i] = Point{
			CumulativeDistanceM: distancesM[i],
			AltitudeM:           altitudesM[i],
			Position:            &timetable.Position{Lat: coord[0], Lon: coord[1]},
		}
	}
	return points, nil
}
