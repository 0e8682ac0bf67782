// Package features derives the descriptor set consumed by the downstream
// energy-consumption estimator: per-segment quantities between consecutive
// stops, and the 58 aggregate scalars over a whole trip or combined trip
// sequence. All computation is pure and safe to run concurrently.
package features

import (
	"fmt"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/elevation"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/gtfstime"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/timetable"
)

// Segment is the travel leg between two consecutive stop visits. Boundary
// segments span the end of one trip and the start of the next in a combined
// schedule; they are kept for bookkeeping but excluded from every aggregate.
type Segment struct {
	FromStopID       string
	ToStopID         string
	DistanceM        float64
	DrivingDurationS float64
	// DwellS is the standing time at the departure stop, before leaving.
	DwellS         float64
	AscentM        float64
	DescentM       float64
	Gradient       float64
	StartAltitudeM float64
	EndAltitudeM   float64
	Boundary       bool
}

// InsufficientSegmentsError reports that no valid segment remains to
// aggregate, e.g. a single-stop trip.
type InsufficientSegmentsError struct {
	StopCount int
}

func (e *InsufficientSegmentsError) Error() string {
	return fmt.Sprintf("insufficient segments: %d stops leave nothing to aggregate", e.StopCount)
}

// BuildSegments derives one segment per adjacent visit pair. The matched
// elevations must be in visit order, one per visit. For raw profiles the
// ascent and descent sum every intermediate sample delta inside the segment;
// pre-segmented profiles contribute the single endpoint delta.
func BuildSegments(schedule timetable.CombinedSchedule, matched []elevation.StopElevation, profile elevation.Profile) ([]Segment, error) {
	if len(matched) != len(schedule.Visits) {
		return nil, fmt.Errorf("got %d matched elevations for %d visits", len(matched), len(schedule.Visits))
	}

	segments := make([]Segment, 0, max(len(schedule.Visits)-1, 0))
	for i := 0; i+1 < len(schedule.Visits); i++ {
		from := schedule.Visits[i]
		to := schedule.Visits[i+1]

		dwell, err := gtfstime.Duration(from.ArrivalSeconds, from.DepartureSeconds)
		if err != nil {
			return nil, fmt.Errorf("dwell at stop %s: %w", from.StopID, err)
		}
		driving, err := gtfstime.Duration(from.DepartureSeconds, to.ArrivalSeconds)
		if err != nil {
			return nil, fmt.Errorf("driving %s -> %s: %w", from.StopID, to.StopID, err)
		}

		distance := matched[i+1].CumulativeDistanceM - matched[i].CumulativeDistanceM
		ascent, descent := sumAltitudeDeltas(profile, matched[i].PointIndex, matched[i+1].PointIndex)

		gradient := 0.0
		if distance > 0 {
			gradient = (matched[i+1].AltitudeM - matched[i].AltitudeM) / distance
		}

		segments = append(segments, Segment{
			FromStopID:       from.StopID,
			ToStopID:         to.StopID,
			DistanceM:        distance,
			DrivingDurationS: float64(driving),
			DwellS:           float64(dwell),
			AscentM:          ascent,
			DescentM:         descent,
			Gradient:         gradient,
			StartAltitudeM:   matched[i].AltitudeM,
			EndAltitudeM:     matched[i+1].AltitudeM,
			Boundary:         schedule.TripBoundary[i],
		})
	}
	return segments, nil
}

// sumAltitudeDeltas accumulates positive deltas into ascent and the
// magnitude of negative deltas into descent across the profile samples
// bracketed by the two matched indices.
func sumAltitudeDeltas(profile elevation.Profile, fromIndex, toIndex int) (ascent, descent float64) {
	lo, hi := fromIndex, toIndex
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := lo; i < hi; i++ {
		delta := profile.Points[i+1].AltitudeM - profile.Points[i].AltitudeM
		if delta > 0 {
			ascent += delta
		} else {
			descent += -delta
		}
	}
	return ascent, descent
}

// nonBoundary filters out boundary segments; every aggregate operates on the
// result.
func nonBoundary(segments []Segment) []Segment {
	filtered := make([]Segment, 0, len(segments))
	for _, segment := range segments {
		if !segment.Boundary {
			filtered = append(filtered, segment)
		}
	}
	return filtered
}
