package timetable

import "errors"

// CombinedSchedule is the flattened visit sequence of one or more trips,
// traversed in caller order. Visits are referenced read-only; the combiner
// never rewrites times or sequences. TripBoundary[i] is true when visit i is
// the last stop of a trip other than the final one, so the leg leaving it is
// an inter-trip discontinuity rather than a physical travel leg.
type CombinedSchedule struct {
	TripIDs      []string
	Visits       []StopVisit
	TripBoundary []bool
}

// ErrNoTrips is returned when the combiner is given nothing to combine.
var ErrNoTrips = errors.New("no trips to combine")

// Combine concatenates trips in the given order, preserving each trip's
// internal stop order. Duplicate stops across a boundary are kept: they form
// a zero- or near-zero-length boundary segment that downstream statistics
// exclude. A single trip is the degenerate case and combines to exactly its
// own visit sequence with no boundaries.
func Combine(trips []Trip) (CombinedSchedule, error) {
	if len(trips) == 0 {
		return CombinedSchedule{}, ErrNoTrips
	}

	total := 0
	for _, trip := range trips {
		total += len(trip.Visits)
	}

	combined := CombinedSchedule{
		TripIDs:      make([]string, 0, len(trips)),
		Visits:       make([]StopVisit, 0, total),
		TripBoundary: make([]bool, 0, total),
	}

	for tripIndex, trip := range trips {
		if err := trip.Validate(); err != nil {
			return CombinedSchedule{}, err
		}
		combined.TripIDs = append(combined.TripIDs, trip.ID)
		for visitIndex, visit := range trip.Visits {
			lastOfTrip := visitIndex == len(trip.Visits)-1
			finalTrip := tripIndex == len(trips)-1
			combined.Visits = append(combined.Visits, visit)
			combined.TripBoundary = append(combined.TripBoundary, lastOfTrip && !finalTrip)
		}
	}

	return combined, nil
}
