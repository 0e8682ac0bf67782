package elevation

import (
	"fmt"

	"github.com/tidwall/rtree"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/timetable"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/utils"
)

// StopElevation is the matched elevation for one stop visit: where along the
// trace the stop sits and how high it is. PointIndex refers back into the
// profile so segment ascent/descent can sum the intermediate samples.
type StopElevation struct {
	StopID              string
	CumulativeDistanceM float64
	AltitudeM           float64
	PointIndex          int
}

// nearestCandidates is the size of the index shortlist that gets re-ranked
// with the exact great-circle distance. Samples along a single trace are
// near-collinear, so the geodesic nearest is always inside a shortlist this
// size despite the degree-space index metric.
const nearestCandidates = 8

// Match aligns a profile with the stops of a combined schedule and returns
// one StopElevation per visit, in visit order.
func Match(schedule timetable.CombinedSchedule, profile Profile) ([]StopElevation, error) {
	if len(profile.Points) == 0 {
		return nil, &MissingElevationError{Reason: "no elevation profile supplied"}
	}
	if profile.Presegmented {
		return matchPresegmented(schedule, profile)
	}
	return matchRaw(schedule, profile)
}

// matchPresegmented pairs points with stops positionally: point i belongs to
// visit i.
func matchPresegmented(schedule timetable.CombinedSchedule, profile Profile) ([]StopElevation, error) {
	if len(profile.Points) != len(schedule.Visits) {
		return nil, &MatchError{Reason: fmt.Sprintf(
			"pre-segmented profile has %d points for %d stops", len(profile.Points), len(schedule.Visits))}
	}

	matched := make([]StopElevation, len(schedule.Visits))
	for i, visit := range schedule.Visits {
		matched[i] = StopElevation{
			StopID:              visit.StopID,
			CumulativeDistanceM: profile.Points[i].CumulativeDistanceM,
			AltitudeM:           profile.Points[i].AltitudeM,
			PointIndex:          i,
		}
	}
	return matched, nil
}

// matchRaw picks, for each stop, the sample geometrically closest over the
// sphere, breaking ties by smaller cumulative distance. There is no
// distance-only or index-only fallback: a stop or profile without positions
// is a terminal MatchError.
func matchRaw(schedule timetable.CombinedSchedule, profile Profile) ([]StopElevation, error) {
	var index rtree.RTreeG[int]
	for i, point := range profile.Points {
		if point.Position == nil {
			return nil, &MatchError{Reason: fmt.Sprintf("raw profile point %d has no position", i)}
		}
		p := [2]float64{point.Position.Lon, point.Position.Lat}
		index.Insert(p, p, i)
	}

	matched := make([]StopElevation, len(schedule.Visits))
	candidates := make([]int, 0, nearestCandidates)

	for i, visit := range schedule.Visits {
		if visit.Position == nil {
			return nil, &MatchError{StopID: visit.StopID, Reason: "stop has no position"}
		}

		target := [2]float64{visit.Position.Lon, visit.Position.Lat}
		candidates = candidates[:0]
		index.Nearby(
			rtree.BoxDist[float64, int](target, target, nil),
			func(min, max [2]float64, pointIndex int, dist float64) bool {
				candidates = append(candidates, pointIndex)
				return len(candidates) < nearestCandidates
			},
		)

		best, err := closestCandidate(profile.Points, candidates, visit)
		if err != nil {
			return nil, err
		}
		matched[i] = StopElevation{
			StopID:              visit.StopID,
			CumulativeDistanceM: profile.Points[best].CumulativeDistanceM,
			AltitudeM:           profile.Points[best].AltitudeM,
			PointIndex:          best,
		}
	}
	return matched, nil
}

// closestCandidate re-ranks the shortlist with the exact great-circle
// distance. Ties go to the candidate earlier along the trace.
func closestCandidate(points []Point, candidates []int, visit timetable.StopVisit) (int, error) {
	if len(candidates) == 0 {
		return 0, &MatchError{StopID: visit.StopID, Reason: "no matchable elevation point"}
	}

	const tie = 1e-9
	best := -1
	bestDistance := 0.0
	for _, candidate := range candidates {
		pos := points[candidate].Position
		d := utils.Distance(visit.Position.Lat, visit.Position.Lon, pos.Lat, pos.Lon)
		switch {
		case best == -1 || d < bestDistance-tie:
			best = candidate
			bestDistance = d
		case d <= bestDistance+tie &&
			points[candidate].CumulativeDistanceM < points[best].CumulativeDistanceM:
			best = candidate
		}
	}
	return best, nil
}
