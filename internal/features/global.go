package features

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/elevation"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/gtfstime"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/timetable"
)

const metersPerSecondToKmh = 3.6

// computeGlobal fills the 18 whole-trip descriptors. Sums run over
// non-boundary segments only, so inter-trip idle and the synthetic boundary
// leg never contaminate distance or duration. Total duration is defined as
// driving time plus dwell time, which keeps that identity exact for any
// input; for a single trip it equals last departure minus first arrival.
func computeGlobal(fs *FeatureSet, schedule timetable.CombinedSchedule, matched []elevation.StopElevation, segments []Segment) error {
	valid := nonBoundary(segments)

	for _, segment := range valid {
		fs.TotalDistanceM += segment.DistanceM
		fs.DrivingTimeS += segment.DrivingDurationS
		fs.TotalDwellTimeS += segment.DwellS
		fs.TotalAscentM += segment.AscentM
		fs.TotalDescentM += segment.DescentM
	}

	// Segment dwell is attributed to the departure stop, so the terminal
	// stop's dwell is not covered by any segment.
	last := schedule.Visits[len(schedule.Visits)-1]
	terminalDwell, err := gtfstime.Duration(last.ArrivalSeconds, last.DepartureSeconds)
	if err != nil {
		return fmt.Errorf("dwell at terminal stop %s: %w", last.StopID, err)
	}
	fs.TotalDwellTimeS += float64(terminalDwell)

	fs.TotalDurationS = fs.DrivingTimeS + fs.TotalDwellTimeS
	fs.StopCount = len(schedule.Visits)
	fs.TripCount = len(schedule.TripIDs)

	if fs.TotalDurationS > 0 {
		fs.AverageSpeedKmh = fs.TotalDistanceM / fs.TotalDurationS * metersPerSecondToKmh
	}
	if fs.DrivingTimeS > 0 {
		fs.DrivingAverageSpeedKmh = fs.TotalDistanceM / fs.DrivingTimeS * metersPerSecondToKmh
	}

	altitudes := make([]float64, len(matched))
	for i, m := range matched {
		altitudes[i] = m.AltitudeM
	}
	var statErr error
	if fs.ElevationMinM, statErr = stats.Min(altitudes); statErr != nil {
		return fmt.Errorf("elevation minimum: %w", statErr)
	}
	if fs.ElevationMaxM, statErr = stats.Max(altitudes); statErr != nil {
		return fmt.Errorf("elevation maximum: %w", statErr)
	}
	if fs.ElevationMeanM, statErr = stats.Mean(altitudes); statErr != nil {
		return fmt.Errorf("elevation mean: %w", statErr)
	}
	fs.ElevationRangeM = fs.ElevationMaxM - fs.ElevationMinM

	fs.NetElevationChangeM = matched[len(matched)-1].AltitudeM - matched[0].AltitudeM
	if fs.TotalDistanceM > 0 {
		fs.MeanGradient = fs.NetElevationChangeM / fs.TotalDistanceM
	}

	fs.AscentDescentRatio = ascentDescentRatio(fs.TotalAscentM, fs.TotalDescentM)
	fs.ElevationProfileType = classifyProfile(fs.TotalAscentM, fs.TotalDescentM)
	return nil
}

// ascentDescentRatio is ascent/descent, with RatioInfinite marking a route
// that climbs but never descends and 0 when neither happens.
func ascentDescentRatio(ascent, descent float64) float64 {
	switch {
	case descent > 0:
		return ascent / descent
	case ascent > 0:
		return RatioInfinite
	default:
		return 0
	}
}

// classifyProfile buckets the route into flat, ascent_only, descent_only or
// mixed. A direction is "absent" below negligibleElevationM in total, or
// when it is under dominanceRatio of the opposite direction.
func classifyProfile(ascent, descent float64) string {
	ascentNegligible := ascent < negligibleElevationM
	descentNegligible := descent < negligibleElevationM

	switch {
	case ascentNegligible && descentNegligible:
		return ProfileFlat
	case descentNegligible || descent < dominanceRatio*ascent:
		return ProfileAscentOnly
	case ascentNegligible || ascent < dominanceRatio*descent:
		return ProfileDescentOnly
	default:
		return ProfileMixed
	}
}
