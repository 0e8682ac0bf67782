package features

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// describe is the shared central-tendency/spread bundle for one per-segment
// quantity.
type describe struct {
	mean   float64
	median float64
	min    float64
	max    float64
}

func describeValues(values []float64) (describe, error) {
	var d describe
	var err error
	if d.mean, err = stats.Mean(values); err != nil {
		return d, err
	}
	if d.median, err = stats.Median(values); err != nil {
		return d, err
	}
	if d.min, err = stats.Min(values); err != nil {
		return d, err
	}
	if d.max, err = stats.Max(values); err != nil {
		return d, err
	}
	return d, nil
}

// computeSegmentStats fills the 29 segment aggregates over the non-boundary
// segments. Segments with zero driving duration or zero distance are
// excluded from the speed aggregates only; if none remains there, the speed
// statistics stay zero rather than failing the whole set.
func computeSegmentStats(fs *FeatureSet, segments []Segment) error {
	valid := nonBoundary(segments)
	if len(valid) == 0 {
		return &InsufficientSegmentsError{StopCount: len(segments) + 1}
	}

	distances := make([]float64, len(valid))
	durations := make([]float64, len(valid))
	dwells := make([]float64, len(valid))
	gradients := make([]float64, len(valid))
	ascents := make([]float64, len(valid))
	descents := make([]float64, len(valid))
	speeds := make([]float64, 0, len(valid))

	for i, segment := range valid {
		distances[i] = segment.DistanceM
		durations[i] = segment.DrivingDurationS
		dwells[i] = segment.DwellS
		gradients[i] = segment.Gradient
		ascents[i] = segment.AscentM
		descents[i] = segment.DescentM
		if segment.DrivingDurationS > 0 && segment.DistanceM > 0 {
			speeds = append(speeds, segment.DistanceM/segment.DrivingDurationS*metersPerSecondToKmh)
		}
		if math.Abs(segment.Gradient) >= SteepGradient5 {
			fs.SteepSegmentCount5Pct++
		}
		if math.Abs(segment.Gradient) >= SteepGradient10 {
			fs.SteepSegmentCount10Pct++
		}
	}

	distance, err := describeValues(distances)
	if err != nil {
		return fmt.Errorf("segment distance statistics: %w", err)
	}
	fs.SegmentDistanceMeanM = distance.mean
	fs.SegmentDistanceMedianM = distance.median
	fs.SegmentDistanceMinM = distance.min
	fs.SegmentDistanceMaxM = distance.max
	if fs.SegmentDistanceStdM, err = stats.StandardDeviation(distances); err != nil {
		return fmt.Errorf("segment distance stddev: %w", err)
	}

	duration, err := describeValues(durations)
	if err != nil {
		return fmt.Errorf("segment duration statistics: %w", err)
	}
	fs.SegmentDurationMeanS = duration.mean
	fs.SegmentDurationMedianS = duration.median
	fs.SegmentDurationMinS = duration.min
	fs.SegmentDurationMaxS = duration.max

	if len(speeds) > 0 {
		speed, err := describeValues(speeds)
		if err != nil {
			return fmt.Errorf("segment speed statistics: %w", err)
		}
		fs.SegmentSpeedMeanKmh = speed.mean
		fs.SegmentSpeedMedianKmh = speed.median
		fs.SegmentSpeedMinKmh = speed.min
		fs.SegmentSpeedMaxKmh = speed.max
		if fs.SegmentSpeedStdKmh, err = stats.StandardDeviation(speeds); err != nil {
			return fmt.Errorf("segment speed stddev: %w", err)
		}
	}

	dwell, err := describeValues(dwells)
	if err != nil {
		return fmt.Errorf("segment dwell statistics: %w", err)
	}
	fs.SegmentDwellMeanS = dwell.mean
	fs.SegmentDwellMedianS = dwell.median
	fs.SegmentDwellMinS = dwell.min
	fs.SegmentDwellMaxS = dwell.max

	if fs.SegmentAscentMeanM, err = stats.Mean(ascents); err != nil {
		return fmt.Errorf("segment ascent mean: %w", err)
	}
	if fs.SegmentAscentMaxM, err = stats.Max(ascents); err != nil {
		return fmt.Errorf("segment ascent max: %w", err)
	}
	if fs.SegmentDescentMeanM, err = stats.Mean(descents); err != nil {
		return fmt.Errorf("segment descent mean: %w", err)
	}
	if fs.SegmentDescentMaxM, err = stats.Max(descents); err != nil {
		return fmt.Errorf("segment descent max: %w", err)
	}

	gradient, err := describeValues(gradients)
	if err != nil {
		return fmt.Errorf("segment gradient statistics: %w", err)
	}
	fs.SegmentGradientMean = gradient.mean
	fs.SegmentGradientMedian = gradient.median
	fs.SegmentGradientMin = gradient.min
	fs.SegmentGradientMax = gradient.max
	if fs.SegmentGradientVar, err = stats.PopulationVariance(gradients); err != nil {
		return fmt.Errorf("segment gradient variance: %w", err)
	}

	return nil
}
