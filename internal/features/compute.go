package features

import (
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/elevation"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/timetable"
)

// Compute runs the full pipeline for an ordered trip sequence: combine,
// match elevation, extract segments, then the global, segment and difficulty
// computers. It returns all 58 descriptors or the first error; there are no
// partial results. A single trip is just a sequence of length one.
func Compute(trips []timetable.Trip, profile elevation.Profile) (*FeatureSet, error) {
	schedule, err := timetable.Combine(trips)
	if err != nil {
		return nil, err
	}
	return ComputeForSchedule(schedule, profile)
}

// ComputeForSchedule computes the descriptor set for an already-combined
// schedule.
func ComputeForSchedule(schedule timetable.CombinedSchedule, profile elevation.Profile) (*FeatureSet, error) {
	matched, err := elevation.Match(schedule, profile)
	if err != nil {
		return nil, err
	}

	segments, err := BuildSegments(schedule, matched, profile)
	if err != nil {
		return nil, err
	}
	if len(nonBoundary(segments)) == 0 {
		return nil, &InsufficientSegmentsError{StopCount: len(schedule.Visits)}
	}

	fs := &FeatureSet{}
	if err := computeGlobal(fs, schedule, matched, segments); err != nil {
		return nil, err
	}
	if err := computeSegmentStats(fs, segments); err != nil {
		return nil, err
	}
	if err := computeDifficulty(fs, matched, segments, profile); err != nil {
		return nil, err
	}
	return fs, nil
}
