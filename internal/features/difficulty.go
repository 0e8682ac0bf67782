package features

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/elevation"
)

// computeDifficulty fills the 11 terrain-difficulty descriptors. Point-level
// descriptors (gradient bins, significant changes, roughness variance) use
// the raw samples between the first and last matched point when the profile
// provides them; a pre-segmented profile contributes its per-stop samples,
// which are then also the segment endpoints.
func computeDifficulty(fs *FeatureSet, matched []elevation.StopElevation, segments []Segment, profile elevation.Profile) error {
	valid := nonBoundary(segments)
	if len(valid) == 0 {
		return &InsufficientSegmentsError{StopCount: len(segments) + 1}
	}

	points := tripPoints(matched, profile)

	altitudes := make([]float64, len(points))
	for i, point := range points {
		altitudes[i] = point.AltitudeM
	}
	altitudeVariance, err := stats.PopulationVariance(altitudes)
	if err != nil {
		return fmt.Errorf("altitude variance: %w", err)
	}
	if fs.TotalDistanceM > 0 {
		fs.RoughnessIndex = altitudeVariance / fs.TotalDistanceM
	}

	var uphill, downhill, flat int
	for _, segment := range valid {
		switch {
		case segment.Gradient > FlatGradientThreshold:
			uphill++
		case segment.Gradient < -FlatGradientThreshold:
			downhill++
		default:
			flat++
		}
	}
	total := float64(len(valid))
	fs.UphillSegmentPct = float64(uphill) / total
	fs.DownhillSegmentPct = float64(downhill) / total
	fs.FlatSegmentPct = float64(flat) / total

	binCounts, binTotal := pointGradientBins(points)
	if binTotal > 0 {
		fs.GradientBinNegativePct = float64(binCounts[0]) / float64(binTotal)
		fs.GradientBin0To3Pct = float64(binCounts[1]) / float64(binTotal)
		fs.GradientBin3To6Pct = float64(binCounts[2]) / float64(binTotal)
		fs.GradientBinOver6Pct = float64(binCounts[3]) / float64(binTotal)
	}

	for i := 1; i < len(points); i++ {
		if math.Abs(points[i].AltitudeM-points[i-1].AltitudeM) > SignificantElevationChangeM {
			fs.SignificantElevationChanges++
		}
	}
	if fs.TotalDistanceM > 0 {
		fs.ElevationChangeFrequencyPkm = float64(fs.SignificantElevationChanges) / (fs.TotalDistanceM / 1000.0)
	}

	steepShare := float64(fs.SteepSegmentCount5Pct) / total
	gradientStd := math.Sqrt(fs.SegmentGradientVar)
	fs.ComplexityScore = complexityGradientWeight*saturate(gradientStd/complexityGradientScale) +
		complexitySteepWeight*steepShare +
		complexityRangeWeight*saturate(fs.ElevationRangeM/complexityRangeScaleM)

	return nil
}

// tripPoints returns the profile samples spanned by the matched stops, in
// trace order.
func tripPoints(matched []elevation.StopElevation, profile elevation.Profile) []elevation.Point {
	lo, hi := matched[0].PointIndex, matched[len(matched)-1].PointIndex
	if lo > hi {
		lo, hi = hi, lo
	}
	return profile.Points[lo : hi+1]
}

// pointGradientBins counts consecutive-sample gradients per bin: negative,
// [0, 3%), [3%, 6%), [6%, +inf). Zero-length sample pairs carry no gradient
// and are skipped.
func pointGradientBins(points []elevation.Point) (counts [4]int, total int) {
	for i := 1; i < len(points); i++ {
		run := points[i].CumulativeDistanceM - points[i-1].CumulativeDistanceM
		if run <= 0 {
			continue
		}
		gradient := (points[i].AltitudeM - points[i-1].AltitudeM) / run
		switch {
		case gradient < 0:
			counts[0]++
		case gradient < GradientBin3:
			counts[1]++
		case gradient < GradientBin6:
			counts[2]++
		default:
			counts[3]++
		}
		total++
	}
	return counts, total
}

// saturate maps [0, +inf) monotonically onto [0, 1).
func saturate(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x / (1 + x)
}
