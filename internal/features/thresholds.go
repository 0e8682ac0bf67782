package features

// Tunable thresholds for the difficulty and classification descriptors.
// These are the documented defaults; they are deliberately named constants
// rather than magic numbers inside the aggregation loops.
const (
	// FlatGradientThreshold bounds the gradient magnitude below which a
	// segment counts as flat (±1%).
	FlatGradientThreshold = 0.01

	// SteepGradient5 and SteepGradient10 are the two steep-segment
	// gradient-magnitude thresholds (5% and 10%).
	SteepGradient5  = 0.05
	SteepGradient10 = 0.10

	// GradientBin3 and GradientBin6 delimit the point-level gradient bins:
	// negative, [0, 3%), [3%, 6%), [6%, +inf).
	GradientBin3 = 0.03
	GradientBin6 = 0.06

	// SignificantElevationChangeM is the minimum altitude delta between
	// consecutive raw samples that counts as a significant change.
	SignificantElevationChangeM = 1.0

	// negligibleElevationM is the total ascent or descent below which the
	// profile direction is considered absent for classification.
	negligibleElevationM = 10.0

	// dominanceRatio classifies a profile as ascent_only or descent_only
	// when the lesser direction is below this fraction of the greater.
	dominanceRatio = 0.1
)

// RatioInfinite is the sentinel for ascent_descent_ratio when the route
// descends nowhere but climbs. The ratio is non-negative everywhere else, so
// a negative sentinel cannot collide with a real value.
const RatioInfinite = -1.0

// Elevation profile classifications.
const (
	ProfileFlat        = "flat"
	ProfileAscentOnly  = "ascent_only"
	ProfileDescentOnly = "descent_only"
	ProfileMixed       = "mixed"
)

// Complexity score weights and normalization scales. The score is monotonic
// in gradient spread, steep-segment share and elevation range, and stays in
// [0, 1) because each term saturates via x/(1+x).
const (
	complexityGradientWeight = 0.5
	complexitySteepWeight    = 0.3
	complexityRangeWeight    = 0.2

	complexityGradientScale = 0.05  // gradient stddev considered "high"
	complexityRangeScaleM   = 200.0 // elevation range considered "high"
)
