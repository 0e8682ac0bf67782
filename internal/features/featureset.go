package features

// FeatureSet is the full descriptor vector for one trip or combined trip
// sequence: 18 global scalars, 29 segment aggregates and 11 difficulty
// descriptors. It is produced whole or not at all; a failed computation
// never yields a partial set.
type FeatureSet struct {
	// Global trip descriptors.
	TotalDistanceM         float64 `json:"total_distance_m"`
	TotalDurationS         float64 `json:"total_duration_s"`
	DrivingTimeS           float64 `json:"driving_time_s"`
	TotalDwellTimeS        float64 `json:"total_dwell_time_s"`
	StopCount              int     `json:"stop_count"`
	TripCount              int     `json:"trip_count"`
	AverageSpeedKmh        float64 `json:"average_speed_kmh"`
	DrivingAverageSpeedKmh float64 `json:"driving_average_speed_kmh"`
	ElevationMinM          float64 `json:"elevation_min_m"`
	ElevationMaxM          float64 `json:"elevation_max_m"`
	ElevationMeanM         float64 `json:"elevation_mean_m"`
	ElevationRangeM        float64 `json:"elevation_range_m"`
	TotalAscentM           float64 `json:"total_ascent_m"`
	TotalDescentM          float64 `json:"total_descent_m"`
	NetElevationChangeM    float64 `json:"net_elevation_change_m"`
	MeanGradient           float64 `json:"mean_gradient"`
	AscentDescentRatio     float64 `json:"ascent_descent_ratio"`
	ElevationProfileType   string  `json:"elevation_profile_type"`

	// Segment aggregates over non-boundary segments.
	SegmentDistanceMeanM   float64 `json:"segment_distance_mean_m"`
	SegmentDistanceMedianM float64 `json:"segment_distance_median_m"`
	SegmentDistanceMinM    float64 `json:"segment_distance_min_m"`
	SegmentDistanceMaxM    float64 `json:"segment_distance_max_m"`
	SegmentDistanceStdM    float64 `json:"segment_distance_std_m"`
	SegmentDurationMeanS   float64 `json:"segment_duration_mean_s"`
	SegmentDurationMedianS float64 `json:"segment_duration_median_s"`
	SegmentDurationMinS    float64 `json:"segment_duration_min_s"`
	SegmentDurationMaxS    float64 `json:"segment_duration_max_s"`
	SegmentSpeedMeanKmh    float64 `json:"segment_speed_mean_kmh"`
	SegmentSpeedMedianKmh  float64 `json:"segment_speed_median_kmh"`
	SegmentSpeedMinKmh     float64 `json:"segment_speed_min_kmh"`
	SegmentSpeedMaxKmh     float64 `json:"segment_speed_max_kmh"`
	SegmentSpeedStdKmh     float64 `json:"segment_speed_std_kmh"`
	SegmentDwellMeanS      float64 `json:"segment_dwell_mean_s"`
	SegmentDwellMedianS    float64 `json:"segment_dwell_median_s"`
	SegmentDwellMinS       float64 `json:"segment_dwell_min_s"`
	SegmentDwellMaxS       float64 `json:"segment_dwell_max_s"`
	SegmentAscentMeanM     float64 `json:"segment_ascent_mean_m"`
	SegmentAscentMaxM      float64 `json:"segment_ascent_max_m"`
	SegmentDescentMeanM    float64 `json:"segment_descent_mean_m"`
	SegmentDescentMaxM     float64 `json:"segment_descent_max_m"`
	SegmentGradientMean    float64 `json:"segment_gradient_mean"`
	SegmentGradientMedian  float64 `json:"segment_gradient_median"`
	SegmentGradientMin     float64 `json:"segment_gradient_min"`
	SegmentGradientMax     float64 `json:"segment_gradient_max"`
	SegmentGradientVar     float64 `json:"segment_gradient_variance"`
	SteepSegmentCount5Pct  int     `json:"steep_segment_count_5pct"`
	SteepSegmentCount10Pct int     `json:"steep_segment_count_10pct"`

	// Route difficulty descriptors. Percentages and bin ratios are
	// fractions in [0, 1].
	RoughnessIndex              float64 `json:"roughness_index"`
	ComplexityScore             float64 `json:"complexity_score"`
	UphillSegmentPct            float64 `json:"uphill_segment_pct"`
	DownhillSegmentPct          float64 `json:"downhill_segment_pct"`
	FlatSegmentPct              float64 `json:"flat_segment_pct"`
	GradientBinNegativePct      float64 `json:"gradient_bin_negative_pct"`
	GradientBin0To3Pct          float64 `json:"gradient_bin_0_3_pct"`
	GradientBin3To6Pct          float64 `json:"gradient_bin_3_6_pct"`
	GradientBinOver6Pct         float64 `json:"gradient_bin_over_6_pct"`
	SignificantElevationChanges int     `json:"significant_elevation_changes"`
	ElevationChangeFrequencyPkm float64 `json:"elevation_change_frequency_per_km"`
}
