package models

import (
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/clock"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/features"
)

// FeaturesResponse is the outcome envelope for a feature computation.
// Statistics and Error are mutually exclusive: a request either fully
// succeeds with all 58 descriptors or fully fails with one diagnostic.
type FeaturesResponse struct {
	Code        int                  `json:"code"`
	CurrentTime int64                `json:"currentTime"`
	TripIDs     []string             `json:"trip_ids"`
	Statistics  *features.FeatureSet `json:"statistics"`
	Error       *string              `json:"error"`
}

// NewFeaturesResponse wraps a successful computation.
func NewFeaturesResponse(tripIDs []string, statistics *features.FeatureSet, c clock.Clock) FeaturesResponse {
	return FeaturesResponse{
		Code:        200,
		CurrentTime: c.NowUnixMilli(),
		TripIDs:     tripIDs,
		Statistics:  statistics,
		Error:       nil,
	}
}

// NewFeaturesErrorResponse wraps a failed computation. No partial statistics
// ever ride along.
func NewFeaturesErrorResponse(code int, tripIDs []string, message string, c clock.Clock) FeaturesResponse {
	return FeaturesResponse{
		Code:        code,
		CurrentTime: c.NowUnixMilli(),
		TripIDs:     tripIDs,
		Statistics:  nil,
		Error:       &message,
	}
}

// ResponseModel is the generic envelope for non-feature endpoints.
type ResponseModel struct {
	Code        int    `json:"code"`
	CurrentTime int64  `json:"currentTime"`
	Text        string `json:"text"`
	Version     int    `json:"version"`
}

// ResponseCurrentTime returns the response timestamp in Unix milliseconds.
func ResponseCurrentTime(c clock.Clock) int64 {
	return c.NowUnixMilli()
}
