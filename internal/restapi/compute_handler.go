package restapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/elevation"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/features"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/logging"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/models"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/timetable"
)

const maxComputePayloadBytes = 10 * 1024 * 1024

// computeFeaturesHandler computes the descriptor set for trips and an
// elevation profile submitted inline.
func (api *RestAPI) computeFeaturesHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxComputePayloadBytes)

	var request models.ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.sendError(w, r, http.StatusBadRequest, "invalid JSON payload: "+err.Error())
		return
	}
	if len(request.Trips) == 0 {
		api.sendError(w, r, http.StatusBadRequest, "at least one trip is required")
		return
	}

	tripIDs := make([]string, len(request.Trips))
	for i, trip := range request.Trips {
		tripIDs[i] = trip.TripID
	}

	trips, err := request.ToTrips()
	if err != nil {
		api.finishComputationError(w, r, tripIDs, err, 0)
		return
	}

	profile, err := request.Elevation.ToProfile()
	if err != nil {
		api.finishComputationError(w, r, tripIDs, err, 0)
		return
	}

	api.runComputation(w, r, tripIDs, trips, profile)
}

// runComputation executes the pipeline and writes the success or failure
// envelope, recording the outcome in metrics either way.
func (api *RestAPI) runComputation(w http.ResponseWriter, r *http.Request, tripIDs []string, trips []timetable.Trip, profile elevation.Profile) {
	start := time.Now()
	featureSet, err := features.Compute(trips, profile)
	duration := time.Since(start)

	if err != nil {
		api.finishComputationError(w, r, tripIDs, err, duration)
		return
	}

	if api.Metrics != nil {
		api.Metrics.ObserveComputation("success", duration)
	}
	api.sendResponse(w, r, models.NewFeaturesResponse(tripIDs, featureSet, api.Clock))
}

func (api *RestAPI) finishComputationError(w http.ResponseWriter, r *http.Request, tripIDs []string, err error, duration time.Duration) {
	status, outcome := classifyPipelineError(err)
	if api.Metrics != nil {
		api.Metrics.ObserveComputation(outcome, duration)
	}
	if status == http.StatusInternalServerError {
		logging.LogError(logging.FromContext(r.Context()), "feature computation failed", err)
	}
	api.sendFeaturesError(w, r, status, tripIDs, err)
}
