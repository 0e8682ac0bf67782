package restapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/elevation"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/features"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/gtfstime"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/logging"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/models"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/timetable"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/tripdb"
)

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response any) {
	setJSONResponseType(&w)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, r *http.Request) {
	setJSONResponseType(&w)
	w.WriteHeader(http.StatusNotFound)

	response := models.ResponseModel{
		Code:        http.StatusNotFound,
		CurrentTime: models.ResponseCurrentTime(api.Clock),
		Text:        "resource not found",
		Version:     2,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
}

func (api *RestAPI) sendUnauthorized(w http.ResponseWriter, r *http.Request) {
	setJSONResponseType(&w)
	w.WriteHeader(http.StatusUnauthorized)

	response := models.ResponseModel{
		Code:        http.StatusUnauthorized,
		CurrentTime: models.ResponseCurrentTime(api.Clock),
		Text:        "permission denied",
		Version:     2,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
}

func setJSONResponseType(w *http.ResponseWriter) {
	(*w).Header().Set("Content-Type", "application/json")
}

func (api *RestAPI) sendError(w http.ResponseWriter, r *http.Request, code int, message string) {
	setJSONResponseType(&w)
	w.WriteHeader(code)

	response := models.ResponseModel{
		Code:        code,
		CurrentTime: models.ResponseCurrentTime(api.Clock),
		Text:        message,
		Version:     2,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		api.serverErrorResponse(w, r, err)
	}
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "internal server error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// sendFeaturesError writes the computation failure envelope: statistics null,
// one diagnostic string, never partial results.
func (api *RestAPI) sendFeaturesError(w http.ResponseWriter, r *http.Request, code int, tripIDs []string, err error) {
	setJSONResponseType(&w)
	w.WriteHeader(code)

	response := models.NewFeaturesErrorResponse(code, tripIDs, err.Error(), api.Clock)
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		api.serverErrorResponse(w, r, encodeErr)
	}
}

// classifyPipelineError maps a pipeline failure to an HTTP status and the
// outcome label recorded in metrics. Input and data defects are 422; a trip
// or profile missing from the store is 404; anything else is a server error.
func classifyPipelineError(err error) (int, string) {
	var malformedTime *gtfstime.MalformedTimeError
	var negativeDuration *gtfstime.NegativeDurationError
	var missingElevation *elevation.MissingElevationError
	var matchErr *elevation.MatchError
	var insufficientSegments *features.InsufficientSegmentsError

	switch {
	case errors.As(err, &malformedTime):
		return http.StatusUnprocessableEntity, "malformed_time"
	case errors.As(err, &negativeDuration):
		return http.StatusUnprocessableEntity, "negative_duration"
	case errors.As(err, &missingElevation):
		return http.StatusUnprocessableEntity, "missing_elevation"
	case errors.As(err, &matchErr):
		return http.StatusUnprocessableEntity, "elevation_match"
	case errors.As(err, &insufficientSegments):
		return http.StatusUnprocessableEntity, "insufficient_segments"
	case errors.Is(err, timetable.ErrNoTrips):
		return http.StatusUnprocessableEntity, "no_trips"
	case errors.Is(err, tripdb.ErrNotFound):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
