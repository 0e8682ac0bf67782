package restapi

import (
	"errors"
	"net/http"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/timetable"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/utils"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/tripdb"
)

// featuresForTripHandler computes the descriptor set for one stored trip and
// its stored elevation profile.
func (api *RestAPI) featuresForTripHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r)
	if err := utils.ValidateID(id); err != nil {
		api.sendError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()

	trip, err := api.Store.GetTrip(ctx, id)
	if err != nil {
		if errors.Is(err, tripdb.ErrNotFound) {
			api.sendNotFound(w, r)
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	profile, err := api.Store.GetElevationProfile(ctx, id)
	if err != nil {
		if errors.Is(err, tripdb.ErrNotFound) {
			api.sendNotFound(w, r)
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	api.runComputation(w, r, []string{id}, []timetable.Trip{trip}, profile)
}
