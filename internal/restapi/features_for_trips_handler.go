package restapi

import (
	"errors"
	"net/http"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/utils"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/tripdb"
)

// featuresForTripsHandler computes the descriptor set for a stored trip
// sequence, combined in the caller's order. The elevation profile stored
// under the first trip id must cover the whole sequence.
func (api *RestAPI) featuresForTripsHandler(w http.ResponseWriter, r *http.Request) {
	ids := utils.SplitIDList(r.URL.Query().Get("ids"))
	if len(ids) == 0 {
		api.sendError(w, r, http.StatusBadRequest, "ids parameter is required")
		return
	}
	for _, id := range ids {
		if err := utils.ValidateID(id); err != nil {
			api.sendError(w, r, http.StatusBadRequest, err.Error())
			return
		}
	}

	ctx := r.Context()

	trips, err := api.Store.GetTripsByIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, tripdb.ErrNotFound) {
			api.sendNotFound(w, r)
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	profile, err := api.Store.GetElevationProfile(ctx, ids[0])
	if err != nil {
		if errors.Is(err, tripdb.ErrNotFound) {
			api.sendNotFound(w, r)
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	api.runComputation(w, r, ids, trips, profile)
}
