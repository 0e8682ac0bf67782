package restapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/features"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/timetable"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/internal/utils"
	"github.com/supsi-dacd-isaac/elettra-backend-sub001/tripdb"
)

// debugFeaturesHandler dumps the full descriptor set for a stored trip as
// plain text. Registered in Development only.
func (api *RestAPI) debugFeaturesHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r)
	if err := utils.ValidateID(id); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	trip, err := api.Store.GetTrip(ctx, id)
	if err != nil {
		if errors.Is(err, tripdb.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	profile, err := api.Store.GetElevationProfile(ctx, id)
	if err != nil {
		if errors.Is(err, tripdb.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	featureSet, err := features.Compute([]timetable.Trip{trip}, profile)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "trip %s\n\n", id)
	if err != nil {
		fmt.Fprintf(w, "computation failed: %v\n", err)
		return
	}
	_, _ = w.Write([]byte(spew.Sdump(featureSet)))
}
