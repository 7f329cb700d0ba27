package restapi

import (
	"net/http"
	"strconv"

	"sptrans.olhovivo.dev/internal/gtfsrt"
	"sptrans.olhovivo.dev/internal/logging"
	"sptrans.olhovivo.dev/internal/models"
	"sptrans.olhovivo.dev/internal/utils"
)

func (api *RestAPI) positionsHandler(w http.ResponseWriter, r *http.Request) {
	code, fieldErrors := utils.ExtractCodeFromParams(r, "code")
	if fieldErrors != nil {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	positions, err := api.Client.GetPositions(r.Context(), code)
	if err != nil {
		api.clientErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(positions))
}

// vehiclePositionsFeedHandler serves the positions of a route as a
// GTFS-Realtime VehiclePositions feed.
func (api *RestAPI) vehiclePositionsFeedHandler(w http.ResponseWriter, r *http.Request) {
	code, fieldErrors := utils.ExtractCodeFromParams(r, "code")
	if fieldErrors != nil {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	positions, err := api.Client.GetPositions(r.Context(), code)
	if err != nil {
		api.clientErrorResponse(w, r, err)
		return
	}

	feed := gtfsrt.VehiclePositionsFeed(code, positions)
	body, err := gtfsrt.Marshal(feed)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if api.Metrics != nil {
		api.Metrics.FeedEntities.Observe(float64(len(feed.Entity)))
	}

	w.Header().Set("Content-Type", "application/x-protobuf")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	if _, err := w.Write(body); err != nil {
		logging.FromContext(r.Context()).Error("failed to write feed", "error", err, "path", r.URL.Path)
	}
}
