package restapi

import (
	"net/http"

	"sptrans.olhovivo.dev/internal/utils"
)

func (api *RestAPI) stopsForRouteHandler(w http.ResponseWriter, r *http.Request) {
	code, fieldErrors := utils.ExtractCodeFromParams(r, "code")
	if fieldErrors != nil {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	stops, err := api.Client.SearchStopsByRoute(r.Context(), code)
	sendList(api, w, r, stops, err)
}

func (api *RestAPI) stopsForLaneHandler(w http.ResponseWriter, r *http.Request) {
	code, fieldErrors := utils.ExtractCodeFromParams(r, "code")
	if fieldErrors != nil {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	stops, err := api.Client.SearchStopsByLane(r.Context(), code)
	sendList(api, w, r, stops, err)
}

func (api *RestAPI) lanesHandler(w http.ResponseWriter, r *http.Request) {
	lanes, err := api.Client.ListLanes(r.Context())
	sendList(api, w, r, lanes, err)
}
