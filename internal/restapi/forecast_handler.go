package restapi

import (
	"net/http"

	"sptrans.olhovivo.dev/internal/models"
	"sptrans.olhovivo.dev/internal/utils"
)

// forecastHandler serves arrival forecasts. Giving stop, route or both picks
// the matching upstream query.
func (api *RestAPI) forecastHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	stop, fieldErrors := utils.ParseCodeParam(query, "stop", nil)
	route, fieldErrors := utils.ParseCodeParam(query, "route", fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	forecast, err := api.Client.GetForecast(r.Context(), stop, route)
	if err != nil {
		api.clientErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(forecast))
}
