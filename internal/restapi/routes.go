package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func validateAPIKey(api *RestAPI, finalHandler http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/api/current-time", validateAPIKey(api, api.currentTimeHandler))
	router.Handler(http.MethodGet, "/api/routes", validateAPIKey(api, api.searchRoutesHandler))
	router.Handler(http.MethodGet, "/api/routes/:code/stops", validateAPIKey(api, api.stopsForRouteHandler))
	router.Handler(http.MethodGet, "/api/routes/:code/positions", validateAPIKey(api, api.positionsHandler))
	router.Handler(http.MethodGet, "/api/routes/:code/vehicle-positions.pb", validateAPIKey(api, api.vehiclePositionsFeedHandler))
	router.Handler(http.MethodGet, "/api/stops", validateAPIKey(api, api.searchStopsHandler))
	router.Handler(http.MethodGet, "/api/lanes", validateAPIKey(api, api.lanesHandler))
	router.Handler(http.MethodGet, "/api/lanes/:code/stops", validateAPIKey(api, api.stopsForLaneHandler))
	router.Handler(http.MethodGet, "/api/forecast", validateAPIKey(api, api.forecastHandler))
}
