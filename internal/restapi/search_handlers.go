package restapi

import (
	"net/http"

	"sptrans.olhovivo.dev/internal/utils"
)

// searchQuery reads and sanitizes the q parameter. A false return means the
// validation error response was already sent.
func (api *RestAPI) searchQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	query, err := utils.ValidateAndSanitizeQuery(r.URL.Query().Get("q"))
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"q": {err.Error()}})
		return "", false
	}
	return query, true
}

func (api *RestAPI) searchRoutesHandler(w http.ResponseWriter, r *http.Request) {
	query, ok := api.searchQuery(w, r)
	if !ok {
		return
	}

	routes, err := api.Client.SearchRoutes(r.Context(), query)
	sendList(api, w, r, routes, err)
}

func (api *RestAPI) searchStopsHandler(w http.ResponseWriter, r *http.Request) {
	query, ok := api.searchQuery(w, r)
	if !ok {
		return
	}

	stops, err := api.Client.SearchStops(r.Context(), query)
	sendList(api, w, r, stops, err)
}
