package restapi

import (
	"encoding/json"
	"iter"
	"net/http"

	"sptrans.olhovivo.dev/internal/logging"
	"sptrans.olhovivo.dev/internal/models"
	"sptrans.olhovivo.dev/olhovivo"
)

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	setJSONResponseType(&w)
	if response.Code != http.StatusOK {
		w.WriteHeader(response.Code)
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.FromContext(r.Context()).Error("failed to encode response", "error", err, "path", r.URL.Path)
	}
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewResponse(http.StatusNotFound, nil, "resource not found"))
}

// sendList drains seq into a list response. Fetch and decode failures are
// reported through the error responses.
func sendList[T any](api *RestAPI, w http.ResponseWriter, r *http.Request, seq iter.Seq2[T, error], err error) {
	if err != nil {
		api.clientErrorResponse(w, r, err)
		return
	}

	list, err := olhovivo.Collect(seq)
	if err != nil {
		api.clientErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(list))
}

func setJSONResponseType(w *http.ResponseWriter) {
	(*w).Header().Set("Content-Type", "application/json")
}
