package restapi

import (
	"net/http"

	"sptrans.olhovivo.dev/internal/models"
)

func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	entry := models.NewCurrentTime(api.Now())
	api.sendResponse(w, r, models.NewEntryResponse(entry))
}
