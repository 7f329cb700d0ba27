package restapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"sptrans.olhovivo.dev/internal/logging"
	"sptrans.olhovivo.dev/internal/models"
	"sptrans.olhovivo.dev/mapping"
	"sptrans.olhovivo.dev/olhovivo"
)

type errorResponse struct {
	Code        int    `json:"code"`
	CurrentTime int64  `json:"currentTime"`
	Text        string `json:"text"`
	Version     int    `json:"version"`
}

func (api *RestAPI) writeError(w http.ResponseWriter, r *http.Request, status int, text string, version int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(errorResponse{
		Code:        status,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        text,
		Version:     version,
	})
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to encode error response", "error", err)
	}
}

// invalidAPIKeyResponse sends a 401 Unauthorized response. Version 1 is kept
// for clients of the older error format.
func (api *RestAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	api.writeError(w, r, http.StatusUnauthorized, "permission denied", 1)
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "request failed", err,
		slog.String("path", r.URL.Path),
		slog.String("component", "rest_api"))
	api.writeError(w, r, http.StatusInternalServerError, "internal server error", 1)
}

// badGatewayResponse reports a failure of the Olho Vivo service, including
// replies that could not be decoded.
func (api *RestAPI) badGatewayResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "upstream request failed", err,
		slog.String("path", r.URL.Path),
		slog.String("component", "rest_api"))
	api.writeError(w, r, http.StatusBadGateway, err.Error(), 2)
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	response := struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}{
		FieldErrors: fieldErrors,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.FromContext(r.Context()).Error("failed to encode validation error response", "error", err)
	}
}

// clientErrorResponse maps an error from the Olho Vivo client to a response.
func (api *RestAPI) clientErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var decodeErr *mapping.DecodeError
	switch {
	case errors.As(err, &decodeErr):
		if api.Metrics != nil {
			api.Metrics.ObserveDecodeFailure(decodeErr.Descriptor, decodeErr.Kind.String())
		}
		api.badGatewayResponse(w, r, err)
	case olhovivo.IsUpstream(err):
		api.badGatewayResponse(w, r, err)
	case errors.Is(err, olhovivo.ErrForecastCodeRequired):
		api.validationErrorResponse(w, r, map[string][]string{
			"stop":  {"stop or route is required"},
			"route": {"stop or route is required"},
		})
	default:
		api.serverErrorResponse(w, r, err)
	}
}
