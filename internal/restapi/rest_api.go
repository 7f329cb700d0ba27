package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"sptrans.olhovivo.dev/internal/app"
	"sptrans.olhovivo.dev/internal/webui"
)

type RestAPI struct {
	*app.Application
	compression CompressionConfig
}

// NewRestAPI creates a new RestAPI instance with default compression settings.
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		compression: DefaultCompressionConfig(),
	}
}

// Handler returns the complete proxy: every route behind the security,
// request logging and compression middleware.
func (api *RestAPI) Handler() http.Handler {
	router := httprouter.New()
	router.HandleMethodNotAllowed = true
	router.NotFound = http.HandlerFunc(api.sendNotFound)

	api.SetRoutes(router)
	webui.SetWebUIRoutes(router, &webui.WebUI{Application: api.Application})
	if api.Metrics != nil {
		router.Handler(http.MethodGet, "/metrics", api.Metrics.Handler())
	}

	var handler http.Handler = router
	handler = NewCompressionMiddleware(api.compression)(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	handler = api.WithSecurityHeaders(handler)
	return handler
}
