package webui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sptrans.olhovivo.dev/internal/app"
	"sptrans.olhovivo.dev/internal/appconf"
	"sptrans.olhovivo.dev/internal/logging"
)

func newTestRouter(t *testing.T) *httprouter.Router {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/Login/Autenticar":
			_, _ = w.Write([]byte("true"))
		case "/Corredor":
			_, _ = w.Write([]byte("[{\"CodCorredor\": 10, \"CodCot\": 0, \"Nome\": \"S\xe3o Miguel\"}]"))
		case "/Posicao":
			_, _ = w.Write([]byte(`{"hr": "22:57", "vs": [{"p": "11433", "a": false, "py": -23.54, "px": -46.64}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(upstream.Close)

	cfg := appconf.Default()
	cfg.Upstream.BaseURL = upstream.URL
	cfg.Upstream.Token = "token"

	application, err := app.New(cfg, logging.Discard())
	require.NoError(t, err)
	require.NoError(t, application.Authenticate(context.Background()))

	router := httprouter.New()
	SetWebUIRoutes(router, &WebUI{Application: application})
	return router
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestDebugIndexHandler(t *testing.T) {
	router := newTestRouter(t)

	t.Run("lanes", func(t *testing.T) {
		rec := get(router, "/debug/?key=test&dataType=lanes")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), "Olho Vivo - Lanes")
		assert.Contains(t, rec.Body.String(), "São Miguel")
	})

	t.Run("positions", func(t *testing.T) {
		rec := get(router, "/debug/?key=test&dataType=positions&route=1273")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "11433")
	})

	t.Run("positions needs a route", func(t *testing.T) {
		rec := get(router, "/debug/?key=test&dataType=positions")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("schema", func(t *testing.T) {
		rec := get(router, "/debug/?key=test&dataType=schema")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "CodigoLinha")
	})

	t.Run("unknown data type", func(t *testing.T) {
		rec := get(router, "/debug/?key=test")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Choose a data type")
	})

	t.Run("requires a key", func(t *testing.T) {
		rec := get(router, "/debug/?dataType=lanes")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
