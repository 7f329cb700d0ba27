package restapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"sptrans.olhovivo.dev/internal/app"
	"sptrans.olhovivo.dev/internal/appconf"
	"sptrans.olhovivo.dev/internal/logging"
)

const (
	upstreamToken = "0123456789abcdef"
	sessionCookie = "apiCredentials"
	sessionValue  = "session-42"
)

var upstreamFixtures = map[string]string{
	"/Linha/Buscar":                    "routes.json",
	"/Parada/Buscar":                   "stops.json",
	"/Parada/BuscarParadasPorLinha":    "stops_by_route.json",
	"/Parada/BuscarParadasPorCorredor": "stops_by_lane.json",
	"/Corredor":                        "lanes.json",
	"/Posicao":                         "positions.json",
	"/Previsao":                        "forecast.json",
	"/Previsao/Parada":                 "forecast_by_stop.json",
	"/Previsao/Linha":                  "forecast_by_route.json",
}

// fakeUpstream serves the Latin-1 fixtures under testdata the way the Olho
// Vivo service would. Overrides replace the reply for a path.
type fakeUpstream struct {
	t         *testing.T
	overrides map[string]string
	requests  atomic.Int32
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.requests.Add(1)
	w.Header().Set("Content-Type", "application/json; charset=iso-8859-1")

	if r.URL.Path == "/Login/Autenticar" {
		if r.URL.Query().Get("token") != upstreamToken {
			_, _ = w.Write([]byte("false"))
			return
		}
		http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: sessionValue})
		_, _ = w.Write([]byte("true"))
		return
	}

	if cookie, err := r.Cookie(sessionCookie); err != nil || cookie.Value != sessionValue {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"Message":"Authorization has been denied for this request."}`))
		return
	}

	if body, ok := f.overrides[r.URL.Path]; ok {
		_, _ = w.Write([]byte(body))
		return
	}

	name, ok := upstreamFixtures[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	body, err := os.ReadFile(filepath.Join("..", "..", "testdata", name))
	require.NoError(f.t, err)
	_, _ = w.Write(body)
}

// createTestApi wires a RestAPI to a fake upstream and opens its session.
func createTestApi(t *testing.T) (*RestAPI, *fakeUpstream) {
	t.Helper()

	upstream := &fakeUpstream{t: t, overrides: map[string]string{}}
	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	cfg := appconf.Default()
	cfg.Env = appconf.Test
	cfg.Upstream.BaseURL = server.URL
	cfg.Upstream.Token = upstreamToken

	application, err := app.New(cfg, logging.Discard())
	require.NoError(t, err)
	require.NoError(t, application.Authenticate(context.Background()))

	return NewRestAPI(application), upstream
}

func serveApi(t *testing.T, api *RestAPI, path string) *http.Response {
	t.Helper()

	server := httptest.NewServer(api.Handler())
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// serveApiAndRetrieveEndpoint requests path and decodes the JSON body.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, path string) (*http.Response, map[string]interface{}) {
	t.Helper()

	resp := serveApi(t, api, path)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var model map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &model), string(body))
	return resp, model
}

func listOf(t *testing.T, model map[string]interface{}) []interface{} {
	t.Helper()
	data, ok := model["data"].(map[string]interface{})
	require.True(t, ok, "data should be an object")
	list, ok := data["list"].([]interface{})
	require.True(t, ok, "data.list should be an array")
	return list
}

func entryOf(t *testing.T, model map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := model["data"].(map[string]interface{})
	require.True(t, ok, "data should be an object")
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok, "data.entry should be an object")
	return entry
}
