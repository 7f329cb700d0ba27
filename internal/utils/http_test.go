package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func serveParam(t *testing.T, path string, handle func(r *http.Request)) {
	t.Helper()

	router := httprouter.New()
	router.HandlerFunc(http.MethodGet, "/api/routes/:code/stops", func(w http.ResponseWriter, r *http.Request) {
		handle(r)
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestExtractIDFromParams(t *testing.T) {
	testCases := []struct {
		name string
		path string
		want string
	}{
		{"plain", "/api/routes/1273/stops", "1273"},
		{"json extension", "/api/routes/1273.json/stops", "1273"},
		{"inner dots kept", "/api/routes/12.73.json/stops", "12.73"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got string
			serveParam(t, tc.path, func(r *http.Request) {
				got = ExtractIDFromParams(r, "code")
			})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractCodeFromParams(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		serveParam(t, "/api/routes/34041/stops", func(r *http.Request) {
			code, fieldErrors := ExtractCodeFromParams(r, "code")
			assert.Equal(t, 34041, code)
			assert.Empty(t, fieldErrors)
		})
	})

	t.Run("invalid", func(t *testing.T) {
		serveParam(t, "/api/routes/abc/stops", func(r *http.Request) {
			code, fieldErrors := ExtractCodeFromParams(r, "code")
			assert.Zero(t, code)
			assert.Equal(t, []string{"code must be a positive integer"}, fieldErrors["code"])
		})
	})
}
