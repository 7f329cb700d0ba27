package app

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"sptrans.olhovivo.dev/internal/appconf"
)

func TestBlankKeyIsInvalid(t *testing.T) {
	app := &Application{
		Config: appconf.Config{
			ApiKeys: []string{"key"},
		},
	}
	assert.True(t, app.IsInvalidAPIKey(""))
}

func TestRequestHasInvalidAPIKey(t *testing.T) {
	app := &Application{
		Config: appconf.Config{
			ApiKeys: []string{"alpha", "beta"},
		},
	}

	assert.False(t, app.RequestHasInvalidAPIKey(httptest.NewRequest("GET", "/api/lanes?key=beta", nil)))
	assert.True(t, app.RequestHasInvalidAPIKey(httptest.NewRequest("GET", "/api/lanes?key=gamma", nil)))
	assert.True(t, app.RequestHasInvalidAPIKey(httptest.NewRequest("GET", "/api/lanes", nil)))
}
