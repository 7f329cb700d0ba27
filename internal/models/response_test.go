package models

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResponse(t *testing.T) {
	testData := map[string]string{"key": "value"}

	before := time.Now().UnixMilli()
	response := NewResponse(http.StatusCreated, testData, "Resource Created")
	after := time.Now().UnixMilli()

	assert.Equal(t, http.StatusCreated, response.Code)
	assert.Equal(t, testData, response.Data)
	assert.Equal(t, "Resource Created", response.Text)
	assert.Equal(t, 2, response.Version)
	assert.GreaterOrEqual(t, response.CurrentTime, before)
	assert.LessOrEqual(t, response.CurrentTime, after)
}

func TestNewOKResponse(t *testing.T) {
	response := NewOKResponse("all good")

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "OK", response.Text)
	assert.Equal(t, "all good", response.Data)
}

func TestNewEntryResponse(t *testing.T) {
	entry := map[string]int{"code": 8}
	response := NewEntryResponse(entry)

	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, entry, data["entry"])
	assert.Equal(t, http.StatusOK, response.Code)
}

func TestNewListResponse(t *testing.T) {
	list := []string{"item1", "item2"}
	response := NewListResponse(list)

	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, list, data["list"])
	assert.False(t, data["limitExceeded"].(bool))
}

func TestResponseModelJSON(t *testing.T) {
	response := NewListResponse([]int{1, 2})

	b, err := json.Marshal(response)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, 200.0, decoded["code"])
	assert.Equal(t, 2.0, decoded["version"])
	assert.Equal(t, "OK", decoded["text"])
	assert.Equal(t, []interface{}{1.0, 2.0}, decoded["data"].(map[string]interface{})["list"])

	empty, err := json.Marshal(NewResponse(http.StatusNotFound, nil, "resource not found"))
	require.NoError(t, err)
	assert.NotContains(t, string(empty), `"data"`)
}
