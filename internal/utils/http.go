package utils

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// ExtractIDFromParams retrieves a path parameter and removes a trailing ".json".
func ExtractIDFromParams(r *http.Request, paramName string) string {
	params := httprouter.ParamsFromContext(r.Context())
	return strings.TrimSuffix(params.ByName(paramName), ".json")
}

// ExtractCodeFromParams reads a numeric path parameter such as a route or
// lane code. Failures are reported in the fieldErrors format.
func ExtractCodeFromParams(r *http.Request, paramName string) (int, map[string][]string) {
	code, err := ValidateCode(ExtractIDFromParams(r, paramName))
	if err != nil {
		return 0, map[string][]string{paramName: {err.Error()}}
	}
	return code, nil
}
