package olhovivo

import (
	"errors"
	"fmt"
)

// ErrForecastCodeRequired is returned by GetForecast when neither a stop nor
// a route code is given. No request is made.
var ErrForecastCodeRequired = errors.New("olhovivo: forecast needs a stop code or a route code")

// ErrEmptyResponse is returned when the service answers with an empty body
// where a JSON document is expected.
var ErrEmptyResponse = errors.New("olhovivo: empty response body")

// ErrInvalidJSON is returned when a response body is not a single JSON document.
var ErrInvalidJSON = errors.New("olhovivo: invalid JSON in response")

// AuthenticationError means the service rejected the API token.
type AuthenticationError struct {
	// Reply is the raw falsy body the service sent back, e.g. "false".
	Reply string
}

func (e *AuthenticationError) Error() string {
	if e.Reply == "" {
		return "olhovivo: authentication failed: empty reply"
	}
	return "olhovivo: authentication failed: service replied " + e.Reply
}

// RequestError carries the message of a {"Message": ...} reply, which the
// service sends for unauthenticated or malformed requests.
type RequestError struct {
	Endpoint string
	Message  string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("olhovivo: %s: %s", e.Endpoint, e.Message)
}

// StatusError is returned for non-2xx replies that are not a RequestError.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("olhovivo: %s: unexpected status %d", e.Endpoint, e.StatusCode)
}

// IsUpstream reports whether err was produced by the service or by decoding
// its reply, as opposed to a local failure.
func IsUpstream(err error) bool {
	var (
		authErr   *AuthenticationError
		reqErr    *RequestError
		statusErr *StatusError
	)
	return errors.As(err, &authErr) || errors.As(err, &reqErr) || errors.As(err, &statusErr) ||
		errors.Is(err, ErrEmptyResponse) || errors.Is(err, ErrInvalidJSON)
}
