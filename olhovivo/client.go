package olhovivo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"sptrans.olhovivo.dev/internal/logging"
	"sptrans.olhovivo.dev/mapping"
)

// DefaultBaseURL is the root of version 0 of the Olho Vivo API.
const DefaultBaseURL = "http://api.olhovivo.sptrans.com.br/v0"

const authEndpoint = "Login/Autenticar"

// Request outcomes reported to an Observer.
const (
	OutcomeOK             = "ok"
	OutcomeRequestError   = "request_error"
	OutcomeStatusError    = "status_error"
	OutcomeAuthError      = "auth_error"
	OutcomeInvalidBody    = "invalid_body"
	OutcomeTransportError = "transport_error"
)

// Observer is notified once per request to the service.
type Observer interface {
	ObserveRequest(operation, outcome string, duration time.Duration)
}

// Config configures a Client. Zero fields take their DefaultConfig values.
type Config struct {
	BaseURL string
	// Timeout applies to the HTTP client built when HTTPClient is nil.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	// Encoding is the character set of response bodies.
	Encoding encoding.Encoding
	// Now supplies the date clock times are placed on.
	Now      func() time.Time
	Observer Observer
}

// DefaultConfig targets the public v0 API with a 15 second timeout and
// ISO-8859-1 bodies.
func DefaultConfig() Config {
	return Config{
		BaseURL:  DefaultBaseURL,
		Timeout:  15 * time.Second,
		Logger:   slog.Default(),
		Encoding: charmap.ISO8859_1,
		Now:      time.Now,
	}
}

// Client talks to the Olho Vivo service. It is safe for concurrent use.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	logger   *slog.Logger
	encoding encoding.Encoding
	observer Observer
	schema   *mapping.Schema

	mu      sync.RWMutex
	cookies []*http.Cookie
}

// NewClient builds a client. Zero fields of cfg take their DefaultConfig value.
func NewClient(cfg Config) (*Client, error) {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Logger == nil {
		cfg.Logger = def.Logger
	}
	if cfg.Encoding == nil {
		cfg.Encoding = def.Encoding
	}
	if cfg.Now == nil {
		cfg.Now = def.Now
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("olhovivo: invalid base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("olhovivo: base URL %q must be absolute", cfg.BaseURL)
	}

	return &Client{
		baseURL:  base,
		http:     cfg.HTTPClient,
		logger:   cfg.Logger.With(slog.String("component", "olhovivo_client")),
		encoding: cfg.Encoding,
		observer: cfg.Observer,
		schema:   NewSchema(cfg.Now),
	}, nil
}

// Schema returns the descriptors the client decodes with.
func (c *Client) Schema() *mapping.Schema {
	return c.schema
}

// Authenticated reports whether a session is stored.
func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cookies != nil
}

// Authenticate exchanges token for session cookies, which are replayed on
// every later request. A falsy reply yields an AuthenticationError and keeps
// the previous session, if any.
func (c *Client) Authenticate(ctx context.Context, token string) (err error) {
	const operation = "authenticate"

	start := time.Now()
	status := 0
	defer func() {
		c.finish(operation, authEndpoint, status, time.Since(start), err)
	}()

	rep, err := c.send(ctx, http.MethodPost, authEndpoint, url.Values{"token": {token}})
	if err != nil {
		return err
	}
	status = rep.status

	raw, parseErr := parseJSON(rep.body)
	if parseErr == nil {
		if msg, ok := messageOf(raw); ok {
			return &RequestError{Endpoint: authEndpoint, Message: msg}
		}
	}
	if !successful(rep.status) {
		return &StatusError{Endpoint: authEndpoint, StatusCode: rep.status}
	}
	if parseErr != nil && !errors.Is(parseErr, ErrEmptyResponse) {
		return fmt.Errorf("%s: %w", authEndpoint, parseErr)
	}
	if falsy(raw) {
		return &AuthenticationError{Reply: strings.TrimSpace(string(rep.body))}
	}

	c.mu.Lock()
	c.cookies = rep.cookies
	if c.cookies == nil {
		c.cookies = []*http.Cookie{}
	}
	c.mu.Unlock()

	logging.LogOperation(c.logger, "authenticated", slog.Int("cookies", len(rep.cookies)))
	return nil
}

// getJSON fetches endpoint and parses the reply into a generic JSON tree.
func (c *Client) getJSON(ctx context.Context, operation, endpoint string, params url.Values) (raw any, err error) {
	start := time.Now()
	status := 0
	defer func() {
		c.finish(operation, endpoint, status, time.Since(start), err)
	}()

	rep, err := c.send(ctx, http.MethodGet, endpoint, params)
	if err != nil {
		return nil, err
	}
	status = rep.status

	raw, parseErr := parseJSON(rep.body)
	if parseErr == nil {
		if msg, ok := messageOf(raw); ok {
			return nil, &RequestError{Endpoint: endpoint, Message: msg}
		}
	}
	if !successful(rep.status) {
		return nil, &StatusError{Endpoint: endpoint, StatusCode: rep.status}
	}
	if parseErr != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, parseErr)
	}
	return raw, nil
}

type reply struct {
	status  int
	body    []byte
	cookies []*http.Cookie
}

// send performs one request and returns the body transcoded to UTF-8.
// A body that fails to close fails the request.
func (c *Client) send(ctx context.Context, method, endpoint string, params url.Values) (rep *reply, err error) {
	u := c.baseURL.JoinPath(endpoint)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("olhovivo: %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	if endpoint != authEndpoint {
		c.mu.RLock()
		for _, cookie := range c.cookies {
			req.AddCookie(cookie)
		}
		c.mu.RUnlock()
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("olhovivo: %s: %w", endpoint, err)
	}
	defer logging.HandleDeferredError(&err, resp.Body.Close, c.logger, endpoint+" response body close")

	body, err := io.ReadAll(transform.NewReader(resp.Body, c.encoding.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("olhovivo: %s: reading body: %w", endpoint, err)
	}

	return &reply{status: resp.StatusCode, body: body, cookies: resp.Cookies()}, nil
}

func (c *Client) finish(operation, endpoint string, status int, d time.Duration, err error) {
	logging.LogUpstreamCall(c.logger, operation, endpoint, status, d, err)
	if c.observer != nil {
		c.observer.ObserveRequest(operation, outcomeOf(err), d)
	}
}

func outcomeOf(err error) string {
	var (
		reqErr    *RequestError
		statusErr *StatusError
		authErr   *AuthenticationError
	)
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &reqErr):
		return OutcomeRequestError
	case errors.As(err, &statusErr):
		return OutcomeStatusError
	case errors.As(err, &authErr):
		return OutcomeAuthError
	case errors.Is(err, ErrEmptyResponse), errors.Is(err, ErrInvalidJSON):
		return OutcomeInvalidBody
	default:
		return OutcomeTransportError
	}
}

func successful(status int) bool {
	return status >= 200 && status < 300
}

func parseJSON(body []byte) (any, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, ErrEmptyResponse
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data at offset %d", ErrInvalidJSON, dec.InputOffset())
	}
	return raw, nil
}

// messageOf recognizes the {"Message": "..."} reply by its shape alone.
func messageOf(raw any) (string, bool) {
	obj, ok := raw.(map[string]any)
	if !ok || len(obj) != 1 {
		return "", false
	}
	msg, ok := obj["Message"]
	if !ok {
		return "", false
	}
	switch v := msg.(type) {
	case string:
		return v, true
	case nil:
		return "", true
	default:
		return "", false
	}
}

func falsy(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return v == ""
	case json.Number:
		f, err := v.Float64()
		return err == nil && f == 0
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}
