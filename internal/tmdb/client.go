// Package tmdb is a client for the TMDB v3 REST API.
package tmdb

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
	"time"

	"github.com/google/uuid"

	"github.com/mmcdole/marquee/internal/decode"
	"github.com/mmcdole/marquee/internal/domain"
)

const (
	DefaultBaseURL  = "https://api.themoviedb.org/3"
	DefaultLanguage = "en-US"
	defaultTimeout  = 30 * time.Second
	userAgent       = "Marquee/1.0"
)

// APIError is a non-2xx response from TMDB.
// It matches domain.ErrTransport, plus ErrAuthFailed or ErrNotFound where applicable.
type APIError struct {
	StatusCode    int
	Method        string
	Path          string
	TMDBCode      int    // TMDB status_code from the error body, 0 if absent
	StatusMessage string // TMDB status_message from the error body
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("tmdb API error: %s %s returned status %d", e.Method, e.Path, e.StatusCode)
	if e.StatusMessage != "" {
		msg += ": " + e.StatusMessage
	}
	return msg
}

// Unwrap lets errors.Is match the transport and status sentinels
func (e *APIError) Unwrap() []error {
	errs := []error{domain.ErrTransport}
	switch e.StatusCode {
	case http.StatusUnauthorized:
		errs = append(errs, domain.ErrAuthFailed)
	case http.StatusNotFound:
		errs = append(errs, domain.ErrNotFound)
	}
	return errs
}

// IsAuthError returns true if this is an authentication error.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// Config holds the TMDB client configuration
type Config struct {
	BaseURL     string
	APIKey      string // v3 api_key query parameter
	AccessToken string // v4 read access token, sent as a bearer token
	Language    string
	Timeout     time.Duration

	// StrictDecoding fails a whole list when one item cannot be resolved.
	// When false the bad item is logged and dropped.
	StrictDecoding bool

	// IncludeAdult is sent as include_adult on searches
	IncludeAdult bool
}

// Client implements domain.SessionAPI and domain.MediaAPI against TMDB
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
	search     *decode.Resolver[domain.SearchResult]
}

var (
	_ domain.SessionAPI = (*Client)(nil)
	_ domain.MediaAPI   = (*Client)(nil)
)

// NewClient creates a new TMDB API client
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	c := &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
	c.search = newSearchResolver(c.mapPerson)
	return c
}

// IsConfigured returns true if the client has API credentials
func (c *Client) IsConfigured() bool {
	return c.cfg.APIKey != "" || c.cfg.AccessToken != ""
}

// doRequest performs an authenticated HTTP request and returns the body of a 2xx response
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	if c.cfg.APIKey != "" {
		query.Set("api_key", c.cfg.APIKey)
	}
	if query.Get("language") == "" && method == http.MethodGet {
		query.Set("language", c.cfg.Language)
	}
	reqURL := fmt.Sprintf("%s%s?%s", c.cfg.BaseURL, path, query.Encode())

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json;charset=utf-8")
	}
	if c.cfg.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	}

	requestID := uuid.NewString()
	c.logger.Debug("tmdb request", "method", method, "path", path, "requestID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("tmdb request failed", "error", err, "path", path, "requestID", requestID)
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", domain.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Method: method, Path: path}
		var status statusResponse
		if json.Unmarshal(respBody, &status) == nil {
			apiErr.TMDBCode = status.StatusCode
			apiErr.StatusMessage = status.StatusMessage
		}
		// Log without the response body or query, which carry credentials
		c.logger.Error("tmdb API error",
			"status", resp.StatusCode,
			"method", method,
			"path", path,
			"requestID", requestID,
		)
		return nil, apiErr
	}

	return respBody, nil
}

// getJSON performs a GET and decodes the body into result
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, result any) error {
	body, err := c.doRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return c.parseResponse(path, body, result)
}

// sendJSON performs a write request and checks TMDB's success flag
func (c *Client) sendJSON(ctx context.Context, method, path string, query url.Values, payload any) error {
	body, err := c.doRequest(ctx, method, path, query, payload)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	var status statusResponse
	if err := c.parseResponse(path, body, &status); err != nil {
		return err
	}
	if status.Success != nil && !*status.Success {
		return fmt.Errorf("%w: %s %s: %s", domain.ErrTransport, method, path, status.StatusMessage)
	}
	return nil
}

// parseResponse decodes a JSON body, classifying failures as parse failures
func (c *Client) parseResponse(path string, body []byte, result any) error {
	if err := json.Unmarshal(body, result); err != nil {
		c.logger.Error("JSON parse error", "error", err, "path", path, "bodyLen", len(body))
		var pe *decode.ParseError
		if errors.As(err, &pe) {
			return err
		}
		return fmt.Errorf("%w: %s: %w", domain.ErrMalformedResponse, path, err)
	}
	return nil
}

// resolveItems resolves raw elements with r, honoring StrictDecoding
func resolveItems[T any](c *Client, r *decode.Resolver[T], raws []json.RawMessage, what string) ([]T, error) {
	if c.cfg.StrictDecoding {
		items, err := r.ResolveAll(raws)
		if err != nil {
			c.logger.Error("failed to resolve items", "what", what, "error", err)
			return nil, err
		}
		return items, nil
	}
	return r.ResolveEach(raws, func(index int, err error) {
		c.logger.Warn("dropping unresolvable item", "what", what, "index", index, "error", err)
	}), nil
}
