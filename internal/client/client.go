package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// apiPrefix is the registry API version prefix, joined after the base URL.
const apiPrefix = "/v0.1"

// Client is an HTTP client for an MCP registry
type Client struct {
	baseURL       string
	httpClient    *http.Client
	verbose       bool
	maxTries      uint
	retryInterval time.Duration
}

// NewClient creates a new registry client
func NewClient(baseURL string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxTries:      3,
		retryInterval: 500 * time.Millisecond,
	}
}

// SetVerbose enables request/response logging
func (c *Client) SetVerbose(verbose bool) {
	c.verbose = verbose
}

// BaseURL returns the configured registry base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListOptions are the query parameters accepted by the server listing endpoint
type ListOptions struct {
	Search  string
	Version string
	Limit   int
	Cursor  string
}

// ListServers lists servers from the registry, optionally filtered by search term
func (c *Client) ListServers(ctx context.Context, opts ListOptions) (*ServerListResponse, error) {
	params := url.Values{}
	if opts.Search != "" {
		params.Add("search", opts.Search)
	}
	if opts.Version != "" {
		params.Add("version", opts.Version)
	}
	if opts.Limit > 0 {
		params.Add("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Cursor != "" {
		params.Add("cursor", opts.Cursor)
	}

	path := apiPrefix + "/servers"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	status, body, err := c.request(ctx, "GET", path, nil, "")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, rejected(status, body)
	}

	var result ServerListResponse
	if err := decode(body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetServer fetches one version of a server. An empty version resolves to "latest".
func (c *Client) GetServer(ctx context.Context, name, version string) (*ServerResponse, error) {
	if version == "" {
		version = "latest"
	}
	path := fmt.Sprintf("%s/servers/%s/versions/%s",
		apiPrefix, url.PathEscape(name), url.PathEscape(version))

	status, body, err := c.request(ctx, "GET", path, nil, "")
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, newStatusError(ErrNotFound, status, name)
	}
	if status != http.StatusOK {
		return nil, rejected(status, body)
	}

	var result ServerResponse
	if err := decode(body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListServerVersions lists every published version of a server
func (c *Client) ListServerVersions(ctx context.Context, name string) (*VersionListResponse, error) {
	path := fmt.Sprintf("%s/servers/%s/versions", apiPrefix, url.PathEscape(name))

	status, body, err := c.request(ctx, "GET", path, nil, "")
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, newStatusError(ErrNotFound, status, name)
	}
	if status != http.StatusOK {
		return nil, rejected(status, body)
	}

	var result VersionListResponse
	if err := decode(body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// PublishServer creates a new server version in the registry
func (c *Client) PublishServer(ctx context.Context, descriptor map[string]interface{}, token string) (*ServerResponse, error) {
	status, body, err := c.request(ctx, "POST", apiPrefix+"/publish", descriptor, token)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusOK || status == http.StatusCreated:
		// fall through to decode
	case status == http.StatusUnauthorized:
		return nil, newStatusError(ErrAuthRequired, status, errorMessage(body))
	case status == http.StatusForbidden:
		return nil, newStatusError(ErrAuthFailed, status, errorMessage(body))
	case status == http.StatusConflict:
		return nil, newStatusError(ErrVersionExists, status, errorMessage(body))
	default:
		return nil, rejected(status, body)
	}

	var result ServerResponse
	if err := decode(body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateServerVersion replaces an already-published server version
func (c *Client) UpdateServerVersion(ctx context.Context, name, version string, descriptor map[string]interface{}, token string) (*ServerResponse, error) {
	path := fmt.Sprintf("%s/servers/%s/versions/%s",
		apiPrefix, url.PathEscape(name), url.PathEscape(version))

	status, body, err := c.request(ctx, "PUT", path, descriptor, token)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusOK:
		// fall through to decode
	case status == http.StatusUnauthorized:
		return nil, newStatusError(ErrAuthRequired, status, errorMessage(body))
	case status == http.StatusForbidden:
		return nil, newStatusError(ErrAuthFailed, status, errorMessage(body))
	case status == http.StatusNotFound:
		return nil, newStatusError(ErrVersionNotFound, status,
			fmt.Sprintf("%s@%s", name, version))
	default:
		return nil, rejected(status, body)
	}

	var result ServerResponse
	if err := decode(body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health checks if the registry is reachable
func (c *Client) Health(ctx context.Context) error {
	status, _, err := c.request(ctx, "GET", "/health", nil, "")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return newStatusError(ErrRejected, status, "registry health check failed")
	}
	return nil
}

type rawResponse struct {
	status int
	body   []byte
}

// request makes one API call with bounded retries. Connection failures and
// 5xx responses are retried with exponential backoff; every other response
// is returned to the caller for classification.
func (c *Client) request(ctx context.Context, method, path string, payload interface{}, token string) (int, []byte, error) {
	var body []byte
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = data
	}

	var lastServerErr rawResponse
	operation := func() (rawResponse, error) {
		resp, err := c.doRequest(ctx, method, path, body, token)
		if err != nil {
			if ctx.Err() != nil {
				return rawResponse{}, backoff.Permanent(err)
			}
			return rawResponse{}, err
		}
		if resp.status >= 500 {
			lastServerErr = resp
			return resp, fmt.Errorf("status %d", resp.status)
		}
		return resp, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInterval

	resp, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(c.maxTries))
	if err != nil {
		if lastServerErr.status >= 500 {
			return lastServerErr.status, lastServerErr.body, rejected(lastServerErr.status, lastServerErr.body)
		}
		return 0, nil, NewRegistryError(ErrUnreachable, err.Error())
	}

	return resp.status, resp.body, nil
}

// doRequest performs a single HTTP exchange
func (c *Client) doRequest(ctx context.Context, method, path string, body []byte, token string) (rawResponse, error) {
	reqURL := c.baseURL + path

	if c.verbose {
		fmt.Printf("🌐 %s %s\n", method, reqURL)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return rawResponse{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json, application/problem+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		if c.verbose {
			fmt.Printf("🔑 Authorization: Bearer %s\n", tokenPreview(token))
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return rawResponse{}, fmt.Errorf("request canceled: %w", ctx.Err())
		}
		return rawResponse{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return rawResponse{}, fmt.Errorf("failed to read response: %w", err)
	}

	if c.verbose {
		fmt.Printf("🔍 HTTP Response: %d %s\n", resp.StatusCode, resp.Status)
	}

	return rawResponse{status: resp.StatusCode, body: respBody}, nil
}

// decode parses a 2xx response body, surfacing malformed JSON distinctly
func decode(body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		return NewRegistryError(ErrMalformedResponse, err.Error())
	}
	return nil
}

// rejected builds the error for a definitively rejected request
func rejected(status int, body []byte) *RegistryError {
	return newStatusError(ErrRejected, status,
		fmt.Sprintf("status %d: %s", status, errorMessage(body)))
}

// errorMessage extracts a human-readable message from an error response body
func errorMessage(body []byte) string {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
		Title  string `json:"title"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Error != "":
			return payload.Error
		case payload.Detail != "":
			return payload.Detail
		case payload.Title != "":
			return payload.Title
		}
	}

	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	return text
}

// tokenPreview truncates a token so it is never logged in full
func tokenPreview(token string) string {
	if len(token) > 20 {
		return token[:20] + "..."
	}
	return token
}
