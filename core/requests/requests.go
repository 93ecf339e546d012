// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

/*
Package requests is the HTTP transport for the doujinshi.info API.

It owns request construction (query parameters, form bodies, multipart
file uploads, bearer authentication), response decoding into gjson
values, an LRU cache for GET responses, and optional client-side
throttling. It performs no retries; a failed round-trip surfaces to the
caller as-is.
*/
package requests

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	config "github.com/layolu/godoujinshiinfo/configs"
	"github.com/layolu/godoujinshiinfo/core/requests/lrucache"
)

const defaultTimeout = 30 * time.Second

var (
	errInvalidJSON      = errors.New("response contained invalid JSON")
	errAPIResponseError = errors.New("API response indicated error")
)

// APIError represents a non-2xx response from the API.
type APIError struct {
	// StatusCode is the HTTP status code from the response. Always >= 400.
	StatusCode int

	// Message contains the error message from the API response body,
	// falling back to the HTTP status text.
	Message string

	// Body is the raw response body. Callers needing more than the
	// message (validation errors, etc.) can inspect it directly.
	Body []byte

	// Err is the underlying error cause, errAPIResponseError for API errors.
	Err error
}

// Error returns a formatted error message including the status code and API message if available.
func (e *APIError) Error() string {
	var b strings.Builder

	b.WriteString(e.Err.Error())

	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}

	b.WriteString(fmt.Sprintf(" (status code: %d)", e.StatusCode))

	return b.String()
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Client performs API round-trips against a single endpoint base URL.
type Client struct {
	httpClient *http.Client
	endpoint   string
	userAgent  string
	tokens     TokenSource
	limiter    *rate.Limiter
	cache      *lrucache.LRUCache
	cacheTTL   time.Duration
}

// NewClient builds a Client from the configuration.
//
// tokens may be nil for a purely anonymous client.
func NewClient(cfg *config.Config, tokens TokenSource) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		endpoint:   cfg.Basic.Endpoint,
		userAgent:  cfg.Basic.UserAgent,
		tokens:     tokens,
	}

	if cfg.RateLimit.Enabled {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)
	}

	if cfg.Cache.Enabled {
		cache, err := lrucache.NewLRUCache(cfg.Cache.Size)
		if err != nil {
			// Size is validated by the config package; a failure here is a bug.
			panic(fmt.Sprintf("failed to create response cache: %v", err))
		}

		c.cache = cache
		c.cacheTTL = cfg.Cache.TTL
	}

	return c
}

// SetTokenSource attaches the bearer credential supplier.
//
// Split out of NewClient because the token manager that implements
// TokenSource itself issues its refresh calls through this Client.
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

// Get performs a GET request and decodes the response body.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (gjson.Result, error) {
	return c.Do(ctx, RequestOptions{Method: http.MethodGet, Path: path, Params: params})
}

// Post performs a POST request and decodes the response body.
func (c *Client) Post(ctx context.Context, opts RequestOptions) (gjson.Result, error) {
	opts.Method = http.MethodPost

	return c.Do(ctx, opts)
}

// Put performs a PUT request and decodes the response body.
func (c *Client) Put(ctx context.Context, opts RequestOptions) (gjson.Result, error) {
	opts.Method = http.MethodPut

	return c.Do(ctx, opts)
}

// Delete performs a DELETE request and decodes the response body.
func (c *Client) Delete(ctx context.Context, opts RequestOptions) (gjson.Result, error) {
	opts.Method = http.MethodDelete

	return c.Do(ctx, opts)
}

// Do sends an HTTP request described by opts and returns the decoded JSON body.
//
// Non-2xx responses are returned as *APIError. A non-JSON 2xx body is an error:
// every endpoint of this API speaks JSON.
func (c *Client) Do(ctx context.Context, opts RequestOptions) (gjson.Result, error) {
	targetURL, err := c.buildURL(opts)
	if err != nil {
		return gjson.Result{}, err
	}

	bearer := ""
	if c.tokens != nil {
		bearer = c.tokens.Bearer()
	}

	// A cached GET response short-circuits the network entirely.
	if body, ok := c.cachedResponse(opts, targetURL, bearer); ok {
		return gjson.ParseBytes(body), nil
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return gjson.Result{}, fmt.Errorf("rate limiter wait aborted: %w", err)
		}
	}

	req, err := c.newRequest(ctx, opts, targetURL, bearer)
	if err != nil {
		return gjson.Result{}, err
	}

	statusCode, body, err := c.sendRequest(req)
	if err != nil {
		return gjson.Result{}, err
	}

	if statusCode >= http.StatusBadRequest {
		return gjson.Result{}, newAPIError(statusCode, body)
	}

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w: %s", errInvalidJSON, string(body))
	}

	c.storeResponse(opts, targetURL, bearer, statusCode, body)

	return gjson.ParseBytes(body), nil
}

func (c *Client) buildURL(opts RequestOptions) (string, error) {
	base, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", c.endpoint, err)
	}

	ref, err := url.Parse(opts.Path)
	if err != nil {
		return "", fmt.Errorf("invalid request path %q: %w", opts.Path, err)
	}

	target := base.ResolveReference(ref)
	if len(opts.Params) > 0 {
		target.RawQuery = opts.Params.Encode()
	}

	return target.String(), nil
}

// newRequest constructs an *http.Request from RequestOptions.
func (c *Client) newRequest(
	ctx context.Context,
	opts RequestOptions,
	targetURL, bearer string,
) (*http.Request, error) {
	var (
		reqBody     io.Reader
		contentType string
	)

	if len(opts.Files) > 0 {
		body, formContentType, err := createMultipartFormData(opts.Form, opts.Files)
		if err != nil {
			return nil, err
		}

		reqBody = body
		contentType = formContentType
	} else if len(opts.Form) > 0 {
		form := url.Values{}
		for k, v := range opts.Form {
			form.Set(k, v)
		}

		reqBody = strings.NewReader(form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, targetURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return req, nil
}

// sendRequest executes the HTTP request and reads the full response body.
func (c *Client) sendRequest(req *http.Request) (int, []byte, error) {
	requestID := uuid.NewString()
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	log.Debug().
		Str("request_id", requestID).
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("API round-trip")

	return resp.StatusCode, body, nil
}

func newAPIError(statusCode int, body []byte) *APIError {
	// Attempt to extract an error message from the JSON body.
	message := gjson.GetBytes(body, "message").String()

	// Fall back to the HTTP status text if no JSON message is found.
	if message == "" {
		message = http.StatusText(statusCode)
	}

	// As a final fallback for unknown status codes, use a generic error message.
	if message == "" {
		message = "An unknown API error occurred"
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    message,
		Body:       body,
		Err:        errAPIResponseError,
	}
}

// createMultipartFormData constructs multipart form data from plain fields
// and file attachments.
func createMultipartFormData(
	fields map[string]string,
	files map[string]io.Reader,
) (*bytes.Buffer, string, error) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			_ = writer.Close()

			return nil, "", fmt.Errorf("failed to write multipart form field %q: %w", k, err)
		}
	}

	for k, r := range files {
		part, err := writer.CreateFormFile(k, k)
		if err != nil {
			_ = writer.Close()

			return nil, "", fmt.Errorf("failed to create multipart file field %q: %w", k, err)
		}

		if _, err := io.Copy(part, r); err != nil {
			_ = writer.Close()

			return nil, "", fmt.Errorf("failed to copy multipart file %q: %w", k, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}
