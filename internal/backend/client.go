// Package backend is the gateway's client for the campus platform REST
// API. The API is an external collaborator: the gateway forwards JSON in
// both directions and never models the platform's rows beyond the auth
// profile.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// APIError is a non-2xx response from the backend. Detail carries the
// backend's "detail" message and is surfaced to callers verbatim.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return e.Detail
}

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL string, log *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

// do issues one request. token may be empty for unauthenticated calls.
// The context comes from the originating browser request, so navigating
// away cancels the upstream call as well.
func (c *Client) do(ctx context.Context, method, path, token string, body interface{}, out interface{}) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug("backend error", zap.String("path", path), zap.Int("status", resp.StatusCode))
		return &APIError{Status: resp.StatusCode, Detail: decodeDetail(resp.Body, resp.StatusCode)}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeDetail pulls the "detail" field out of an error body. When the
// body is not the expected shape the status line stands in, so the caller
// always has something to show.
func decodeDetail(r io.Reader, status int) string {
	var e struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(r).Decode(&e); err == nil && e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed: %s", http.StatusText(status))
}

func (c *Client) get(ctx context.Context, path, token string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, token, nil, out)
}

func (c *Client) post(ctx context.Context, path, token string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, token, body, out)
}
