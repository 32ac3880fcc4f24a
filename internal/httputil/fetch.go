// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the bounded HTTP helpers shared by every source
// adapter and the form fetcher.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// DefaultTimeout bounds a request when the configuration sets none.
const DefaultTimeout = 15 * time.Second

// maxBodyBytes caps how much of a response body is decoded.
const maxBodyBytes = 16 << 20

var (
	// ErrNotFound indicates the reference system does not know the resource.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable indicates the reference system failed or throttled the request.
	ErrUnavailable = errors.New("source unavailable")
)

// APIError reports a non-200 response from a reference system.
type APIError struct {
	Source     string
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d for %s", e.Source, e.StatusCode, e.URL)
}

// Is maps 404/410 to ErrNotFound and 429/5xx to ErrUnavailable.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusGone
	case ErrUnavailable:
		return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
	}
	return false
}

// NewClient returns an http.Client whose timeout comes from cfg.
func NewClient(cfg types.HTTPConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Request describes one JSON GET against a reference system.
type Request struct {
	// Source names the reference system in errors (e.g. "ocl-source").
	Source    string
	URL       string
	UserAgent string

	// Token is sent as "Authorization: Token <token>" when set.
	Token string

	// Username and Password are sent as basic auth when Username is set.
	Username string
	Password string
}

// GetJSON performs req and decodes a 200 response body into out. Any other
// status yields an *APIError.
func GetJSON(ctx context.Context, client *http.Client, req Request, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.UserAgent != "" {
		httpReq.Header.Set("User-Agent", req.UserAgent)
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Token "+req.Token)
	}
	if req.Username != "" {
		httpReq.SetBasicAuth(req.Username, req.Password)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s request: %w", req.Source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return &APIError{Source: req.Source, StatusCode: resp.StatusCode, URL: req.URL}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("parsing %s response: %w", req.Source, err)
	}
	return nil
}
