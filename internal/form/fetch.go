// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package form

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/metadata-verifier/internal/httputil"
	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// Fetcher retrieves one form definition from one environment.
type Fetcher interface {
	FetchForm(ctx context.Context, formID, locale, env string) (Document, error)
}

// HTTPFetcher fetches forms from the form endpoint of configured instances.
// The environment name selects the instance.
type HTTPFetcher struct {
	Client    *http.Client
	Registry  types.RegistryConfig
	UserAgent string
}

// FetchForm implements Fetcher.
func (f *HTTPFetcher) FetchForm(ctx context.Context, formID, locale, env string) (Document, error) {
	in, ok := f.Registry.Instance(env)
	if !ok || in.BaseURL == "" {
		return Document{}, fmt.Errorf("form environment %q has no configured instance", env)
	}
	if formID == "" {
		return Document{}, fmt.Errorf("form id is empty")
	}

	q := url.Values{}
	q.Set("v", "full")
	if locale != "" {
		q.Set("locale", locale)
	}
	reqURL := fmt.Sprintf("%s/ws/rest/v1/o3/forms/%s?%s",
		strings.TrimRight(in.BaseURL, "/"), url.PathEscape(formID), q.Encode())

	var doc Document
	if err := httputil.GetJSON(ctx, f.Client, httputil.Request{
		Source:    env + " form",
		URL:       reqURL,
		UserAgent: f.UserAgent,
		Username:  in.Username,
		Password:  in.Password,
	}, &doc); err != nil {
		return Document{}, fmt.Errorf("fetching form %s from %s: %w", formID, env, err)
	}
	return doc, nil
}
