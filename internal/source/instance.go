// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/metadata-verifier/internal/httputil"
	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// conceptView asks the REST API for only the fields the adapter reads.
const conceptView = "custom:(uuid,display,datatype:(display),conceptClass:(display))"

// InstanceAdapter looks up a concept directly on a deployed instance's REST
// API (dev, uat, ...).
type InstanceAdapter struct {
	Client    *http.Client
	Instance  types.InstanceConfig
	UserAgent string
}

// Name returns the instance name.
func (a *InstanceAdapter) Name() string { return a.Instance.Name }

// Lookup fetches /ws/rest/v1/concept/{id}. A 404 or an error body means the
// concept does not exist on this instance.
func (a *InstanceAdapter) Lookup(ctx context.Context, id string) (types.SourceAnswer, error) {
	reqURL := fmt.Sprintf("%s/ws/rest/v1/concept/%s?v=%s",
		strings.TrimRight(a.Instance.BaseURL, "/"), url.PathEscape(id), url.QueryEscape(conceptView))

	var c instanceConcept
	err := httputil.GetJSON(ctx, a.Client, httputil.Request{
		Source:    a.Instance.Name,
		URL:       reqURL,
		UserAgent: a.UserAgent,
		Username:  a.Instance.Username,
		Password:  a.Instance.Password,
	}, &c)
	if err != nil {
		return types.NotFound(), err
	}
	if c.Error != nil {
		return types.NotFound(), fmt.Errorf("%s: %s: %w", a.Instance.Name, c.Error.Message, httputil.ErrNotFound)
	}
	if c.UUID == "" {
		return types.NotFound(), fmt.Errorf("%s: empty concept for %s: %w", a.Instance.Name, id, httputil.ErrNotFound)
	}

	details := &types.SourceDetails{Display: c.Display}
	var datatype string
	if c.Datatype != nil {
		datatype = c.Datatype.Display
	}
	if c.ConceptClass != nil {
		details.Class = c.ConceptClass.Display
	}
	return types.Found(datatype, details), nil
}

type instanceConcept struct {
	UUID         string        `json:"uuid"`
	Display      string        `json:"display"`
	Datatype     *restRef      `json:"datatype"`
	ConceptClass *restRef      `json:"conceptClass"`
	Error        *restErrorMsg `json:"error"`
}

type restRef struct {
	Display string `json:"display"`
}

type restErrorMsg struct {
	Message string `json:"message"`
}
