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

// Adapter names for the two catalog views.
const (
	NameSource     = "source"
	NameCollection = "collection"
)

// Repository kinds in the catalog URL space.
const (
	KindSource     = "sources"
	KindCollection = "collections"
)

// OCLAdapter looks up a concept in one repository of an Open Concept Lab
// style catalog: either the general source or a curated collection of it.
type OCLAdapter struct {
	Client    *http.Client
	AdapterID string
	BaseURL   string
	Org       string
	Kind      string // KindSource or KindCollection
	Repo      string
	Token     string
	UserAgent string
}

// Name returns the adapter identifier.
func (a *OCLAdapter) Name() string { return a.AdapterID }

// Lookup fetches the concept by identifier. A 404 means not found.
func (a *OCLAdapter) Lookup(ctx context.Context, id string) (types.SourceAnswer, error) {
	reqURL := a.conceptURL(id)
	var c oclConcept
	err := httputil.GetJSON(ctx, a.Client, httputil.Request{
		Source:    a.AdapterID,
		URL:       reqURL,
		UserAgent: a.UserAgent,
		Token:     a.Token,
	}, &c)
	if err != nil {
		return types.NotFound(), err
	}
	if c.ID == "" && c.UUID == "" && c.ExternalID == "" {
		return types.NotFound(), fmt.Errorf("%s: empty concept for %s: %w", a.AdapterID, id, httputil.ErrNotFound)
	}

	details := &types.SourceDetails{
		Display: c.DisplayName,
		Class:   c.ConceptClass,
		URL:     c.URL,
	}
	return types.Found(c.Datatype, details), nil
}

func (a *OCLAdapter) conceptURL(id string) string {
	return fmt.Sprintf("%s/orgs/%s/%s/%s/concepts/%s/",
		strings.TrimRight(a.BaseURL, "/"),
		url.PathEscape(a.Org), a.Kind, url.PathEscape(a.Repo), url.PathEscape(id))
}

// oclConcept is the subset of the catalog concept JSON the adapter reads.
type oclConcept struct {
	ID           string `json:"id"`
	UUID         string `json:"uuid"`
	ExternalID   string `json:"external_id"`
	Datatype     string `json:"datatype"`
	ConceptClass string `json:"concept_class"`
	DisplayName  string `json:"display_name"`
	URL          string `json:"url"`
}
