// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/metadata-verifier/internal/httputil"
	"github.com/pdiddy/metadata-verifier/pkg/types"
)

const testUUID = "4dae5b12-070f-4153-b1ca-fbec906106e1"

func TestOCLAdapterFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orgs/CIEL/collections/Starter/concepts/"+testUUID+"/", r.URL.Path)
		assert.Equal(t, "Token tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{
			"id": "` + testUUID + `",
			"external_id": "` + testUUID + `",
			"datatype": "Coded",
			"concept_class": "Question",
			"display_name": "Visit type",
			"url": "/orgs/CIEL/sources/CIEL/concepts/123/"
		}`))
	}))
	defer ts.Close()

	a := &OCLAdapter{
		Client: ts.Client(), AdapterID: NameCollection, BaseURL: ts.URL + "/",
		Org: "CIEL", Kind: KindCollection, Repo: "Starter", Token: "tok",
	}
	got, err := a.Lookup(context.Background(), testUUID)
	require.NoError(t, err)
	assert.True(t, got.Exists)
	assert.Equal(t, "Coded", got.Datatype)
	require.NotNil(t, got.Details)
	assert.Equal(t, "Visit type", got.Details.Display)
	assert.Equal(t, "Question", got.Details.Class)
	assert.Equal(t, NameCollection, a.Name())
}

func TestOCLAdapterNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"detail":"Not found."}`, http.StatusNotFound)
	}))
	defer ts.Close()

	a := &OCLAdapter{Client: ts.Client(), AdapterID: NameSource, BaseURL: ts.URL, Org: "CIEL", Kind: KindSource, Repo: "CIEL"}
	got, err := a.Lookup(context.Background(), testUUID)
	assert.False(t, got.Exists)
	assert.True(t, errors.Is(err, httputil.ErrNotFound))
}

func TestOCLAdapterEmptyBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	a := &OCLAdapter{Client: ts.Client(), AdapterID: NameSource, BaseURL: ts.URL, Org: "CIEL", Kind: KindSource, Repo: "CIEL"}
	got, err := a.Lookup(context.Background(), testUUID)
	assert.False(t, got.Exists)
	assert.True(t, errors.Is(err, httputil.ErrNotFound))
}

func TestInstanceAdapterFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openmrs/ws/rest/v1/concept/"+testUUID, r.URL.Path)
		assert.Equal(t, conceptView, r.URL.Query().Get("v"))
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "admin", user)
		assert.Equal(t, "Admin123", pass)
		w.Write([]byte(`{
			"uuid": "` + testUUID + `",
			"display": "Visit type",
			"datatype": {"display": "Coded"},
			"conceptClass": {"display": "Question"}
		}`))
	}))
	defer ts.Close()

	a := &InstanceAdapter{
		Client: ts.Client(),
		Instance: types.InstanceConfig{
			Name: "dev", BaseURL: ts.URL + "/openmrs", Username: "admin", Password: "Admin123",
		},
	}
	got, err := a.Lookup(context.Background(), testUUID)
	require.NoError(t, err)
	assert.True(t, got.Exists)
	assert.Equal(t, "Coded", got.Datatype)
	assert.Equal(t, "Question", got.Details.Class)
	assert.Equal(t, "dev", a.Name())
}

func TestInstanceAdapterErrorBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"error":{"message":"Object with given uuid doesn't exist"}}`))
	}))
	defer ts.Close()

	a := &InstanceAdapter{Client: ts.Client(), Instance: types.InstanceConfig{Name: "uat", BaseURL: ts.URL}}
	got, err := a.Lookup(context.Background(), testUUID)
	assert.False(t, got.Exists)
	assert.True(t, errors.Is(err, httputil.ErrNotFound))
	assert.Contains(t, err.Error(), "doesn't exist")
}

func TestInstanceAdapterServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	a := &InstanceAdapter{Client: ts.Client(), Instance: types.InstanceConfig{Name: "uat", BaseURL: ts.URL}}
	got := Resolve(context.Background(), a, testUUID, 0, nil)
	assert.False(t, got.Exists)
}

func TestNewRegistryOrder(t *testing.T) {
	cfg := types.Config{
		Registry: types.RegistryConfig{
			OCL: types.OCLConfig{BaseURL: "https://api.example.org", Org: "CIEL", Source: "CIEL", Collection: "Starter"},
			Instances: []types.InstanceConfig{
				{Name: "dev", BaseURL: "https://dev.example.org/openmrs"},
				{Name: "broken"},
				{Name: "uat", BaseURL: "https://uat.example.org/openmrs"},
			},
		},
	}
	extra := &mockAdapter{name: "snapshot"}

	got := NewRegistry(cfg, http.DefaultClient, extra)
	assert.Equal(t, []string{"source", "collection", "dev", "uat", "snapshot"}, Names(got))
}

func TestNewRegistrySkipsUnconfiguredCatalog(t *testing.T) {
	cfg := types.Config{
		Registry: types.RegistryConfig{
			OCL:       types.OCLConfig{Org: "CIEL", Source: "CIEL"},
			Instances: []types.InstanceConfig{{Name: "dev", BaseURL: "https://dev.example.org"}},
		},
	}
	assert.Equal(t, []string{"dev"}, Names(NewRegistry(cfg, http.DefaultClient)))
}
