// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package form

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/metadata-verifier/pkg/types"
)

const (
	visitType = "164181AAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	newVisit  = "164180AAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	weight    = "5089AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	vitals    = "1114AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
)

func sampleDocument() Document {
	return Document{
		Name: "Intake",
		Pages: []Page{{
			Label: "Visit",
			Sections: []Section{{
				Label: "Details",
				Questions: []Question{
					{
						ID: "visitType", Label: "Visit type", Type: "obs",
						QuestionOptions: QuestionOptions{
							Rendering: "radio",
							Concept:   visitType,
							Answers:   []Answer{{Concept: newVisit, Label: "New"}},
						},
					},
					{
						ID: "vitals", Label: "Vitals", Type: "obsGroup",
						QuestionOptions: QuestionOptions{Rendering: "group", Concept: vitals},
						Questions: []Question{{
							ID: "weight", Label: "Weight", Type: "obs",
							QuestionOptions: QuestionOptions{Rendering: "number", Concept: weight},
						}},
					},
				},
			}},
		}, {
			Label: "Follow up",
			Sections: []Section{{
				Label: "Repeat",
				Questions: []Question{{
					ID: "weight2",
					QuestionOptions: QuestionOptions{Rendering: "number", Concept: weight},
				}},
			}},
		}},
	}
}

func TestFlatten(t *testing.T) {
	ix := Flatten(sampleDocument())
	require.Len(t, ix, 4)

	tests := []struct {
		id       string
		path     string
		datatype string
	}{
		{visitType, "Visit > Details > Visit type", "Coded"},
		{newVisit, "Visit > Details > Visit type > New", ""},
		{vitals, "Visit > Details > Vitals", "N/A"},
		{weight, "Visit > Details > Vitals > Weight", "Numeric"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			e, ok := ix.Lookup(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.path, e.Path)
			assert.Equal(t, tt.datatype, e.Datatype)
		})
	}
}

func TestFlattenFirstOccurrenceWins(t *testing.T) {
	e, ok := Flatten(sampleDocument()).Lookup(weight)
	require.True(t, ok)
	assert.Equal(t, "Visit > Details > Vitals > Weight", e.Path)
	assert.Equal(t, []string{"Follow up > Repeat > weight2"}, e.OtherPaths)
}

func TestIndexLookupIgnoresCase(t *testing.T) {
	ix := Flatten(sampleDocument())
	_, ok := ix.Lookup("  164181aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa ")
	assert.True(t, ok)
}

func TestFlattenEmptyDocument(t *testing.T) {
	assert.Empty(t, Flatten(EmptyDocument()))
}

func TestInferDatatype(t *testing.T) {
	tests := map[string]string{
		"number":           "Numeric",
		"multiCheckbox":    "Coded",
		"content-switcher": "Coded",
		"textarea":         "Text",
		"date":             "Date",
		"datetime":         "Datetime",
		"obsGroup":         "N/A",
		"markdown":         "",
	}
	for rendering, want := range tests {
		assert.Equal(t, want, InferDatatype(rendering), rendering)
	}
}

func TestIndexAdapter(t *testing.T) {
	a := &IndexAdapter{Feed: "dev+form", Index: Flatten(sampleDocument())}
	assert.Equal(t, "dev+form", a.Name())

	got, err := a.Lookup(context.Background(), visitType)
	require.NoError(t, err)
	assert.True(t, got.Exists)
	assert.Equal(t, "Coded", got.Datatype)
	assert.Equal(t, "Visit > Details > Visit type", got.Details.Path)

	got, err = a.Lookup(context.Background(), "4dae5b12-070f-4153-b1ca-fbec906106e1")
	require.NoError(t, err)
	assert.False(t, got.Exists)
}

func TestFeeds(t *testing.T) {
	feeds := Feeds(types.FormConfig{Environments: []string{"dev", "", "uat"}})
	assert.Equal(t, []Feed{
		{Name: "dev+form", Environment: "dev"},
		{Name: "uat+form", Environment: "uat"},
	}, feeds)
}

func TestHTTPFetcher(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openmrs/ws/rest/v1/o3/forms/intake", r.URL.Path)
		assert.Equal(t, "full", r.URL.Query().Get("v"))
		assert.Equal(t, "fr", r.URL.Query().Get("locale"))
		w.Write([]byte(`{"name":"Intake","pages":[{"label":"P","sections":[{"label":"S",
			"questions":[{"id":"q","label":"Q","questionOptions":{"rendering":"text","concept":"` + weight + `"}}]}]}]}`))
	}))
	defer ts.Close()

	f := &HTTPFetcher{
		Client: ts.Client(),
		Registry: types.RegistryConfig{Instances: []types.InstanceConfig{
			{Name: "dev", BaseURL: ts.URL + "/openmrs"},
		}},
	}
	doc, err := f.FetchForm(context.Background(), "intake", "fr", "dev")
	require.NoError(t, err)
	assert.Equal(t, "Intake", doc.Name)

	e, ok := Flatten(doc).Lookup(weight)
	require.True(t, ok)
	assert.Equal(t, "P > S > Q", e.Path)
	assert.Equal(t, "Text", e.Datatype)

	_, err = f.FetchForm(context.Background(), "intake", "", "prod")
	assert.Error(t, err)
}

type stubFetcher map[string]error

func (s stubFetcher) FetchForm(_ context.Context, _, _, env string) (Document, error) {
	if err := s[env]; err != nil {
		return Document{}, err
	}
	return sampleDocument(), nil
}

func TestLoadFallsBackToEmptyForm(t *testing.T) {
	feeds := []Feed{{Name: "dev+form", Environment: "dev"}, {Name: "uat+form", Environment: "uat"}}
	f := stubFetcher{"uat": errors.New("connection refused")}

	adapters := Load(context.Background(), f, "intake", "en", feeds, nil)
	require.Len(t, adapters, 2)
	assert.Equal(t, "dev+form", adapters[0].Name())
	assert.Len(t, adapters[0].Index, 4)
	assert.Equal(t, "uat+form", adapters[1].Name())
	assert.Empty(t, adapters[1].Index)
}
