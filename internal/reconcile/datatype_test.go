// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/metadata-verifier/pkg/types"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"coded", "Coded"},
		{"  CODED  ", "Coded"},
		{"Number", "Numeric"},
		{"Free   Text", "Text"},
		{"date time", "Datetime"},
		{"NA", "N/A"},
		{"Structured Numeric", "Structured-Numeric"},
		{"Widget", "Widget"},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonical(tt.in))
		})
	}
}

func TestReconcileDatatype(t *testing.T) {
	results := map[string]types.SourceAnswer{
		"source":     types.Found("Coded", nil),
		"collection": types.NotFound(),
		"dev":        types.Found("coded", nil),
		"uat":        types.Found("", nil),
	}
	names := []string{"source", "collection", "dev", "uat"}

	tests := []struct {
		name     string
		expected string
		results  map[string]types.SourceAnswer
		want     types.DatatypeState
		actual   string
	}{
		{"matched", "Coded", results, types.DatatypeMatched, "Coded"},
		{"mismatched", "Text", results, types.DatatypeMismatched, "Coded"},
		{"no expectation", "", results, types.DatatypeNotAsserted, "Coded"},
		{"nothing reported", "Coded", map[string]types.SourceAnswer{"uat": types.Found("", nil)}, types.DatatypeNotAsserted, ""},
		{"not-found answers ignored", "Numeric", map[string]types.SourceAnswer{"collection": {Datatype: "Numeric"}}, types.DatatypeNotAsserted, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ag := reconcileDatatype(tt.expected, names, tt.results)
			assert.Equal(t, tt.want, ag.state)
			assert.Equal(t, tt.actual, ag.actual)
		})
	}
}
