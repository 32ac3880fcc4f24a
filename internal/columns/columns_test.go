// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package columns

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/metadata-verifier/pkg/types"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		cfg     types.ColumnConfig
		want    Location
	}{
		{
			name:    "identifier and datatype",
			headers: []string{"EMR_Concept_UUID", "Datatype"},
			want:    Location{Identifier: 0, Datatype: 1},
		},
		{
			name:    "no identifier column",
			headers: []string{"Name", "Datatype"},
			want:    Location{Identifier: NotFound, Datatype: 1},
		},
		{
			name:    "no datatype column",
			headers: []string{"Label", "Concept uuid"},
			want:    Location{Identifier: 1, Datatype: NotFound},
		},
		{
			name:    "matching is case-sensitive",
			headers: []string{"concept UUId", "DATATYPE"},
			want:    Location{Identifier: NotFound, Datatype: NotFound},
		},
		{
			name:    "first match wins by default",
			headers: []string{"Question UUID", "Datatype", "Answer UUID", "Data Type"},
			want:    Location{Identifier: 0, Datatype: 1},
		},
		{
			name:    "last match wins when configured",
			headers: []string{"Question UUID", "Datatype", "Answer UUID", "Data Type"},
			cfg:     types.ColumnConfig{TieBreak: types.TieBreakLast},
			want:    Location{Identifier: 2, Datatype: 3},
		},
		{
			name:    "identifier header never doubles as datatype",
			headers: []string{"Datatype UUID", "Datatype"},
			want:    Location{Identifier: 0, Datatype: 1},
		},
		{
			name:    "custom patterns replace defaults",
			headers: []string{"UUID", "Concept Id", "Kind"},
			cfg: types.ColumnConfig{
				IdentifierPatterns: []string{"Concept Id"},
				DatatypePatterns:   []string{"Kind"},
			},
			want: Location{Identifier: 1, Datatype: 2},
		},
		{
			name:    "empty headers",
			headers: nil,
			want:    Location{Identifier: NotFound, Datatype: NotFound},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Locate(tt.headers, tt.cfg)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Identifier != NotFound, got.HasIdentifier())
			assert.Equal(t, tt.want.Datatype != NotFound, got.HasDatatype())
		})
	}
}
