// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 1000000

// Export writes the concepts matching opts to w as "yaml" or "json". It
// ignores opts.MaxResults.
func (s *Store) Export(ctx context.Context, w io.Writer, format string, opts QueryOptions) error {
	opts.MaxResults = exportLimit
	concepts, err := s.Search(ctx, opts)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	if concepts == nil {
		concepts = []Concept{}
	}

	switch format {
	case "yaml", "":
		data, err := yaml.Marshal(concepts)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(concepts)
	default:
		return fmt.Errorf("unknown export format %q: use yaml or json", format)
	}
}
