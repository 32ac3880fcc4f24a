// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package form

import (
	"context"

	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// IndexAdapter answers lookups from a prebuilt form index without network
// calls. It satisfies source.Adapter.
type IndexAdapter struct {
	Feed  string
	Index Index
}

// Name returns the feed name.
func (a *IndexAdapter) Name() string { return a.Feed }

// Lookup reports whether the form references id.
func (a *IndexAdapter) Lookup(_ context.Context, id string) (types.SourceAnswer, error) {
	e, ok := a.Index.Lookup(id)
	if !ok {
		return types.NotFound(), nil
	}
	return types.Found(e.Datatype, &types.SourceDetails{
		Display:    e.Label,
		Path:       e.Path,
		OtherPaths: e.OtherPaths,
	}), nil
}
