// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"

	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// DefaultAdapterName names the snapshot source when the configuration
// gives none.
const DefaultAdapterName = "snapshot"

// Adapter serves registry lookups from the snapshot. It satisfies
// source.Adapter.
type Adapter struct {
	Store       *Store
	AdapterName string
}

// Name returns the adapter name.
func (a *Adapter) Name() string {
	if a.AdapterName == "" {
		return DefaultAdapterName
	}
	return a.AdapterName
}

// Lookup reports whether the snapshot holds id.
func (a *Adapter) Lookup(ctx context.Context, id string) (types.SourceAnswer, error) {
	c, ok, err := a.Store.Get(ctx, id)
	if err != nil {
		return types.NotFound(), err
	}
	if !ok {
		return types.NotFound(), nil
	}
	return types.Found(c.Datatype, &types.SourceDetails{
		Display: c.Display,
		Class:   c.Class,
		URL:     c.URL,
	}), nil
}
