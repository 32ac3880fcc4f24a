// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"net/http"

	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// NewRegistry builds the registry-mode adapters from configuration in a
// fixed order: catalog source, catalog collection, each instance, then any
// extra adapters (such as the local snapshot). Catalog views without a
// base URL or repository name are left out.
func NewRegistry(cfg types.Config, client *http.Client, extra ...Adapter) []Adapter {
	var adapters []Adapter

	ocl := cfg.Registry.OCL
	if ocl.BaseURL != "" && ocl.Source != "" {
		adapters = append(adapters, &OCLAdapter{
			Client:    client,
			AdapterID: NameSource,
			BaseURL:   ocl.BaseURL,
			Org:       ocl.Org,
			Kind:      KindSource,
			Repo:      ocl.Source,
			Token:     ocl.Token,
			UserAgent: cfg.HTTP.UserAgent,
		})
	}
	if ocl.BaseURL != "" && ocl.Collection != "" {
		adapters = append(adapters, &OCLAdapter{
			Client:    client,
			AdapterID: NameCollection,
			BaseURL:   ocl.BaseURL,
			Org:       ocl.Org,
			Kind:      KindCollection,
			Repo:      ocl.Collection,
			Token:     ocl.Token,
			UserAgent: cfg.HTTP.UserAgent,
		})
	}

	for _, in := range cfg.Registry.Instances {
		if in.Name == "" || in.BaseURL == "" {
			continue
		}
		adapters = append(adapters, &InstanceAdapter{
			Client:    client,
			Instance:  in,
			UserAgent: cfg.HTTP.UserAgent,
		})
	}

	return append(adapters, extra...)
}
