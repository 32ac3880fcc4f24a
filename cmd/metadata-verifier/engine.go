// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pdiddy/metadata-verifier/internal/catalog"
	"github.com/pdiddy/metadata-verifier/internal/form"
	"github.com/pdiddy/metadata-verifier/internal/httputil"
	"github.com/pdiddy/metadata-verifier/internal/identifier"
	"github.com/pdiddy/metadata-verifier/internal/reconcile"
	"github.com/pdiddy/metadata-verifier/internal/source"
	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// newEngine wires the configured adapters into an engine. The returned
// cleanup closes the snapshot store when one is enabled.
func newEngine(cfg types.Config, logger *zerolog.Logger) (*reconcile.Engine, func(), error) {
	client := httputil.NewClient(cfg.HTTP)
	cleanup := func() {}

	var extra []source.Adapter
	if cfg.Registry.Snapshot.Enabled {
		store, err := catalog.NewStore(cfg.Catalog, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("opening catalog snapshot: %w", err)
		}
		extra = append(extra, &catalog.Adapter{Store: store, AdapterName: cfg.Registry.Snapshot.Name})
		cleanup = func() { store.Close() }
	}

	engine := reconcile.NewEngine(reconcile.Options{
		Registry: source.NewRegistry(cfg, client, extra...),
		Feeds:    form.Feeds(cfg.Form),
		Fetcher: &form.HTTPFetcher{
			Client:    client,
			Registry:  cfg.Registry,
			UserAgent: cfg.HTTP.UserAgent,
		},
		FormID:        cfg.Form.FormID,
		Locale:        cfg.Form.Locale,
		Recognizer:    identifier.New(cfg.Placeholders),
		LookupTimeout: cfg.Verify.LookupTimeout,
		Logger:        logger,
	})
	return engine, cleanup, nil
}

// modeConfig reads --mode and --form and returns the mode with the form id
// applied to a copy of appConfig.
func modeConfig(cmd *cobra.Command) (types.Mode, types.Config, error) {
	cfg := appConfig

	modeFlag, _ := cmd.Flags().GetString("mode")
	mode, err := types.ParseMode(modeFlag)
	if err != nil {
		return "", cfg, err
	}

	if formID, _ := cmd.Flags().GetString("form"); formID != "" {
		cfg.Form.FormID = formID
	}
	if mode == types.ModeForm && cfg.Form.FormID == "" {
		return "", cfg, fmt.Errorf("form mode needs a form id: set form.form_id or pass --form")
	}
	return mode, cfg, nil
}

func addModeFlags(cmd *cobra.Command) {
	cmd.Flags().String("mode", string(types.ModeRegistry), "verification mode: registry or form")
	cmd.Flags().String("form", "", "form id for form mode (overrides form.form_id)")
}
