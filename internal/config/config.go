// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config turns a viper instance into a types.Config. Keys use the
// same snake_case names as the YAML configuration file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/pdiddy/metadata-verifier/internal/columns"
	"github.com/pdiddy/metadata-verifier/internal/identifier"
	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// Name is the application name used for the config file, env prefix, and
// default directories.
const Name = "metadata-verifier"

// EnvPrefix prefixes environment overrides, e.g. METADATA_VERIFIER_HTTP_TIMEOUT.
const EnvPrefix = "METADATA_VERIFIER"

// SetDefaults registers default values on v. userAgent is sent with every
// HTTP request.
func SetDefaults(v *viper.Viper, userAgent string) {
	v.SetDefault("http.timeout", 15*time.Second)
	v.SetDefault("http.user_agent", userAgent)

	v.SetDefault("columns.identifier_patterns", columns.DefaultIdentifierPatterns)
	v.SetDefault("columns.datatype_patterns", columns.DefaultDatatypePatterns)
	v.SetDefault("columns.tie_break", string(types.TieBreakFirst))

	v.SetDefault("placeholders", identifier.DefaultPlaceholders)

	v.SetDefault("registry.ocl.base_url", "https://api.openconceptlab.org")
	v.SetDefault("registry.ocl.org", "CIEL")
	v.SetDefault("registry.ocl.source", "CIEL")
	v.SetDefault("registry.snapshot.name", "snapshot")

	v.SetDefault("form.locale", "en")
	v.SetDefault("form.environments", []string{"dev", "uat"})

	v.SetDefault("verify.concurrency", 1)
	v.SetDefault("verify.lookup_timeout", 20*time.Second)

	v.SetDefault("catalog.dir", "."+Name)
	v.SetDefault("catalog.max_results", 20)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "auto")
}

// Load decodes v into a Config and validates it. Call SetDefaults first
// for a fully populated result.
func Load(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	err := v.Unmarshal(&cfg, viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}))
	if err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration values that no component can run with.
func Validate(cfg types.Config) error {
	switch cfg.Columns.TieBreak {
	case "", types.TieBreakFirst, types.TieBreakLast:
	default:
		return fmt.Errorf("columns.tie_break: unknown value %q: use first or last", cfg.Columns.TieBreak)
	}
	if cfg.Verify.Concurrency < 0 {
		return fmt.Errorf("verify.concurrency: must not be negative, got %d", cfg.Verify.Concurrency)
	}
	if cfg.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout: must not be negative, got %s", cfg.HTTP.Timeout)
	}

	seen := make(map[string]bool)
	for i, in := range cfg.Registry.Instances {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return fmt.Errorf("registry.instances[%d]: name is required", i)
		}
		if seen[name] {
			return fmt.Errorf("registry.instances[%d]: duplicate name %q", i, name)
		}
		seen[name] = true
	}
	return nil
}
