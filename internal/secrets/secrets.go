// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads reference-system credentials from a directory of
// plain-text files. Each file in the directory represents one secret: the
// filename is the key name and the file contents (trimmed) are the value.
//
// Supported key files: ocl-api-token, openmrs-<instance>-username,
// openmrs-<instance>-password.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/metadata-verifier/internal/logging"
	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// DefaultDir is the secrets directory relative to the working directory.
const DefaultDir = ".secrets/"

// KeyOCLToken holds the catalog API token.
const KeyOCLToken = "ocl-api-token"

// InstanceUsernameKey returns the key holding an instance's username.
func InstanceUsernameKey(instance string) string {
	return "openmrs-" + instance + "-username"
}

// InstancePasswordKey returns the key holding an instance's password.
func InstancePasswordKey(instance string) string {
	return "openmrs-" + instance + "-password"
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged as warnings but do not abort.
func Load(dir string, logger *zerolog.Logger) (map[string]string, error) {
	logger = logging.OrNop(logger)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn().Str("secret", name).Err(err).Msg("Could not read secret")
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Apply fills credentials that cfg leaves empty from secrets. Values already
// set in configuration win.
func Apply(cfg *types.Config, secrets map[string]string) {
	fill(&cfg.Registry.OCL.Token, secrets[KeyOCLToken])
	for i := range cfg.Registry.Instances {
		in := &cfg.Registry.Instances[i]
		fill(&in.Username, secrets[InstanceUsernameKey(in.Name)])
		fill(&in.Password, secrets[InstancePasswordKey(in.Name)])
	}
}

func fill(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}
