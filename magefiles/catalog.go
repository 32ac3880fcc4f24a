package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// exportsDir holds concept export files downloaded from the catalog.
const exportsDir = "exports"

// Snapshot imports every concept export under exports/ into the local
// catalog snapshot. Unchanged files are skipped by the CLI.
func Snapshot() error {
	mg.Deps(Build)
	bin := filepath.Join(binDir, binName)
	if err := sh.RunV(bin, "catalog", "import", exportsDir); err != nil {
		return fmt.Errorf("catalog import: %w", err)
	}
	return nil
}
