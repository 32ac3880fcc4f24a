// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package columns locates the identifier and datatype columns of a sheet by
// substring matching against its header row.
package columns

import (
	"strings"

	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// Default header substrings. Matching is case-sensitive.
var (
	DefaultIdentifierPatterns = []string{"UUID", "Uuid", "uuid"}
	DefaultDatatypePatterns   = []string{"Datatype", "DataType", "datatype", "Data Type", "Data type"}
)

// NotFound marks an absent column.
const NotFound = -1

// Location holds the located column indexes; NotFound when absent.
type Location struct {
	Identifier int `json:"identifier" yaml:"identifier"`
	Datatype   int `json:"datatype" yaml:"datatype"`
}

// HasIdentifier reports whether an identifier column was found.
func (l Location) HasIdentifier() bool { return l.Identifier != NotFound }

// HasDatatype reports whether a datatype column was found.
func (l Location) HasDatatype() bool { return l.Datatype != NotFound }

// Locate scans headers left to right. With TieBreakFirst (the default) the
// leftmost matching header wins; with TieBreakLast every later match
// overwrites the earlier one. Empty pattern lists select the defaults.
func Locate(headers []string, cfg types.ColumnConfig) Location {
	idPatterns := cfg.IdentifierPatterns
	if len(idPatterns) == 0 {
		idPatterns = DefaultIdentifierPatterns
	}
	dtPatterns := cfg.DatatypePatterns
	if len(dtPatterns) == 0 {
		dtPatterns = DefaultDatatypePatterns
	}
	last := cfg.TieBreak == types.TieBreakLast

	loc := Location{Identifier: NotFound, Datatype: NotFound}
	for i, h := range headers {
		// A header naming an identifier column is never a datatype column.
		switch {
		case matchesAny(h, idPatterns):
			if last || loc.Identifier == NotFound {
				loc.Identifier = i
			}
		case matchesAny(h, dtPatterns):
			if last || loc.Datatype == NotFound {
				loc.Datatype = i
			}
		}
	}
	return loc
}

func matchesAny(header string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(header, p) {
			return true
		}
	}
	return false
}
