// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package identifier decides whether a cell value is a well-formed concept
// identifier, a "not yet assigned" placeholder, or neither.
package identifier

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// Kind classifies a raw cell value.
type Kind int

const (
	Malformed Kind = iota
	Placeholder
	WellFormed
)

func (k Kind) String() string {
	switch k {
	case Placeholder:
		return "placeholder"
	case WellFormed:
		return "well-formed"
	default:
		return "malformed"
	}
}

// DefaultPlaceholders are the sentinel tokens meaning "identifier
// intentionally not assigned yet".
var DefaultPlaceholders = []string{
	"N/A", "NA", "TBD", "PENDING", "NOT FOUND", "NOTFOUND", "NOT_FOUND",
}

// canonicalLen is the length of the hyphenated 8-4-4-4-12 form.
const canonicalLen = 36

// Recognizer classifies cell values against a fixed placeholder set.
// It is immutable after construction and safe for concurrent use.
type Recognizer struct {
	placeholders map[string]struct{}
}

// New returns a Recognizer for the given placeholder tokens. An empty list
// selects DefaultPlaceholders.
func New(placeholders []string) *Recognizer {
	if len(placeholders) == 0 {
		placeholders = DefaultPlaceholders
	}
	r := &Recognizer{placeholders: make(map[string]struct{}, len(placeholders))}
	for _, p := range placeholders {
		key := fold(p)
		if key != "" {
			r.placeholders[key] = struct{}{}
		}
	}
	return r
}

var defaultRecognizer = New(nil)

// Classify classifies raw with the default placeholder set.
func Classify(raw string) Kind {
	return defaultRecognizer.Classify(raw)
}

// Classify returns Placeholder when raw matches a sentinel token (checked
// first, so a token never degrades to Malformed), WellFormed when it is a
// canonical identifier, and Malformed otherwise.
func (r *Recognizer) Classify(raw string) Kind {
	if r.IsPlaceholder(raw) {
		return Placeholder
	}
	if IsWellFormed(raw) {
		return WellFormed
	}
	return Malformed
}

// IsPlaceholder reports whether raw, trimmed and case-folded, is one of the
// recognizer's sentinel tokens.
func (r *Recognizer) IsPlaceholder(raw string) bool {
	key := fold(raw)
	if key == "" {
		return false
	}
	_, ok := r.placeholders[key]
	return ok
}

// IsWellFormed reports whether raw (surrounding whitespace ignored) is a
// 36-character hyphenated hexadecimal identifier with version nibble 1-5 and
// variant nibble 8, 9, a, or b. Case is ignored.
func IsWellFormed(raw string) bool {
	s := strings.TrimSpace(raw)
	// uuid.Parse also accepts braces, urn: prefixes, and the 32-digit form.
	if len(s) != canonicalLen {
		return false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	if v := id.Version(); v < 1 || v > 5 {
		return false
	}
	return id.Variant() == uuid.RFC4122
}

// Normalize returns the trimmed, lowercased form of a well-formed identifier
// for use in lookups.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// fold trims and case-folds s. A Caser is stateful, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
