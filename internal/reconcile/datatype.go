// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reconcile

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// canonicalDatatypes maps case-folded spellings to canonical datatype names.
var canonicalDatatypes = map[string]string{
	"coded":              "Coded",
	"numeric":            "Numeric",
	"number":             "Numeric",
	"text":               "Text",
	"free text":          "Text",
	"string":             "Text",
	"date":               "Date",
	"datetime":           "Datetime",
	"date time":          "Datetime",
	"time":               "Time",
	"boolean":            "Boolean",
	"bool":               "Boolean",
	"n/a":                "N/A",
	"na":                 "N/A",
	"none":               "N/A",
	"complex":            "Complex",
	"document":           "Document",
	"rule":               "Rule",
	"structured numeric": "Structured-Numeric",
	"structured-numeric": "Structured-Numeric",
}

// Canonical returns the canonical spelling of a datatype name. Inner
// whitespace is collapsed; unknown names pass through trimmed.
func Canonical(datatype string) string {
	s := strings.Join(strings.Fields(datatype), " ")
	if s == "" {
		return ""
	}
	if c, ok := canonicalDatatypes[cases.Fold().String(s)]; ok {
		return c
	}
	return s
}

// datatypesEqual compares two datatype names after canonicalization,
// ignoring case.
func datatypesEqual(a, b string) bool {
	f := cases.Fold()
	return f.String(Canonical(a)) == f.String(Canonical(b))
}

// agreement is the outcome of comparing an expected datatype with what the
// sources that found an identifier reported.
type agreement struct {
	expected string
	actual   string
	state    types.DatatypeState
}

// reconcileDatatype compares expected against the distinct datatypes
// reported by sources that found the identifier. Without an expectation or
// without any reported datatype nothing is asserted.
func reconcileDatatype(expected string, sources []string, results map[string]types.SourceAnswer) agreement {
	seen := make(map[string]struct{})
	var reported []string
	for _, name := range sources {
		ans := results[name]
		if !ans.Exists {
			continue
		}
		c := Canonical(ans.Datatype)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		reported = append(reported, c)
	}
	sort.Strings(reported)

	ag := agreement{
		expected: Canonical(expected),
		actual:   strings.Join(reported, ", "),
		state:    types.DatatypeNotAsserted,
	}
	if ag.expected == "" || len(reported) == 0 {
		return ag
	}

	ag.state = types.DatatypeMismatched
	for _, r := range reported {
		if datatypesEqual(ag.expected, r) {
			ag.state = types.DatatypeMatched
			break
		}
	}
	return ag
}
