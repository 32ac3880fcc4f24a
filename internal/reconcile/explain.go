// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reconcile

import (
	"fmt"
	"strings"

	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// explain renders the human-readable description of an identifier verdict.
// The output depends only on the verdict, so equal verdicts explain equally.
func explain(v types.Verdict) string {
	var b strings.Builder

	if v.IsNotFoundIndicator {
		fmt.Fprintf(&b, "%q is a not found indicator: the identifier is not assigned yet.\n", strings.TrimSpace(v.Value))
		b.WriteString("No sources were checked.")
		return b.String()
	}

	fmt.Fprintf(&b, "Identifier: %s\n", strings.TrimSpace(v.Value))
	for _, name := range v.Sources {
		ans := v.SourceResults[name]
		if !ans.Exists {
			fmt.Fprintf(&b, "%s: Not Found\n", name)
			continue
		}
		if ans.Datatype != "" {
			fmt.Fprintf(&b, "%s: Found (%s)\n", name, ans.Datatype)
		} else {
			fmt.Fprintf(&b, "%s: Found\n", name)
		}
	}

	if v.Mode == types.ModeForm {
		writePaths(&b, v)
	}

	if v.ExpectedDatatype != "" || v.ActualDatatype != "" {
		if v.ExpectedDatatype != "" {
			fmt.Fprintf(&b, "Expected datatype: %s\n", v.ExpectedDatatype)
		}
		if v.ActualDatatype != "" {
			fmt.Fprintf(&b, "Actual datatype: %s\n", v.ActualDatatype)
		}
		fmt.Fprintf(&b, "Datatype: %s\n", v.DatatypeState)
	}

	b.WriteString(status(v))
	return b.String()
}

// writePaths lists where the identifier appears in the form, once per
// distinct path across feeds.
func writePaths(b *strings.Builder, v types.Verdict) {
	seen := make(map[string]bool)
	for _, name := range v.Sources {
		d := v.SourceResults[name].Details
		if d == nil {
			continue
		}
		for _, p := range append([]string{d.Path}, d.OtherPaths...) {
			if p == "" || seen[p] {
				continue
			}
			seen[p] = true
			fmt.Fprintf(b, "Path: %s\n", p)
		}
	}
}

func status(v types.Verdict) string {
	n, total := v.FoundCount(), len(v.Sources)
	unit := "sources"
	if v.Mode == types.ModeForm {
		unit = "form feeds"
	}
	switch {
	case n == 0:
		return fmt.Sprintf("Status: Not found in any of %d %s", total, unit)
	case v.HasDiscrepancy && v.IsValid:
		return fmt.Sprintf("Status: Valid, found in %d of %d %s", n, total, unit)
	case v.HasDiscrepancy:
		return fmt.Sprintf("Status: Discrepancy, found in %d of %d %s", n, total, unit)
	default:
		return fmt.Sprintf("Status: Valid, found in all %d %s", total, unit)
	}
}

// explainDatatype renders the description stored under a datatype cell.
func explainDatatype(v types.Verdict) string {
	switch v.DatatypeState {
	case types.DatatypeMatched:
		return fmt.Sprintf("Datatype %s matches the sources (%s).", v.ExpectedDatatype, v.ActualDatatype)
	case types.DatatypeMismatched:
		return fmt.Sprintf("Datatype mismatch: expected %s, sources report %s.", v.ExpectedDatatype, v.ActualDatatype)
	default:
		if v.ActualDatatype == "" {
			return fmt.Sprintf("Datatype %s not checked: no source reported a datatype.", v.ExpectedDatatype)
		}
		return fmt.Sprintf("Datatype not checked: no expected datatype (sources report %s).", v.ActualDatatype)
	}
}
