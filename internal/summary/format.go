// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summary

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// Output formats accepted by Write.
const (
	FormatNameTable = "table"
	FormatNameJSON  = "json"
	FormatNameYAML  = "yaml"
)

// Write renders ms in the named format.
func Write(ms types.MultiStats, format string, w io.Writer) error {
	switch format {
	case FormatNameTable, "":
		FormatTable(ms, w)
		return nil
	case FormatNameJSON:
		return FormatJSON(ms, w)
	case FormatNameYAML:
		return FormatYAML(ms, w)
	default:
		return fmt.Errorf("unknown format %q: use table, json or yaml", format)
	}
}

// FormatTable writes one row per sheet plus a combined row, then the
// per-source breakdown of the combined statistics.
func FormatTable(ms types.MultiStats, w io.Writer) {
	if ms.Combined.Total == 0 && len(ms.Sheets) == 0 {
		fmt.Fprintln(w, "No identifiers verified.")
		return
	}

	fmt.Fprintf(w, "%-24s  %6s  %12s  %12s  %12s  %12s  %s\n",
		"Sheet", "Total", "Found in all", "Discrepancy", "Not found", "Placeholder", "Datatype (ok/bad/none)")
	fmt.Fprintln(w, strings.Repeat("-", 118))

	for _, sh := range ms.Sheets {
		writeStatsRow(w, truncate(sh.Name, 24), sh.Stats)
	}
	if len(ms.Sheets) != 1 {
		fmt.Fprintln(w, strings.Repeat("-", 118))
		writeStatsRow(w, "All sheets", ms.Combined)
	}

	c := ms.Combined
	if len(c.SourceOrder) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-24s  %6s  %10s  %6s\n", "Source", "Found", "Not found", "Found%")
	fmt.Fprintln(w, strings.Repeat("-", 52))
	for _, name := range c.SourceOrder {
		ss := c.Sources[name]
		fmt.Fprintf(w, "%-24s  %6d  %10d  %5d%%\n", truncate(name, 24), ss.Found, ss.NotFound, ss.FoundPercent)
	}
}

func writeStatsRow(w io.Writer, name string, s types.Stats) {
	fmt.Fprintf(w, "%-24s  %6d  %12s  %12s  %12s  %12s  %d/%d/%d\n",
		name, s.Total,
		countPct(s.FoundInAll, s.FoundInAllPercent),
		countPct(s.Discrepancies, s.DiscrepancyPercent),
		countPct(s.NotFound, s.NotFoundPercent),
		countPct(s.Placeholders, s.PlaceholderPercent),
		s.DatatypeMatched, s.DatatypeMismatched, s.DatatypeNotAsserted)
}

func countPct(n, pct int) string {
	return fmt.Sprintf("%d (%d%%)", n, pct)
}

// FormatJSON writes ms as indented JSON to w.
func FormatJSON(ms types.MultiStats, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ms)
}

// FormatYAML writes ms as YAML to w.
func FormatYAML(ms types.MultiStats, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ms); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
