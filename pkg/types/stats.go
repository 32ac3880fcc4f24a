// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SourceStats counts how one adapter answered across a sheet. Identifiers
// the adapter was not asked about (placeholders) appear in neither count.
type SourceStats struct {
	Found        int `json:"found" yaml:"found"`
	NotFound     int `json:"not_found" yaml:"not_found"`
	FoundPercent int `json:"found_percent" yaml:"found_percent"`
}

// Stats summarizes a verification map. It is derived data: recompute it
// from verdicts, or sum per-sheet values field by field.
type Stats struct {
	Total         int `json:"total" yaml:"total"`
	FoundInAll    int `json:"found_in_all" yaml:"found_in_all"`
	Discrepancies int `json:"discrepancies" yaml:"discrepancies"`
	NotFound      int `json:"not_found" yaml:"not_found"`
	Placeholders  int `json:"placeholders" yaml:"placeholders"`

	FoundInAllPercent  int `json:"found_in_all_percent" yaml:"found_in_all_percent"`
	DiscrepancyPercent int `json:"discrepancy_percent" yaml:"discrepancy_percent"`
	NotFoundPercent    int `json:"not_found_percent" yaml:"not_found_percent"`
	PlaceholderPercent int `json:"placeholder_percent" yaml:"placeholder_percent"`

	// SourceOrder lists adapter names in first-seen order for display.
	SourceOrder []string               `json:"source_order,omitempty" yaml:"source_order,omitempty"`
	Sources     map[string]SourceStats `json:"sources,omitempty" yaml:"sources,omitempty"`

	DatatypeMatched     int `json:"datatype_matched" yaml:"datatype_matched"`
	DatatypeMismatched  int `json:"datatype_mismatched" yaml:"datatype_mismatched"`
	DatatypeNotAsserted int `json:"datatype_not_asserted" yaml:"datatype_not_asserted"`
}

// SheetStats is one sheet's share of a multi-sheet summary.
type SheetStats struct {
	Name  string `json:"name" yaml:"name"`
	Stats Stats  `json:"stats" yaml:"stats"`
}

// MultiStats holds combined statistics and the per-sheet breakdown.
type MultiStats struct {
	Combined Stats        `json:"combined" yaml:"combined"`
	Sheets   []SheetStats `json:"sheets" yaml:"sheets"`
}
