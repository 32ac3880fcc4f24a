// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for metadata-verifier: cell
// coordinates, source answers, verdicts, sheets, statistics, and configuration.
package types

import "fmt"

// Mode selects the verification family and its validity policy.
type Mode string

const (
	// ModeRegistry verifies against independent catalog and instance systems.
	// An identifier is valid only when every queried system knows it.
	ModeRegistry Mode = "registry"

	// ModeForm verifies against the concepts referenced by one form document.
	// An identifier is valid when any feed of the form references it.
	ModeForm Mode = "form"
)

// ParseMode converts a flag value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRegistry, "":
		return ModeRegistry, nil
	case ModeForm:
		return ModeForm, nil
	default:
		return "", fmt.Errorf("unknown mode %q: use registry or form", s)
	}
}

// Coordinate identifies one cell of a sheet. Row is the 0-based position in
// the data body (header excluded); Col is the 0-based column position.
type Coordinate struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// String renders the coordinate as "row:col".
func (c Coordinate) String() string {
	return fmt.Sprintf("%d:%d", c.Row, c.Col)
}

// SourceDetails carries adapter-specific context for a found identifier.
type SourceDetails struct {
	Display string `json:"display,omitempty" yaml:"display,omitempty"`
	Class   string `json:"class,omitempty" yaml:"class,omitempty"`
	URL     string `json:"url,omitempty" yaml:"url,omitempty"`

	// Path locates the identifier inside a form document (form mode only).
	Path       string   `json:"path,omitempty" yaml:"path,omitempty"`
	OtherPaths []string `json:"other_paths,omitempty" yaml:"other_paths,omitempty"`
}

// SourceAnswer is one adapter's answer for one identifier. A not-found
// answer never carries a datatype or details.
type SourceAnswer struct {
	Exists   bool           `json:"exists" yaml:"exists"`
	Datatype string         `json:"datatype,omitempty" yaml:"datatype,omitempty"`
	Details  *SourceDetails `json:"details,omitempty" yaml:"details,omitempty"`
}

// Found returns an answer for an identifier present in a source.
func Found(datatype string, details *SourceDetails) SourceAnswer {
	return SourceAnswer{Exists: true, Datatype: datatype, Details: details}
}

// NotFound returns an answer for an identifier absent from a source, or for
// a source that could not be reached.
func NotFound() SourceAnswer {
	return SourceAnswer{}
}

// CellKind distinguishes verdicts stored under identifier cells from those
// stored under paired datatype cells.
type CellKind string

const (
	CellIdentifier CellKind = "identifier"
	CellDatatype   CellKind = "datatype"
)

// DatatypeState records whether datatype agreement was asserted.
type DatatypeState string

const (
	// DatatypeNotAsserted means no expected datatype was supplied or no
	// source reported one. It is not evidence of agreement.
	DatatypeNotAsserted DatatypeState = "not-asserted"
	DatatypeMatched     DatatypeState = "matched"
	DatatypeMismatched  DatatypeState = "mismatched"
)

// Verdict is the reconciliation outcome for one cell.
type Verdict struct {
	Kind  CellKind `json:"kind" yaml:"kind"`
	Mode  Mode     `json:"mode" yaml:"mode"`
	Value string   `json:"value" yaml:"value"`

	IsVerified          bool `json:"is_verified" yaml:"is_verified"`
	IsValid             bool `json:"is_valid" yaml:"is_valid"`
	HasDiscrepancy      bool `json:"has_discrepancy" yaml:"has_discrepancy"`
	IsNotFoundIndicator bool `json:"is_not_found_indicator" yaml:"is_not_found_indicator"`

	// Sources lists the attempted adapters in configured order. SourceResults
	// holds exactly one answer per name in Sources; a name missing from both
	// means the adapter was not checked.
	Sources       []string                `json:"sources,omitempty" yaml:"sources,omitempty"`
	SourceResults map[string]SourceAnswer `json:"source_results,omitempty" yaml:"source_results,omitempty"`

	ExpectedDatatype string        `json:"expected_datatype,omitempty" yaml:"expected_datatype,omitempty"`
	ActualDatatype   string        `json:"actual_datatype,omitempty" yaml:"actual_datatype,omitempty"`
	DatatypeMatch    bool          `json:"datatype_match" yaml:"datatype_match"`
	DatatypeState    DatatypeState `json:"datatype_state,omitempty" yaml:"datatype_state,omitempty"`

	Explanation string `json:"explanation" yaml:"explanation"`
}

// FoundCount returns how many attempted sources reported the identifier.
func (v Verdict) FoundCount() int {
	n := 0
	for _, name := range v.Sources {
		if v.SourceResults[name].Exists {
			n++
		}
	}
	return n
}

// FoundInAll reports whether at least one source was attempted and every
// attempted source reported the identifier.
func (v Verdict) FoundInAll() bool {
	return len(v.Sources) > 0 && v.FoundCount() == len(v.Sources)
}

// FoundInAny reports whether any attempted source reported the identifier.
func (v Verdict) FoundInAny() bool {
	return v.FoundCount() > 0
}

// VerificationMap holds one verification run's verdicts for one sheet.
type VerificationMap map[Coordinate]Verdict
