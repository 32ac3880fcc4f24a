// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Sheet is one tabular input: a header row and the data body. Cell values
// are opaque scalars (string, number, bool, or nil); only identifier and
// datatype cells are coerced to strings.
type Sheet struct {
	Name    string   `json:"name" yaml:"name"`
	Headers []string `json:"headers" yaml:"headers"`
	Rows    [][]any  `json:"rows" yaml:"rows"`
}

// SheetVerification pairs a sheet name with the verdicts of one run.
type SheetVerification struct {
	Name     string
	Verdicts VerificationMap
}
