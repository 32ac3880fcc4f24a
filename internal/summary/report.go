// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summary

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/metadata-verifier/internal/sheet"
	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// Report is the on-disk record of one verification run. It is an export
// for people and other tools; runs never read it back.
type Report struct {
	Input     string           `yaml:"input,omitempty"`
	Mode      types.Mode       `yaml:"mode"`
	Sources   []string         `yaml:"sources,omitempty"`
	Generated time.Time        `yaml:"generated"`
	Summary   types.MultiStats `yaml:"summary"`
	Sheets    []SheetReport    `yaml:"sheets"`
}

// SheetReport holds one sheet's verdicts keyed "row:col".
type SheetReport struct {
	Name     string                   `yaml:"name"`
	Verdicts map[string]types.Verdict `yaml:"verdicts"`
	Skipped  []sheet.Skip             `yaml:"skipped,omitempty"`
}

// NewReport assembles a report for the verified sheets. skipped is keyed by
// sheet name and may be nil.
func NewReport(input string, mode types.Mode, sources []string, sheets []types.SheetVerification, skipped map[string][]sheet.Skip) Report {
	r := Report{
		Input:     input,
		Mode:      mode,
		Sources:   sources,
		Generated: time.Now().UTC(),
		Summary:   SummarizeMany(sheets),
	}
	for _, sh := range sheets {
		sr := SheetReport{
			Name:     sh.Name,
			Verdicts: make(map[string]types.Verdict, len(sh.Verdicts)),
			Skipped:  skipped[sh.Name],
		}
		for c, v := range sh.Verdicts {
			sr.Verdicts[c.String()] = v
		}
		r.Sheets = append(r.Sheets, sr)
	}
	return r
}

// WriteReport saves r to path as YAML.
func WriteReport(path string, r Report) error {
	data, err := yaml.Marshal(&r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
