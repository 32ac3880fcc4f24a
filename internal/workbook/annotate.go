// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workbook

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// CommentAuthor is the author shown on verdict comments.
const CommentAuthor = "metadata-verifier"

// Status is the color category of a verified cell.
type Status string

const (
	StatusValid       Status = "valid"
	StatusDiscrepancy Status = "discrepancy"
	StatusInvalid     Status = "invalid"
	StatusPlaceholder Status = "placeholder"
)

// fills maps each status to its cell background color.
var fills = map[Status]string{
	StatusValid:       "C6EFCE",
	StatusDiscrepancy: "FFEB9C",
	StatusInvalid:     "FFC7CE",
	StatusPlaceholder: "D9D9D9",
}

// StatusOf picks the color category for a verdict.
func StatusOf(v types.Verdict) Status {
	switch {
	case v.IsNotFoundIndicator && v.Kind == types.CellIdentifier:
		return StatusPlaceholder
	case v.Kind == types.CellDatatype && v.IsValid:
		return StatusValid
	case v.IsValid && !v.HasDiscrepancy:
		return StatusValid
	case v.HasDiscrepancy:
		return StatusDiscrepancy
	default:
		return StatusInvalid
	}
}

// CellName converts a data-body coordinate to a spreadsheet cell name. Row 0
// of the body is spreadsheet row 2, below the header.
func CellName(c types.Coordinate) (string, error) {
	return excelize.CoordinatesToCellName(c.Col+1, c.Row+2)
}

// Annotate writes a copy of the workbook at src to dst with each verdict
// cell filled by status and commented with its explanation. A .csv source is
// rebuilt as a single-sheet workbook. Verdicts for sheets missing from the
// workbook are ignored.
func Annotate(src, dst string, results []types.SheetVerification) error {
	f, err := openForAnnotation(src)
	if err != nil {
		return err
	}
	defer f.Close()

	styles := make(map[Status]int, len(fills))
	for status, color := range fills {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		if err != nil {
			return fmt.Errorf("creating %s style: %w", status, err)
		}
		styles[status] = id
	}

	present := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		present[name] = true
	}

	for _, res := range results {
		if !present[res.Name] {
			continue
		}
		for c, v := range res.Verdicts {
			cell, err := CellName(c)
			if err != nil {
				return fmt.Errorf("sheet %s cell %s: %w", res.Name, c, err)
			}
			if err := f.SetCellStyle(res.Name, cell, cell, styles[StatusOf(v)]); err != nil {
				return fmt.Errorf("styling %s!%s: %w", res.Name, cell, err)
			}
			if v.Explanation == "" {
				continue
			}
			if err := f.AddComment(res.Name, excelize.Comment{
				Author: CommentAuthor,
				Cell:   cell,
				Text:   v.Explanation,
			}); err != nil {
				return fmt.Errorf("commenting %s!%s: %w", res.Name, cell, err)
			}
		}
	}

	if err := f.SaveAs(dst); err != nil {
		return fmt.Errorf("saving annotated workbook %s: %w", dst, err)
	}
	return nil
}

func openForAnnotation(src string) (*excelize.File, error) {
	if strings.ToLower(filepath.Ext(src)) != ".csv" {
		f, err := excelize.OpenFile(src)
		if err != nil {
			return nil, fmt.Errorf("opening workbook %s: %w", src, err)
		}
		return f, nil
	}

	sh, err := loadCSV(src)
	if err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sh.Name); err != nil {
		f.Close()
		return nil, fmt.Errorf("naming sheet %s: %w", sh.Name, err)
	}
	header := make([]any, len(sh.Headers))
	for i, h := range sh.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sh.Name, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header: %w", err)
	}
	for i, row := range sh.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sh.Name, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return f, nil
}
