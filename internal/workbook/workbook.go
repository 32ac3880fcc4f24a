// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workbook reads spreadsheet files into sheets and writes annotated
// copies that color each verified cell.
package workbook

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// ErrUnsupported is returned for file extensions Load cannot read.
var ErrUnsupported = errors.New("unsupported workbook format")

// nanTokens are spellings of a missing value that earlier tools wrote into
// cells. They load as empty strings.
var nanTokens = map[string]bool{"nan": true, "NaN": true, "NAN": true, "#N/A": true}

// Load reads every sheet of an .xlsx/.xlsm file, or the single sheet of a
// .csv file. The first row of each sheet is the header.
func Load(path string) ([]types.Sheet, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return loadXLSX(path)
	case ".csv":
		sh, err := loadCSV(path)
		if err != nil {
			return nil, err
		}
		return []types.Sheet{sh}, nil
	default:
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnsupported, ext)
	}
}

func loadXLSX(path string) ([]types.Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	var sheets []types.Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %s: %w", name, err)
		}
		sheets = append(sheets, toSheet(name, rows))
	}
	return sheets, nil
}

func loadCSV(path string) (types.Sheet, error) {
	file, err := os.Open(path)
	if err != nil {
		return types.Sheet{}, fmt.Errorf("opening csv %s: %w", path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return types.Sheet{}, fmt.Errorf("reading csv %s: %w", path, err)
		}
		rows = append(rows, rec)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return toSheet(name, rows), nil
}

// toSheet splits off the header row and cleans every cell.
func toSheet(name string, rows [][]string) types.Sheet {
	sh := types.Sheet{Name: name}
	if len(rows) == 0 {
		return sh
	}
	sh.Headers = make([]string, len(rows[0]))
	for i, h := range rows[0] {
		sh.Headers[i] = strings.TrimSpace(clean(h))
	}
	sh.Rows = make([][]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = clean(v)
		}
		sh.Rows = append(sh.Rows, cells)
	}
	return sh
}

func clean(v string) string {
	if nanTokens[strings.TrimSpace(v)] {
		return ""
	}
	return v
}
