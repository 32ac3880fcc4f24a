// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workbook

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/metadata-verifier/pkg/types"
)

const testUUID = "4dae5b12-070f-4153-b1ca-fbec906106e1"

func writeFixture(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"EMR_Concept_UUID", "Datatype"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{testUUID, "Coded"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"N/A", "nan"}))

	_, err := f.NewSheet("Answers")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Answers", "A1", &[]any{"Label", "UUID"}))
	require.NoError(t, f.SetSheetRow("Answers", "A2", &[]any{"Yes", testUUID}))

	path := filepath.Join(t.TempDir(), "concepts.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadXLSX(t *testing.T) {
	sheets, err := Load(writeFixture(t))
	require.NoError(t, err)
	require.Len(t, sheets, 2)

	s := sheets[0]
	assert.Equal(t, "Sheet1", s.Name)
	assert.Equal(t, []string{"EMR_Concept_UUID", "Datatype"}, s.Headers)
	require.Len(t, s.Rows, 2)
	assert.Equal(t, []any{testUUID, "Coded"}, s.Rows[0])
	assert.Equal(t, []any{"N/A", ""}, s.Rows[1], "nan cells load empty")

	assert.Equal(t, "Answers", sheets[1].Name)
	assert.Equal(t, []any{"Yes", testUUID}, sheets[1].Rows[0])
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concepts.csv")
	data := "Name,UUID,Datatype\nWeight," + testUUID + ",Numeric\nshort\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	sheets, err := Load(path)
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Equal(t, "concepts", sheets[0].Name)
	assert.Equal(t, []string{"Name", "UUID", "Datatype"}, sheets[0].Headers)
	require.Len(t, sheets[0].Rows, 2)
	assert.Equal(t, []any{"short"}, sheets[0].Rows[1])
}

func TestLoadUnsupported(t *testing.T) {
	_, err := Load("concepts.ods")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		v    types.Verdict
		want Status
	}{
		{"valid", types.Verdict{Kind: types.CellIdentifier, IsValid: true}, StatusValid},
		{"discrepancy", types.Verdict{Kind: types.CellIdentifier, HasDiscrepancy: true}, StatusDiscrepancy},
		{"form valid in one feed", types.Verdict{Kind: types.CellIdentifier, IsValid: true, HasDiscrepancy: true}, StatusDiscrepancy},
		{"invalid", types.Verdict{Kind: types.CellIdentifier}, StatusInvalid},
		{"placeholder", types.Verdict{Kind: types.CellIdentifier, IsNotFoundIndicator: true}, StatusPlaceholder},
		{"datatype match", types.Verdict{Kind: types.CellDatatype, IsValid: true, HasDiscrepancy: true}, StatusValid},
		{"datatype mismatch", types.Verdict{Kind: types.CellDatatype}, StatusInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.v))
		})
	}
}

func TestCellName(t *testing.T) {
	name, err := CellName(types.Coordinate{Row: 0, Col: 1})
	require.NoError(t, err)
	assert.Equal(t, "B2", name)
}

func TestAnnotate(t *testing.T) {
	src := writeFixture(t)
	dst := filepath.Join(t.TempDir(), "annotated.xlsx")

	results := []types.SheetVerification{
		{Name: "Sheet1", Verdicts: types.VerificationMap{
			{Row: 0, Col: 0}: {Kind: types.CellIdentifier, HasDiscrepancy: true, Explanation: "collection: Not Found"},
			{Row: 0, Col: 1}: {Kind: types.CellDatatype, IsValid: true, Explanation: "Datatype Coded matches"},
		}},
		{Name: "Missing", Verdicts: types.VerificationMap{{Row: 0, Col: 0}: {}}},
	}
	require.NoError(t, Annotate(src, dst, results))

	f, err := excelize.OpenFile(dst)
	require.NoError(t, err)
	defer f.Close()

	comments, err := f.GetComments("Sheet1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	texts := map[string]string{}
	for _, c := range comments {
		texts[c.Cell] = c.Text
	}
	assert.Contains(t, texts["A2"], "collection: Not Found")

	styleID, err := f.GetCellStyle("Sheet1", "A2")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotEmpty(t, style.Fill.Color)
	assert.Contains(t, strings.ToUpper(style.Fill.Color[0]), fills[StatusDiscrepancy])

	v, err := f.GetCellValue("Sheet1", "A2")
	require.NoError(t, err)
	assert.Equal(t, testUUID, v, "values are preserved")
}

func TestAnnotateCSV(t *testing.T) {
	src := filepath.Join(t.TempDir(), "concepts.csv")
	require.NoError(t, os.WriteFile(src, []byte("UUID\n"+testUUID+"\n"), 0o644))
	dst := filepath.Join(t.TempDir(), "concepts.xlsx")

	results := []types.SheetVerification{{Name: "concepts", Verdicts: types.VerificationMap{
		{Row: 0, Col: 0}: {Kind: types.CellIdentifier, IsValid: true, Explanation: "ok"},
	}}}
	require.NoError(t, Annotate(src, dst, results))

	sheets, err := Load(dst)
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Equal(t, "concepts", sheets[0].Name)
	assert.Equal(t, []any{testUUID}, sheets[0].Rows[0])
}
