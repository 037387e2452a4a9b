package ingest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeWorkbook(t *testing.T, sheetName string, rows [][]string) string {
	t.Helper()

	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	require.NoError(t, err)

	for _, cells := range rows {
		row := sheet.AddRow()
		for _, v := range cells {
			row.AddCell().Value = v
		}
	}

	path := filepath.Join(t.TempDir(), "sales.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadXLSXFile(t *testing.T) {
	path := writeWorkbook(t, "Orders", [][]string{
		fullHeader(),
		{"405-1", "2022-04-30", "Shipped", "648.50", "1", "MAHARASHTRA", "Kurta", "M", "2022", "4", "April"},
		{"405-2", "2022-05-01", "Cancelled", "100", "1", "KARNATAKA", "Set", "L", "2022", "5", "May"},
	})

	ds, err := ReadXLSXFile(path, "Orders", nil)
	require.NoError(t, err)
	require.Len(t, ds.Records, 2)
	assert.False(t, ds.HasB2B)
	assert.Equal(t, 648.50, ds.Records[0].Amount)
	assert.Equal(t, "Cancelled", ds.Records[1].Status)
}

func TestReadXLSXFile_DefaultSheet(t *testing.T) {
	path := writeWorkbook(t, "Whatever", [][]string{fullHeader()})

	ds, err := ReadXLSXFile(path, "", nil)
	require.NoError(t, err)
	assert.Empty(t, ds.Records)
}

func TestReadXLSXFile_SheetNotFound(t *testing.T) {
	path := writeWorkbook(t, "Orders", [][]string{fullHeader()})

	_, err := ReadXLSXFile(path, "Missing", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing")
}

func TestReadXLSXFile_MissingColumn(t *testing.T) {
	path := writeWorkbook(t, "Orders", [][]string{{"Order ID", "Date"}})

	_, err := ReadXLSXFile(path, "", nil)
	assert.Error(t, err)
}

func TestReadXLSXFile_BadPath(t *testing.T) {
	_, err := ReadXLSXFile("/nonexistent/sales.xlsx", "", nil)
	assert.Error(t, err)
}
