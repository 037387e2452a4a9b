package ingest

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
)

// ReadXLSXFile reads a sales workbook and normalizes one sheet into
// typed records. An empty sheet name selects the first sheet. The first
// row is bound as the header.
func ReadXLSXFile(path, sheetName string, aliases map[string]string) (*Dataset, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open xlsx")
	}

	sheet, err := pickSheet(f, sheetName)
	if err != nil {
		return nil, err
	}

	var header []string
	var rows [][]string
	for i, row := range sheet.Rows {
		cells := rowToStrings(row)
		if i == 0 {
			header = cells
			continue
		}
		rows = append(rows, cells)
	}
	if header == nil {
		return nil, eris.New("ingest: empty dataset, no header row")
	}

	sc, err := BindHeader(header, aliases)
	if err != nil {
		return nil, err
	}

	records, _, err := Normalize(sc, rows)
	if err != nil {
		return nil, err
	}

	zap.L().Info("ingest: xlsx parsed",
		zap.String("sheet", sheet.Name),
		zap.Int("rows", len(records)),
		zap.Bool("has_b2b", sc.HasB2B()),
	)
	return &Dataset{Records: records, HasB2B: sc.HasB2B()}, nil
}

func pickSheet(f *xlsx.File, name string) (*xlsx.Sheet, error) {
	if name != "" {
		sheet, ok := f.Sheet[name]
		if !ok {
			return nil, eris.Errorf("ingest: sheet %q not found", name)
		}
		return sheet, nil
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("ingest: workbook has no sheets")
	}
	return f.Sheets[0], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		cells[i] = cell.String()
	}
	return cells
}
