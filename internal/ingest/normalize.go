package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/sales-analytics/internal/model"
)

// ErrBadDate is the sentinel wrapped by date-parse failures. Unlike
// amount and quantity coercion, a bad date aborts the whole run.
var ErrBadDate = eris.New("unparseable date")

// dateLayouts lists the accepted date formats, tried in order. The
// source dataset uses US-style month-first dates.
var dateLayouts = []string{
	"2006-01-02",
	"01-02-06",
	"01/02/2006",
	"01/02/06",
}

// CoercionStats counts the per-field recoveries applied during
// normalization. These are intentional, non-fatal defaults.
type CoercionStats struct {
	BadAmounts    int
	BadQuantities int
}

// Normalize converts raw rows into typed records. Row count in equals
// row count out: no row is dropped here. A date that fails to parse is
// fatal for the run; non-numeric amounts and quantities become zero and
// are counted in the returned stats.
func Normalize(sc *Schema, rows [][]string) ([]model.Record, CoercionStats, error) {
	records := make([]model.Record, 0, len(rows))
	var stats CoercionStats

	for i, row := range rows {
		rec, err := normalizeRow(sc, row, &stats)
		if err != nil {
			return nil, stats, eris.Wrapf(err, "ingest: row %d", i+1)
		}
		records = append(records, rec)
	}

	if stats.BadAmounts > 0 || stats.BadQuantities > 0 {
		zap.L().Warn("ingest: defaulted unparseable numeric fields to zero",
			zap.Int("bad_amounts", stats.BadAmounts),
			zap.Int("bad_quantities", stats.BadQuantities),
			zap.Int("rows", len(rows)),
		)
	}

	return records, stats, nil
}

func normalizeRow(sc *Schema, row []string, stats *CoercionStats) (model.Record, error) {
	date, err := parseDate(field(row, sc.Date))
	if err != nil {
		return model.Record{}, err
	}

	amount, ok := parseAmount(field(row, sc.Amount))
	if !ok {
		stats.BadAmounts++
	}
	qty, ok := parseQty(field(row, sc.Qty))
	if !ok {
		stats.BadQuantities++
	}

	rec := model.Record{
		OrderID:   field(row, sc.OrderID),
		Date:      date,
		Status:    field(row, sc.Status),
		Amount:    amount,
		Qty:       qty,
		ShipState: field(row, sc.ShipState),
		Category:  field(row, sc.Category),
		Size:      field(row, sc.Size),
		Year:      parseIntDefault(field(row, sc.Year), date.Year()),
		Month:     parseIntDefault(field(row, sc.Month), int(date.Month())),
		MonthName: field(row, sc.MonthName),
	}
	if rec.MonthName == "" {
		rec.MonthName = date.Month().String()
	}
	if sc.B2B >= 0 {
		rec.B2B = parseB2B(field(row, sc.B2B))
	}
	if sc.FulfilledBy >= 0 {
		rec.FulfilledBy = field(row, sc.FulfilledBy)
	}

	return rec, nil
}

// field reads a cell tolerating short rows; the CSV reader allows
// variable field counts.
func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, eris.Wrapf(ErrBadDate, "value %q", s)
}

// parseAmount coerces a currency string to float64. Commas and a leading
// currency symbol are tolerated; anything else unparseable resolves to
// zero with ok=false.
func parseAmount(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	cleaned := strings.ReplaceAll(s, ",", "")
	cleaned = strings.TrimPrefix(cleaned, "$")
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseQty(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	cleaned := strings.ReplaceAll(s, ",", "")
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		// Some exports write quantities as decimals.
		f, ferr := strconv.ParseFloat(cleaned, 64)
		if ferr != nil {
			return 0, false
		}
		return int(f), true
	}
	return n, true
}

func parseIntDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func parseB2B(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "1":
		return true
	}
	return false
}
