// Package ingest reads a raw sales dataset (CSV or XLSX) and produces
// uniformly-typed records. Column binding and type coercion happen here,
// once; downstream packages never see raw text fields.
package ingest

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Canonical column names. Matching is case-sensitive and exact; a
// deployment whose export uses different headers maps them back to these
// names via an alias file.
const (
	ColOrderID     = "Order ID"
	ColDate        = "Date"
	ColStatus      = "Status"
	ColAmount      = "Amount"
	ColQty         = "Qty"
	ColShipState   = "ship-state"
	ColCategory    = "Category"
	ColSize        = "Size"
	ColYear        = "Year"
	ColMonth       = "Month"
	ColMonthName   = "MonthName"
	ColB2B         = "B2B"
	ColFulfilledBy = "fulfilled-by"
)

// requiredColumns must all be present in the header; a missing one is a
// fatal schema error before any rows are read.
var requiredColumns = []string{
	ColOrderID, ColDate, ColStatus, ColAmount, ColQty,
	ColShipState, ColCategory, ColSize, ColYear, ColMonth, ColMonthName,
}

// ErrMissingColumn is the sentinel wrapped by schema-binding failures.
var ErrMissingColumn = eris.New("required column missing")

// Schema maps canonical column names to their positions in the source
// header. Optional columns have index -1 when absent.
type Schema struct {
	OrderID     int
	Date        int
	Status      int
	Amount      int
	Qty         int
	ShipState   int
	Category    int
	Size        int
	Year        int
	Month       int
	MonthName   int
	B2B         int // -1 if absent
	FulfilledBy int // -1 if absent
}

// HasB2B reports whether the source schema carries the B2B flag at all.
// When it does not, B2B revenue is defined as zero for the whole run.
func (s *Schema) HasB2B() bool {
	return s.B2B >= 0
}

// LoadAliases reads an optional YAML file mapping source header names to
// canonical column names, e.g. `Ship State: ship-state`.
func LoadAliases(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read alias file")
	}

	aliases := make(map[string]string)
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return nil, eris.Wrap(err, "ingest: parse alias file")
	}
	return aliases, nil
}

// BindHeader resolves canonical column positions from a header row.
// Aliases are applied first, then exact case-sensitive matching. All
// required columns must resolve.
func BindHeader(header []string, aliases map[string]string) (*Schema, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if canonical, ok := aliases[name]; ok {
			name = canonical
		}
		// First occurrence wins on duplicate headers.
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, eris.Wrapf(ErrMissingColumn, "ingest: column %q", col)
		}
	}

	optional := func(name string) int {
		if i, ok := index[name]; ok {
			return i
		}
		return -1
	}

	return &Schema{
		OrderID:     index[ColOrderID],
		Date:        index[ColDate],
		Status:      index[ColStatus],
		Amount:      index[ColAmount],
		Qty:         index[ColQty],
		ShipState:   index[ColShipState],
		Category:    index[ColCategory],
		Size:        index[ColSize],
		Year:        index[ColYear],
		Month:       index[ColMonth],
		MonthName:   index[ColMonthName],
		B2B:         optional(ColB2B),
		FulfilledBy: optional(ColFulfilledBy),
	}, nil
}
