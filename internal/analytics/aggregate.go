package analytics

import (
	"fmt"
	"sort"

	"github.com/sells-group/sales-analytics/internal/model"
)

// group accumulates the three reducers for one distinct key. Records are
// reduced in input order, so partial sums are deterministic across runs
// on identical input.
type group struct {
	revenue  float64
	quantity int
	count    int
}

// groupBy reduces records into one accumulator per distinct key,
// remembering first-seen order so callers with their own sort key (the
// monthly series) start from a deterministic base.
func groupBy(records []model.Record, key func(model.Record) string) (map[string]*group, []string) {
	groups := make(map[string]*group)
	var order []string

	for _, r := range records {
		k := key(r)
		g, ok := groups[k]
		if !ok {
			g = &group{}
			groups[k] = g
			order = append(order, k)
		}
		g.revenue += r.Amount
		g.quantity += r.Qty
		g.count++
	}

	return groups, order
}

// sortByRevenue orders keys descending by group revenue. Equal-revenue
// groups tie-break on lexicographically ascending key, so output order
// is fully deterministic rather than an accident of sort stability.
func sortByRevenue(groups map[string]*group, keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		a, b := groups[keys[i]], groups[keys[j]]
		if a.revenue != b.revenue {
			return a.revenue > b.revenue
		}
		return keys[i] < keys[j]
	})
}

// AggregateByState groups active records by ship-state, sorted revenue
// descending.
func AggregateByState(active []model.Record) []model.StateRow {
	groups, keys := groupBy(active, func(r model.Record) string { return r.ShipState })
	sortByRevenue(groups, keys)

	rows := make([]model.StateRow, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		rows = append(rows, model.StateRow{
			State:      k,
			Revenue:    g.revenue,
			Quantity:   g.quantity,
			OrderCount: g.count,
		})
	}
	return rows
}

// AggregateByCategory groups active records by product category, sorted
// revenue descending.
func AggregateByCategory(active []model.Record) []model.CategoryRow {
	groups, keys := groupBy(active, func(r model.Record) string { return r.Category })
	sortByRevenue(groups, keys)

	rows := make([]model.CategoryRow, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		rows = append(rows, model.CategoryRow{
			Category:   k,
			Revenue:    g.revenue,
			Quantity:   g.quantity,
			OrderCount: g.count,
		})
	}
	return rows
}

// AggregateBySize groups active records by product size, sorted revenue
// descending.
func AggregateBySize(active []model.Record) []model.SizeRow {
	groups, keys := groupBy(active, func(r model.Record) string { return r.Size })
	sortByRevenue(groups, keys)

	rows := make([]model.SizeRow, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		rows = append(rows, model.SizeRow{
			Size:       k,
			Revenue:    g.revenue,
			Quantity:   g.quantity,
			OrderCount: g.count,
		})
	}
	return rows
}

// monthKey identifies one (year, month, month-name) group. The name is
// part of the key so distinct values in the source survive unchanged.
type monthKey struct {
	year  int
	month int
	name  string
}

// AggregateByMonth groups active records by (year, month, month-name).
// The output is a time series, sorted ascending by year then month
// regardless of revenue.
func AggregateByMonth(active []model.Record) []model.MonthRow {
	type monthGroup struct {
		key monthKey
		agg group
	}
	groups := make(map[string]*monthGroup)
	var order []string

	for _, r := range active {
		k := fmt.Sprintf("%04d-%02d-%s", r.Year, r.Month, r.MonthName)
		g, ok := groups[k]
		if !ok {
			g = &monthGroup{key: monthKey{year: r.Year, month: r.Month, name: r.MonthName}}
			groups[k] = g
			order = append(order, k)
		}
		g.agg.revenue += r.Amount
		g.agg.quantity += r.Qty
		g.agg.count++
	}

	sort.Slice(order, func(i, j int) bool {
		a, b := groups[order[i]].key, groups[order[j]].key
		if a.year != b.year {
			return a.year < b.year
		}
		if a.month != b.month {
			return a.month < b.month
		}
		return a.name < b.name
	})

	rows := make([]model.MonthRow, 0, len(order))
	for _, k := range order {
		g := groups[k]
		rows = append(rows, model.MonthRow{
			Year:       g.key.year,
			Month:      g.key.month,
			MonthName:  g.key.name,
			Revenue:    g.agg.revenue,
			Quantity:   g.agg.quantity,
			OrderCount: g.agg.count,
		})
	}
	return rows
}
