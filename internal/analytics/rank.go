package analytics

import "github.com/sells-group/sales-analytics/internal/model"

// topCount is the fixed depth of the top-N rankings.
const topCount = 5

// RankTopPerformers derives the top-1 and top-5 rankings from the state
// and category aggregations. The inputs must already be sorted revenue
// descending; ranking is a prefix take, never a re-sort. Empty inputs
// yield nil top entries and empty (not null) lists.
func RankTopPerformers(states []model.StateRow, categories []model.CategoryRow) model.TopPerformers {
	top := model.TopPerformers{
		Top5States:     prefix(states, topCount),
		Top5Categories: prefix(categories, topCount),
	}
	if len(states) > 0 {
		top.TopState = &states[0]
	}
	if len(categories) > 0 {
		top.TopCategory = &categories[0]
	}
	return top
}

// prefix copies the first n rows, or fewer when the input is shorter.
// The copy keeps the report document independent of the aggregation
// slices it was derived from.
func prefix[T any](rows []T, n int) []T {
	if n > len(rows) {
		n = len(rows)
	}
	out := make([]T, n)
	copy(out, rows[:n])
	return out
}
