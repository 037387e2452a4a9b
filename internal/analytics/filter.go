// Package analytics is the transform-and-aggregate core: it splits
// normalized records into active and cancelled partitions, groups the
// active partition by reporting dimensions, computes whole-dataset KPIs
// and rankings, and assembles the final report document.
package analytics

import "github.com/sells-group/sales-analytics/internal/model"

// SplitActive partitions records into revenue-eligible and cancelled
// subsets. The predicate is a case-sensitive exact match against the
// cancellation status; unknown and empty statuses count as active. The
// input slice is never mutated.
func SplitActive(records []model.Record) (active, cancelled []model.Record) {
	active = make([]model.Record, 0, len(records))
	for _, r := range records {
		if r.Active() {
			active = append(active, r)
		} else {
			cancelled = append(cancelled, r)
		}
	}
	return active, cancelled
}
