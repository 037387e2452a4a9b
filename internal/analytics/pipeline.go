package analytics

import (
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/sales-analytics/internal/model"
)

// BuildReport runs the full transform-and-aggregate sequence over
// normalized records and assembles the report document: active-order
// filtering, the four dimensional aggregations, KPIs, rankings, and run
// metadata. The stages are pure value transformations over private
// copies; nothing is shared or mutated across invocations.
//
// The output keys are the fixed report schema, independent of any
// intermediate grouping representation. The report is immutable once
// assembled.
func BuildReport(records []model.Record, hasB2B bool, now time.Time) *model.Report {
	active, cancelled := SplitActive(records)
	zap.L().Info("analytics: partitioned records",
		zap.Int("total", len(records)),
		zap.Int("active", len(active)),
		zap.Int("cancelled", len(cancelled)),
	)

	byState := AggregateByState(active)
	byCategory := AggregateByCategory(active)
	byMonth := AggregateByMonth(active)
	bySize := AggregateBySize(active)

	kpis := ComputeKPIs(records, active, hasB2B)
	top := RankTopPerformers(byState, byCategory)

	report := &model.Report{
		KPIs:          kpis,
		ByState:       byState,
		ByCategory:    byCategory,
		ByMonth:       byMonth,
		BySize:        bySize,
		TopPerformers: top,
		Metadata: model.Metadata{
			LastUpdated:           now,
			TotalRecordsProcessed: len(records),
			ActiveOrdersProcessed: len(active),
			PipelineVersion:       model.PipelineVersion,
		},
	}

	zap.L().Info("analytics: report assembled",
		zap.Float64("total_revenue", kpis.TotalRevenue),
		zap.Int("total_orders", kpis.TotalOrders),
		zap.Int("states", len(byState)),
		zap.Int("categories", len(byCategory)),
		zap.Int("months", len(byMonth)),
	)
	return report
}
