package analytics

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/sales-analytics/internal/model"
)

func scenarioRecords() []model.Record {
	return []model.Record{
		{OrderID: "1", Amount: 100, Qty: 1, Status: "Completed", ShipState: "CA",
			Category: "Kurta", Size: "M", Year: 2022, Month: 4, MonthName: "April"},
		{OrderID: "2", Amount: 50, Qty: 1, Status: "Cancelled", ShipState: "CA",
			Category: "Kurta", Size: "M", Year: 2022, Month: 4, MonthName: "April"},
		{OrderID: "3", Amount: 200, Qty: 2, Status: "Completed", ShipState: "NY",
			Category: "Set", Size: "L", Year: 2022, Month: 5, MonthName: "May"},
	}
}

func TestBuildReport_Scenario(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	report := BuildReport(scenarioRecords(), false, now)

	assert.Equal(t, 300.0, report.KPIs.TotalRevenue)
	assert.Equal(t, 2, report.KPIs.TotalOrders)
	require.NotNil(t, report.KPIs.CancellationRate)
	assert.InDelta(t, 33.33, *report.KPIs.CancellationRate, 0.01)

	require.NotNil(t, report.TopPerformers.TopState)
	assert.Equal(t, "NY", report.TopPerformers.TopState.State)
	assert.Equal(t, 200.0, report.TopPerformers.TopState.Revenue)

	assert.Equal(t, 3, report.Metadata.TotalRecordsProcessed)
	assert.Equal(t, 2, report.Metadata.ActiveOrdersProcessed)
	assert.Equal(t, model.PipelineVersion, report.Metadata.PipelineVersion)
	assert.Equal(t, now, report.Metadata.LastUpdated)
}

func TestBuildReport_RevenueCrossCheck(t *testing.T) {
	// total_revenue must equal the sum of revenue across by_state: two
	// independent aggregation paths over the same partition.
	report := BuildReport(scenarioRecords(), false, time.Now().UTC())

	var stateSum float64
	for _, row := range report.ByState {
		stateSum += row.Revenue
	}
	assert.Equal(t, report.KPIs.TotalRevenue, stateSum)
}

func TestBuildReport_Idempotent(t *testing.T) {
	// Byte-identical input and a fixed timestamp produce byte-identical
	// reports.
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	first, err := json.Marshal(BuildReport(scenarioRecords(), false, now))
	require.NoError(t, err)
	second, err := json.Marshal(BuildReport(scenarioRecords(), false, now))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildReport_EmptyInput(t *testing.T) {
	report := BuildReport(nil, false, time.Now().UTC())

	assert.Equal(t, 0.0, report.KPIs.TotalRevenue)
	assert.Equal(t, 0, report.Metadata.TotalRecordsProcessed)
	assert.Nil(t, report.KPIs.AverageOrderValue)
	assert.Nil(t, report.KPIs.CancellationRate)
	assert.Empty(t, report.ByState)
	assert.Nil(t, report.TopPerformers.TopState)
	assert.NotNil(t, report.TopPerformers.Top5States)
	assert.Empty(t, report.TopPerformers.Top5States)
}

func TestBuildReport_AllCancelled(t *testing.T) {
	records := []model.Record{
		{OrderID: "1", Amount: 100, Status: model.StatusCancelled, ShipState: "CA"},
		{OrderID: "2", Amount: 200, Status: model.StatusCancelled, ShipState: "NY"},
	}

	report := BuildReport(records, false, time.Now().UTC())

	assert.Equal(t, 0.0, report.KPIs.TotalRevenue)
	require.NotNil(t, report.KPIs.CancellationRate)
	assert.Equal(t, 100.0, *report.KPIs.CancellationRate)
	assert.Empty(t, report.ByState)
	assert.Empty(t, report.ByCategory)
	assert.Empty(t, report.ByMonth)
	assert.Empty(t, report.BySize)
}

func TestBuildReport_JSONSchema(t *testing.T) {
	// The serialized document must carry the fixed top-level keys
	// independent of internal representations.
	data, err := json.Marshal(BuildReport(scenarioRecords(), false, time.Now().UTC()))
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, key := range []string{"kpis", "by_state", "by_category", "by_month", "by_size", "top_performers", "metadata"} {
		assert.Contains(t, doc, key)
	}

	var meta map[string]any
	require.NoError(t, json.Unmarshal(doc["metadata"], &meta))
	for _, key := range []string{"last_updated", "total_records_processed", "active_orders_processed", "pipeline_version"} {
		assert.Contains(t, meta, key)
	}
}
