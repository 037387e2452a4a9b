package model

import "time"

// PipelineVersion tags every report with the version of the aggregation
// logic that produced it.
const PipelineVersion = "1.0"

// StateRow is one ship-state aggregation group.
type StateRow struct {
	State      string  `json:"state"`
	Revenue    float64 `json:"revenue"`
	Quantity   int     `json:"quantity"`
	OrderCount int     `json:"order_count"`
}

// CategoryRow is one product-category aggregation group.
type CategoryRow struct {
	Category   string  `json:"category"`
	Revenue    float64 `json:"revenue"`
	Quantity   int     `json:"quantity"`
	OrderCount int     `json:"order_count"`
}

// SizeRow is one product-size aggregation group.
type SizeRow struct {
	Size       string  `json:"size"`
	Revenue    float64 `json:"revenue"`
	Quantity   int     `json:"quantity"`
	OrderCount int     `json:"order_count"`
}

// MonthRow is one (year, month) aggregation group. Month rows are a time
// series and sort ascending by year then month, unlike the
// revenue-descending dimensional rows.
type MonthRow struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	MonthName  string  `json:"month_name"`
	Revenue    float64 `json:"revenue"`
	Quantity   int     `json:"quantity"`
	OrderCount int     `json:"order_count"`
}

// KPISet holds the whole-dataset scalar metrics computed once per run.
// AverageOrderValue and CancellationRate are pointers so that a run over
// an empty dataset reports an explicit null rather than NaN or a
// divide-by-zero failure.
type KPISet struct {
	TotalRevenue            float64  `json:"total_revenue"`
	TotalOrders             int      `json:"total_orders"`
	TotalQuantity           int      `json:"total_quantity"`
	AverageOrderValue       *float64 `json:"average_order_value"`
	CancelledOrders         int      `json:"cancelled_orders"`
	CancellationRate        *float64 `json:"cancellation_rate"`
	B2BRevenue              float64  `json:"b2b_revenue"`
	B2CRevenue              float64  `json:"b2c_revenue"`
	AmazonFulfilledOrders   int      `json:"amazon_fulfilled_orders"`
	MerchantFulfilledOrders int      `json:"merchant_fulfilled_orders"`
}

// TopPerformers holds the fixed top-1 and top-5 rankings. The slices are
// prefixes of the already revenue-sorted aggregations, never re-sorted.
// Top entries are nil when the active partition is empty.
type TopPerformers struct {
	TopState       *StateRow     `json:"top_state"`
	Top5States     []StateRow    `json:"top_5_states"`
	TopCategory    *CategoryRow  `json:"top_category"`
	Top5Categories []CategoryRow `json:"top_5_categories"`
}

// Metadata carries run provenance attached to every report.
type Metadata struct {
	LastUpdated           time.Time `json:"last_updated"`
	TotalRecordsProcessed int       `json:"total_records_processed"`
	ActiveOrdersProcessed int       `json:"active_orders_processed"`
	PipelineVersion       string    `json:"pipeline_version"`
}

// Report is the terminal artifact of one pipeline run. It is assembled
// once, immutable afterwards, and written to exactly one destination key
// per invocation with overwrite semantics.
type Report struct {
	KPIs          KPISet        `json:"kpis"`
	ByState       []StateRow    `json:"by_state"`
	ByCategory    []CategoryRow `json:"by_category"`
	ByMonth       []MonthRow    `json:"by_month"`
	BySize        []SizeRow     `json:"by_size"`
	TopPerformers TopPerformers `json:"top_performers"`
	Metadata      Metadata      `json:"metadata"`
}
