// Package model defines the typed records and report documents shared
// across the sales analytics pipeline.
package model

import "time"

// StatusCancelled is the canonical cancellation status. The active-order
// filter is a case-sensitive exact match against this value; any other
// status, including empty and unknown ones, counts as revenue-eligible.
const StatusCancelled = "Cancelled"

// Fulfillment channel values recognized by the KPI calculator.
const (
	FulfilledByAmazon   = "Amazon"
	FulfilledByMerchant = "Merchant"
)

// Record is one normalized sales transaction. All fields are typed once
// during ingest; downstream stages never see raw text columns. Amount and
// Qty are never missing after normalization: unparseable values become
// zero rather than failing the run.
type Record struct {
	OrderID     string    `json:"order_id"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	Amount      float64   `json:"amount"`
	Qty         int       `json:"qty"`
	ShipState   string    `json:"ship_state"`
	Category    string    `json:"category"`
	Size        string    `json:"size"`
	B2B         bool      `json:"b2b"`
	FulfilledBy string    `json:"fulfilled_by"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	MonthName   string    `json:"month_name"`
}

// Active reports whether the record is eligible for revenue metrics.
func (r Record) Active() bool {
	return r.Status != StatusCancelled
}
