package analytics

import "github.com/sells-group/sales-analytics/internal/model"

// ComputeKPIs derives the whole-dataset scalar metrics. Revenue-bearing
// metrics use the active partition only; the cancellation metrics use
// the full partition. hasB2B reflects whether the source schema carried
// the B2B column at all: without it, B2B revenue is zero and B2C
// revenue equals total revenue.
func ComputeKPIs(all, active []model.Record, hasB2B bool) model.KPISet {
	var kpis model.KPISet

	for _, r := range active {
		kpis.TotalRevenue += r.Amount
		kpis.TotalQuantity += r.Qty
		if hasB2B && r.B2B {
			kpis.B2BRevenue += r.Amount
		}
		switch r.FulfilledBy {
		case model.FulfilledByAmazon:
			kpis.AmazonFulfilledOrders++
		case model.FulfilledByMerchant:
			kpis.MerchantFulfilledOrders++
		}
	}

	kpis.TotalOrders = len(active)
	kpis.B2CRevenue = kpis.TotalRevenue - kpis.B2BRevenue
	kpis.CancelledOrders = len(all) - len(active)

	// Ratio KPIs stay null on empty input instead of dividing by zero.
	if len(active) > 0 {
		aov := kpis.TotalRevenue / float64(len(active))
		kpis.AverageOrderValue = &aov
	}
	if len(all) > 0 {
		rate := float64(kpis.CancelledOrders) / float64(len(all)) * 100
		kpis.CancellationRate = &rate
	}

	return kpis
}
