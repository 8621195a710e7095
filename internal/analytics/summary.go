package analytics

import "ecommerce-analytics/internal/domain"

// Summary is the full output of one analysis pass: every derived entity
// plus the validation diagnostics for the input that produced it.
type Summary struct {
	Business      domain.BusinessMetrics
	Monthly       []domain.MonthlyTrend
	AverageGrowth *float64 // nil with fewer than two months of data
	Weekly        []domain.WeeklyTrend
	Categories    []domain.CategorySummary
	Products      []domain.ProductSummary
	RFM           map[string]domain.CustomerRFM
	Segments      []domain.SegmentSummary
	TopCustomers  []domain.TopCustomer
	Diagnostics   *Diagnostics
}

// Summarize validates the input and runs every computation over the
// well-formed records. Malformed records are skipped and reported in
// Diagnostics; the call never fails on bad or empty input.
func Summarize(orders []*domain.Order, cfg Config) *Summary {
	valid, diags := ValidateOrders(orders)

	rfm, refWarnings := ComputeCustomerRFM(valid, cfg)
	diags.ReferenceDateWarnings = refWarnings

	monthly := ComputeMonthlyTrend(valid)

	return &Summary{
		Business:      ComputeBusinessMetrics(valid),
		Monthly:       monthly,
		AverageGrowth: AverageGrowth(monthly),
		Weekly:        ComputeWeeklyTrend(valid),
		Categories:    ComputeCategorySummary(valid),
		Products:      ComputeProductRanking(valid, cfg.TopN),
		RFM:           rfm,
		Segments:      ComputeSegmentSummary(valid, cfg),
		TopCustomers:  ComputeTopCustomers(valid, cfg.TopN),
		Diagnostics:   diags,
	}
}
