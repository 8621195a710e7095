package reporting

import (
	"time"

	"ecommerce-analytics/internal/analytics"
	"ecommerce-analytics/internal/domain"
)

// Report is the full business report rendered to Markdown and CSV.
type Report struct {
	// Metadata
	GeneratedAt time.Time
	RunID       string

	// Overview
	Business      domain.BusinessMetrics
	AverageGrowth *float64 // nil with fewer than two months of data

	// Trends
	Monthly []domain.MonthlyTrend
	Weekly  []domain.WeeklyTrend

	// Rankings
	Categories   []domain.CategorySummary
	Products     []domain.ProductSummary
	TopCustomers []domain.TopCustomer

	// Segmentation
	Segments []domain.SegmentSummary

	// Data Quality
	Diagnostics *analytics.Diagnostics
}
