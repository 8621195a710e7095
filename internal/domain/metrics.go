package domain

import "github.com/shopspring/decimal"

// BusinessMetrics holds whole-dataset aggregates.
// AvgOrderValue is decimal zero when TotalOrders is zero; callers treat
// TotalOrders == 0 as "no data" rather than reading the zero average.
type BusinessMetrics struct {
	TotalOrders     int
	TotalRevenue    decimal.Decimal
	AvgOrderValue   decimal.Decimal
	UniqueCustomers int
}

// MonthlyTrend is one calendar month of revenue and order volume.
// Growth is percent change vs the prior month; nil for the first month
// (not applicable, never zero).
type MonthlyTrend struct {
	Month      string // "YYYY-MM" key, unique per entry
	Revenue    decimal.Decimal
	OrderCount int
	Growth     *float64
}

// WeeklyTrend is one ISO week of revenue and order volume.
type WeeklyTrend struct {
	Week       string // "YYYY-Www"
	Revenue    decimal.Decimal
	OrderCount int
}

// CategorySummary aggregates orders for one distinct category.
type CategorySummary struct {
	Category      string
	Revenue       decimal.Decimal
	OrderCount    int
	AvgOrderValue decimal.Decimal
}

// ProductSummary aggregates orders for one (product, category) pair.
type ProductSummary struct {
	ProductName string
	Category    string
	Revenue     decimal.Decimal
	UnitsSold   int
	OrderCount  int
}

// TopCustomer is one row of the customers-by-spend ranking.
type TopCustomer struct {
	CustomerID string
	Monetary   decimal.Decimal
	Frequency  int
}
