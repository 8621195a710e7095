package reporting

import (
	"fmt"
	"strings"
)

// RenderBusinessMetricsCSV renders the overview metrics as a one-row CSV.
func RenderBusinessMetricsCSV(r *Report) string {
	var sb strings.Builder
	sb.WriteString("total_orders,total_revenue,avg_order_value,unique_customers\n")
	sb.WriteString(fmt.Sprintf("%d,%s,%s,%d\n",
		r.Business.TotalOrders,
		r.Business.TotalRevenue.StringFixed(2),
		r.Business.AvgOrderValue.StringFixed(2),
		r.Business.UniqueCustomers,
	))
	return sb.String()
}

// RenderMonthlySalesCSV renders the monthly trend as CSV. The growth
// column is empty for the first month.
func RenderMonthlySalesCSV(r *Report) string {
	var sb strings.Builder
	sb.WriteString("month,monthly_revenue,order_count,growth_pct\n")
	for _, m := range r.Monthly {
		growth := ""
		if m.Growth != nil {
			growth = fmt.Sprintf("%.6f", *m.Growth)
		}
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%s\n",
			m.Month, m.Revenue.StringFixed(2), m.OrderCount, growth))
	}
	return sb.String()
}

// RenderCategoryPerformanceCSV renders the category summary as CSV.
func RenderCategoryPerformanceCSV(r *Report) string {
	var sb strings.Builder
	sb.WriteString("category,revenue,order_count,avg_order_value\n")
	for _, c := range r.Categories {
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%s\n",
			c.Category, c.Revenue.StringFixed(2), c.OrderCount, c.AvgOrderValue.StringFixed(2)))
	}
	return sb.String()
}
