package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders the report as a Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# E-commerce Business Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Run: %s\n\n", r.RunID))

	// Business Overview
	sb.WriteString("## Business Overview\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Total Orders | %d |\n", r.Business.TotalOrders))
	sb.WriteString(fmt.Sprintf("| Total Revenue | $%s |\n", r.Business.TotalRevenue.StringFixed(2)))
	if r.Business.TotalOrders > 0 {
		sb.WriteString(fmt.Sprintf("| Average Order Value | $%s |\n", r.Business.AvgOrderValue.StringFixed(2)))
	} else {
		sb.WriteString("| Average Order Value | n/a |\n")
	}
	sb.WriteString(fmt.Sprintf("| Unique Customers | %d |\n", r.Business.UniqueCustomers))
	if r.AverageGrowth != nil {
		sb.WriteString(fmt.Sprintf("| Average Monthly Growth | %.1f%% |\n", *r.AverageGrowth))
	} else {
		sb.WriteString("| Average Monthly Growth | n/a |\n")
	}
	sb.WriteString("\n")

	// Monthly Trend
	sb.WriteString("## Monthly Sales Trend\n\n")
	if len(r.Monthly) == 0 {
		sb.WriteString("No data.\n\n")
	} else {
		sb.WriteString("| Month | Revenue | Orders | Growth |\n")
		sb.WriteString("|-------|---------|--------|--------|\n")
		for _, m := range r.Monthly {
			growth := "n/a"
			if m.Growth != nil {
				growth = fmt.Sprintf("%.1f%%", *m.Growth)
			}
			sb.WriteString(fmt.Sprintf("| %s | $%s | %d | %s |\n",
				m.Month, m.Revenue.StringFixed(2), m.OrderCount, growth))
		}
		sb.WriteString("\n")
	}

	// Category Performance
	sb.WriteString("## Category Performance\n\n")
	if len(r.Categories) == 0 {
		sb.WriteString("No data.\n\n")
	} else {
		sb.WriteString("| Category | Revenue | Orders | Avg Order Value |\n")
		sb.WriteString("|----------|---------|--------|------------------|\n")
		for _, c := range r.Categories {
			sb.WriteString(fmt.Sprintf("| %s | $%s | %d | $%s |\n",
				c.Category, c.Revenue.StringFixed(2), c.OrderCount, c.AvgOrderValue.StringFixed(2)))
		}
		sb.WriteString("\n")
	}

	// Product Ranking
	sb.WriteString("## Top Products\n\n")
	if len(r.Products) == 0 {
		sb.WriteString("No data.\n\n")
	} else {
		sb.WriteString("| Product | Category | Revenue | Units | Orders |\n")
		sb.WriteString("|---------|----------|---------|-------|--------|\n")
		for _, p := range r.Products {
			sb.WriteString(fmt.Sprintf("| %s | %s | $%s | %d | %d |\n",
				p.ProductName, p.Category, p.Revenue.StringFixed(2), p.UnitsSold, p.OrderCount))
		}
		sb.WriteString("\n")
	}

	// Customer Segmentation
	sb.WriteString("## Customer Segmentation\n\n")
	if len(r.Segments) == 0 {
		sb.WriteString("No data.\n\n")
	} else {
		sb.WriteString("| Segment | Customers | Avg Spend | Avg Orders |\n")
		sb.WriteString("|---------|-----------|-----------|------------|\n")
		for _, s := range r.Segments {
			sb.WriteString(fmt.Sprintf("| %s | %d | $%s | %.1f |\n",
				s.Segment, s.CustomerCount, s.AvgSpend.StringFixed(2), s.AvgOrders))
		}
		sb.WriteString("\n")
	}

	// Top Customers
	sb.WriteString("## Top Customers by Spending\n\n")
	if len(r.TopCustomers) == 0 {
		sb.WriteString("No data.\n\n")
	} else {
		sb.WriteString("| Customer | Total Spent | Orders |\n")
		sb.WriteString("|----------|-------------|--------|\n")
		for _, c := range r.TopCustomers {
			sb.WriteString(fmt.Sprintf("| %s | $%s | %d |\n",
				c.CustomerID, c.Monetary.StringFixed(2), c.Frequency))
		}
		sb.WriteString("\n")
	}

	// Data Quality
	sb.WriteString("## Data Quality\n\n")
	if r.Diagnostics == nil || (r.Diagnostics.SkippedRecords == 0 && len(r.Diagnostics.ReferenceDateWarnings) == 0) {
		sb.WriteString("All input records passed validation.\n")
	} else {
		sb.WriteString(fmt.Sprintf("%d of %d records skipped.\n\n",
			r.Diagnostics.SkippedRecords, r.Diagnostics.TotalRecords))
		for _, e := range r.Diagnostics.RecordErrors {
			sb.WriteString(fmt.Sprintf("- %s\n", e))
		}
		for _, w := range r.Diagnostics.ReferenceDateWarnings {
			sb.WriteString(fmt.Sprintf("- %s\n", w))
		}
	}

	return sb.String()
}
