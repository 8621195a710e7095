package reporting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"ecommerce-analytics/internal/analytics"
	"ecommerce-analytics/internal/storage"
)

// Generator produces reports from stored orders.
type Generator struct {
	orderStore storage.OrderStore
	cfg        analytics.Config
	now        func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(orderStore storage.OrderStore, cfg analytics.Config) *Generator {
	return &Generator{
		orderStore: orderStore,
		cfg:        cfg,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate loads all orders, runs the analytics engine over them and
// assembles a complete report.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	orders, err := g.orderStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	summary := analytics.Summarize(orders, g.cfg)

	return &Report{
		GeneratedAt:   g.now(),
		RunID:         uuid.NewString(),
		Business:      summary.Business,
		AverageGrowth: summary.AverageGrowth,
		Monthly:       summary.Monthly,
		Weekly:        summary.Weekly,
		Categories:    summary.Categories,
		Products:      summary.Products,
		TopCustomers:  summary.TopCustomers,
		Segments:      summary.Segments,
		Diagnostics:   summary.Diagnostics,
	}, nil
}

// Artifact file names written by WriteArtifacts.
const (
	ReportFileName              = "REPORT.md"
	BusinessMetricsFileName     = "business_metrics.csv"
	MonthlySalesFileName        = "monthly_sales.csv"
	CategoryPerformanceFileName = "category_performance.csv"
)

// WriteArtifacts renders the report and writes the Markdown report plus
// the CSV exports into dir, creating it if needed.
func WriteArtifacts(dir string, r *Report) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	files := map[string]string{
		ReportFileName:              RenderMarkdown(r),
		BusinessMetricsFileName:     RenderBusinessMetricsCSV(r),
		MonthlySalesFileName:        RenderMonthlySalesCSV(r),
		CategoryPerformanceFileName: RenderCategoryPerformanceCSV(r),
	}

	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}
