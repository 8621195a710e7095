package reporting

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"ecommerce-analytics/internal/analytics"
	"ecommerce-analytics/internal/domain"
	"ecommerce-analytics/internal/storage/memory"
)

func fixtureOrder(id int64, customerID string, date time.Time, total string) *domain.Order {
	amount := decimal.RequireFromString(total)
	return &domain.Order{
		OrderID:     id,
		CustomerID:  customerID,
		ProductName: "AirPods",
		Category:    "Electronics",
		OrderDate:   date,
		UnitPrice:   amount,
		Quantity:    1,
		TotalAmount: amount,
	}
}

func fixtureStore(t *testing.T) *memory.OrderStore {
	t.Helper()
	store := memory.NewOrderStore()
	orders := []*domain.Order{
		fixtureOrder(1, "CUST_001", time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC), "1000.00"),
		fixtureOrder(2, "CUST_002", time.Date(2023, 2, 14, 0, 0, 0, 0, time.UTC), "1500.00"),
	}
	if err := store.InsertBulk(context.Background(), orders); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}
	return store
}

func TestGenerate(t *testing.T) {
	fixedTime := time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC)
	gen := NewGenerator(fixtureStore(t), analytics.DefaultConfig()).
		WithClock(func() time.Time { return fixedTime })

	report, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !report.GeneratedAt.Equal(fixedTime) {
		t.Errorf("GeneratedAt = %s, want %s", report.GeneratedAt, fixedTime)
	}
	if report.RunID == "" {
		t.Error("RunID is empty")
	}
	if report.Business.TotalOrders != 2 {
		t.Errorf("TotalOrders = %d, want 2", report.Business.TotalOrders)
	}
	if report.AverageGrowth == nil || *report.AverageGrowth != 50.0 {
		t.Errorf("AverageGrowth = %v, want 50.0", report.AverageGrowth)
	}
	if len(report.Monthly) != 2 {
		t.Errorf("len(Monthly) = %d, want 2", len(report.Monthly))
	}
}

func TestRenderMarkdown(t *testing.T) {
	gen := NewGenerator(fixtureStore(t), analytics.DefaultConfig()).
		WithClock(func() time.Time { return time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC) })

	report, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	md := RenderMarkdown(report)

	for _, want := range []string{
		"# E-commerce Business Report",
		"## Business Overview",
		"| Total Orders | 2 |",
		"| Total Revenue | $2500.00 |",
		"| Average Order Value | $1250.00 |",
		"| Average Monthly Growth | 50.0% |",
		"## Monthly Sales Trend",
		"| 2023-01 | $1000.00 | 1 | n/a |",
		"| 2023-02 | $1500.00 | 1 | 50.0% |",
		"## Customer Segmentation",
		"All input records passed validation.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestRenderMarkdown_EmptyReport(t *testing.T) {
	report := &Report{GeneratedAt: time.Now(), RunID: "r"}
	md := RenderMarkdown(report)

	if !strings.Contains(md, "| Average Order Value | n/a |") {
		t.Error("empty report should render avg order value as n/a")
	}
	if !strings.Contains(md, "| Average Monthly Growth | n/a |") {
		t.Error("empty report should render growth as n/a")
	}
	if !strings.Contains(md, "No data.") {
		t.Error("empty report should render No data sections")
	}
}

func TestRenderCSV(t *testing.T) {
	gen := NewGenerator(fixtureStore(t), analytics.DefaultConfig())
	report, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	business := RenderBusinessMetricsCSV(report)
	if !strings.Contains(business, "2,2500.00,1250.00,2") {
		t.Errorf("business CSV = %q", business)
	}

	monthly := RenderMonthlySalesCSV(report)
	lines := strings.Split(strings.TrimSpace(monthly), "\n")
	if len(lines) != 3 {
		t.Fatalf("monthly CSV has %d lines, want 3", len(lines))
	}
	if !strings.HasSuffix(lines[1], ",") {
		t.Errorf("first month growth column should be empty: %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "50.000000") {
		t.Errorf("second month growth = %q, want 50.000000", lines[2])
	}

	categories := RenderCategoryPerformanceCSV(report)
	if !strings.Contains(categories, "Electronics,2500.00,2,1250.00") {
		t.Errorf("category CSV = %q", categories)
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()

	gen := NewGenerator(fixtureStore(t), analytics.DefaultConfig())
	report, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if err := WriteArtifacts(dir, report); err != nil {
		t.Fatalf("WriteArtifacts failed: %v", err)
	}

	for _, name := range []string{
		ReportFileName,
		BusinessMetricsFileName,
		MonthlySalesFileName,
		CategoryPerformanceFileName,
	} {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("artifact %s is empty", name)
		}
	}
}

func TestWriteArtifacts_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	gen := NewGenerator(fixtureStore(t), analytics.DefaultConfig())
	report, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if err := WriteArtifacts(dir, report); err != nil {
		t.Fatalf("WriteArtifacts failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ReportFileName)); err != nil {
		t.Errorf("report not written into created dir: %v", err)
	}
}
