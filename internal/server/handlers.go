package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"ecommerce-analytics/internal/analytics"
	"ecommerce-analytics/internal/domain"
	"ecommerce-analytics/internal/storage"
)

// metricsResponse is the JSON shape of /api/metrics. AvgOrderValue and
// AverageMonthlyGrowth are null when there is insufficient data.
type metricsResponse struct {
	TotalRevenue         decimal.Decimal  `json:"total_revenue"`
	TotalOrders          int              `json:"total_orders"`
	AvgOrderValue        *decimal.Decimal `json:"avg_order_value"`
	UniqueCustomers      int              `json:"unique_customers"`
	AverageMonthlyGrowth *float64         `json:"average_monthly_growth"`
	SkippedRecords       int              `json:"skipped_records"`
}

type monthlyEntry struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
	Growth  *float64        `json:"growth"`
}

type categoryEntry struct {
	Category      string          `json:"category"`
	Revenue       decimal.Decimal `json:"revenue"`
	OrderCount    int             `json:"order_count"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
}

type productEntry struct {
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	Revenue     decimal.Decimal `json:"revenue"`
	UnitsSold   int             `json:"units_sold"`
	OrderCount  int             `json:"order_count"`
}

type segmentEntry struct {
	Segment       domain.Segment  `json:"segment"`
	CustomerCount int             `json:"customer_count"`
	AvgSpend      decimal.Decimal `json:"avg_spend"`
	AvgOrders     float64         `json:"avg_orders"`
}

type topCustomerEntry struct {
	CustomerID string          `json:"customer_id"`
	Monetary   decimal.Decimal `json:"monetary"`
	Frequency  int             `json:"frequency"`
}

type recentOrderEntry struct {
	OrderID     int64           `json:"order_id"`
	CustomerID  string          `json:"customer_id"`
	OrderDate   string          `json:"order_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ProductName string          `json:"product_name"`
}

func toMetricsResponse(summary *analytics.Summary) metricsResponse {
	resp := metricsResponse{
		TotalRevenue:         summary.Business.TotalRevenue,
		TotalOrders:          summary.Business.TotalOrders,
		UniqueCustomers:      summary.Business.UniqueCustomers,
		AverageMonthlyGrowth: summary.AverageGrowth,
	}
	if summary.Business.TotalOrders > 0 {
		avg := summary.Business.AvgOrderValue
		resp.AvgOrderValue = &avg
	}
	if summary.Diagnostics != nil {
		resp.SkippedRecords = summary.Diagnostics.SkippedRecords
	}
	return resp
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	summary, err := s.summarize(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, toMetricsResponse(summary))
}

func (s *Server) handleMonthlyData(w http.ResponseWriter, r *http.Request) {
	summary, err := s.summarize(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}

	entries := make([]monthlyEntry, 0, len(summary.Monthly))
	for _, m := range summary.Monthly {
		entries = append(entries, monthlyEntry{
			Month:   m.Month,
			Revenue: m.Revenue,
			Orders:  m.OrderCount,
			Growth:  m.Growth,
		})
	}
	writeJSON(w, entries)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	summary, err := s.summarize(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}

	entries := make([]categoryEntry, 0, len(summary.Categories))
	for _, c := range summary.Categories {
		entries = append(entries, categoryEntry{
			Category:      c.Category,
			Revenue:       c.Revenue,
			OrderCount:    c.OrderCount,
			AvgOrderValue: c.AvgOrderValue,
		})
	}
	writeJSON(w, entries)
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	summary, err := s.summarize(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}

	entries := make([]productEntry, 0, len(summary.Products))
	for _, p := range summary.Products {
		entries = append(entries, productEntry{
			ProductName: p.ProductName,
			Category:    p.Category,
			Revenue:     p.Revenue,
			UnitsSold:   p.UnitsSold,
			OrderCount:  p.OrderCount,
		})
	}
	writeJSON(w, entries)
}

func (s *Server) handleSegments(w http.ResponseWriter, r *http.Request) {
	summary, err := s.summarize(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}

	entries := make([]segmentEntry, 0, len(summary.Segments))
	for _, seg := range summary.Segments {
		entries = append(entries, segmentEntry{
			Segment:       seg.Segment,
			CustomerCount: seg.CustomerCount,
			AvgSpend:      seg.AvgSpend,
			AvgOrders:     seg.AvgOrders,
		})
	}
	writeJSON(w, entries)
}

func (s *Server) handleTopCustomers(w http.ResponseWriter, r *http.Request) {
	summary, err := s.summarize(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}

	entries := make([]topCustomerEntry, 0, len(summary.TopCustomers))
	for _, c := range summary.TopCustomers {
		entries = append(entries, topCustomerEntry{
			CustomerID: c.CustomerID,
			Monetary:   c.Monetary,
			Frequency:  c.Frequency,
		})
	}
	writeJSON(w, entries)
}

func (s *Server) handleRecentOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.GetRecent(r.Context(), s.cfg.TopN)
	if err != nil {
		s.serverError(w, err)
		return
	}

	entries := make([]recentOrderEntry, 0, len(orders))
	for _, o := range orders {
		entries = append(entries, recentOrderEntry{
			OrderID:     o.OrderID,
			CustomerID:  o.CustomerID,
			OrderDate:   o.OrderDate.Format("2006-01-02"),
			TotalAmount: o.TotalAmount,
			ProductName: o.ProductName,
		})
	}
	writeJSON(w, entries)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// statusResponse is the JSON response for the /status endpoint.
type statusResponse struct {
	Status          string     `json:"status"`
	Uptime          string     `json:"uptime"`
	StoredOrders    int        `json:"stored_orders"`
	LastAnalysisRun string     `json:"last_analysis_run,omitempty"`
	LastAnalysisAt  *time.Time `json:"last_analysis_at,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	count, err := s.orders.Count(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}

	resp := statusResponse{
		Status:       "running",
		Uptime:       time.Since(s.started).String(),
		StoredOrders: count,
	}

	if s.snapshots != nil {
		snap, err := s.snapshots.GetLatest(r.Context())
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			s.serverError(w, err)
			return
		}
		if snap != nil {
			resp.LastAnalysisRun = snap.RunID
			at := snap.ComputedAt
			resp.LastAnalysisAt = &at
		}
	}

	writeJSON(w, resp)
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	s.logger.Printf("request failed: %v", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers already sent; nothing to do beyond logging at caller level.
		return
	}
}
