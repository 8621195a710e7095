package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"ecommerce-analytics/internal/domain"
)

// ComputeBusinessMetrics aggregates counts and revenue over the whole
// order set. Empty input yields zero counts and a zero average; no
// division by zero occurs.
func ComputeBusinessMetrics(orders []*domain.Order) domain.BusinessMetrics {
	m := domain.BusinessMetrics{}
	if len(orders) == 0 {
		return m
	}

	customers := make(map[string]struct{})
	for _, o := range orders {
		m.TotalOrders++
		m.TotalRevenue = m.TotalRevenue.Add(o.TotalAmount)
		customers[o.CustomerID] = struct{}{}
	}
	m.UniqueCustomers = len(customers)
	m.AvgOrderValue = m.TotalRevenue.Div(decimal.NewFromInt(int64(m.TotalOrders))).Round(2)
	return m
}

// ComputeMonthlyTrend groups orders by the first-of-month truncation of
// the order date and returns one entry per month present, sorted
// ascending by "YYYY-MM" key. Growth is percent change vs the prior
// month; the first entry's Growth is nil.
func ComputeMonthlyTrend(orders []*domain.Order) []domain.MonthlyTrend {
	type bucket struct {
		revenue decimal.Decimal
		count   int
	}
	buckets := make(map[string]*bucket)
	for _, o := range orders {
		key := o.OrderDate.Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.revenue = b.revenue.Add(o.TotalAmount)
		b.count++
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	trend := make([]domain.MonthlyTrend, 0, len(keys))
	for i, k := range keys {
		entry := domain.MonthlyTrend{
			Month:      k,
			Revenue:    buckets[k].revenue,
			OrderCount: buckets[k].count,
		}
		if i > 0 {
			prev := trend[i-1].Revenue
			if prev.IsPositive() {
				g := entry.Revenue.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).InexactFloat64()
				entry.Growth = &g
			}
		}
		trend = append(trend, entry)
	}
	return trend
}

// AverageGrowth returns the mean of all defined month-over-month growth
// values, or nil when fewer than two months of data exist.
func AverageGrowth(trend []domain.MonthlyTrend) *float64 {
	sum := 0.0
	n := 0
	for _, t := range trend {
		if t.Growth != nil {
			sum += *t.Growth
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

// ComputeWeeklyTrend groups orders by ISO week, sorted ascending by key.
func ComputeWeeklyTrend(orders []*domain.Order) []domain.WeeklyTrend {
	type bucket struct {
		revenue decimal.Decimal
		count   int
	}
	buckets := make(map[string]*bucket)
	for _, o := range orders {
		year, week := o.OrderDate.ISOWeek()
		key := fmt.Sprintf("%04d-W%02d", year, week)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.revenue = b.revenue.Add(o.TotalAmount)
		b.count++
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	trend := make([]domain.WeeklyTrend, 0, len(keys))
	for _, k := range keys {
		trend = append(trend, domain.WeeklyTrend{
			Week:       k,
			Revenue:    buckets[k].revenue,
			OrderCount: buckets[k].count,
		})
	}
	return trend
}

// ComputeCategorySummary groups orders by category, sorted by revenue
// descending with category name ascending as the deterministic tiebreak.
func ComputeCategorySummary(orders []*domain.Order) []domain.CategorySummary {
	buckets := make(map[string]*domain.CategorySummary)
	for _, o := range orders {
		s, ok := buckets[o.Category]
		if !ok {
			s = &domain.CategorySummary{Category: o.Category}
			buckets[o.Category] = s
		}
		s.Revenue = s.Revenue.Add(o.TotalAmount)
		s.OrderCount++
	}

	result := make([]domain.CategorySummary, 0, len(buckets))
	for _, s := range buckets {
		s.AvgOrderValue = s.Revenue.Div(decimal.NewFromInt(int64(s.OrderCount))).Round(2)
		result = append(result, *s)
	}

	sort.Slice(result, func(i, j int) bool {
		if c := result[i].Revenue.Cmp(result[j].Revenue); c != 0 {
			return c > 0
		}
		return result[i].Category < result[j].Category
	})
	return result
}

// ComputeProductRanking groups orders by (product, category), ranks by
// revenue descending with product name ascending as tiebreak, and
// truncates to topN. topN <= 0 means no truncation.
func ComputeProductRanking(orders []*domain.Order, topN int) []domain.ProductSummary {
	type key struct{ product, category string }
	buckets := make(map[key]*domain.ProductSummary)
	for _, o := range orders {
		k := key{o.ProductName, o.Category}
		s, ok := buckets[k]
		if !ok {
			s = &domain.ProductSummary{ProductName: o.ProductName, Category: o.Category}
			buckets[k] = s
		}
		s.Revenue = s.Revenue.Add(o.TotalAmount)
		s.UnitsSold += o.Quantity
		s.OrderCount++
	}

	result := make([]domain.ProductSummary, 0, len(buckets))
	for _, s := range buckets {
		result = append(result, *s)
	}

	sort.Slice(result, func(i, j int) bool {
		if c := result[i].Revenue.Cmp(result[j].Revenue); c != 0 {
			return c > 0
		}
		return result[i].ProductName < result[j].ProductName
	})

	if topN > 0 && len(result) > topN {
		result = result[:topN]
	}
	return result
}

// ComputeCustomerRFM derives per-customer recency/frequency/monetary
// dimensions and assigns a tier to each, keyed by customer ID.
//
// Recency is whole days between cfg.ReferenceDate and the customer's most
// recent order date. A zero reference date resolves to the latest order
// date in the input. If the reference date precedes a customer's latest
// order, recency is clamped to zero and a warning is returned.
func ComputeCustomerRFM(orders []*domain.Order, cfg Config) (map[string]domain.CustomerRFM, []string) {
	if len(orders) == 0 {
		return map[string]domain.CustomerRFM{}, nil
	}

	stats := make(map[string]*domain.CustomerRFM)
	var maxDate time.Time
	for _, o := range orders {
		s, ok := stats[o.CustomerID]
		if !ok {
			s = &domain.CustomerRFM{CustomerID: o.CustomerID}
			stats[o.CustomerID] = s
		}
		s.Frequency++
		s.Monetary = s.Monetary.Add(o.TotalAmount)
		if o.OrderDate.After(s.LastOrderDate) {
			s.LastOrderDate = o.OrderDate
		}
		if o.OrderDate.After(maxDate) {
			maxDate = o.OrderDate
		}
	}

	ref := cfg.ReferenceDate
	if ref.IsZero() {
		ref = maxDate
	}

	var warnings []string
	result := make(map[string]domain.CustomerRFM, len(stats))
	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids) // deterministic warning order

	for _, id := range ids {
		s := stats[id]
		days := int(ref.Sub(s.LastOrderDate).Hours() / 24)
		if days < 0 {
			warnings = append(warnings, fmt.Sprintf(
				"customer %s: last order %s postdates reference date %s, recency clamped to 0",
				id, s.LastOrderDate.Format("2006-01-02"), ref.Format("2006-01-02")))
			days = 0
		}
		s.RecencyDays = days
		s.RecencyTier = recencyTier(days, cfg)
		s.FrequencyTier = frequencyTier(s.Frequency, cfg)
		s.MonetaryTier = monetaryTier(s.Monetary, cfg)
		result[id] = *s
	}
	return result, warnings
}

func recencyTier(days int, cfg Config) domain.Tier {
	switch {
	case days <= cfg.RecencyHighMaxDays:
		return domain.TierHigh
	case days <= cfg.RecencyMediumMaxDays:
		return domain.TierMedium
	default:
		return domain.TierLow
	}
}

func frequencyTier(frequency int, cfg Config) domain.Tier {
	switch {
	case frequency > cfg.FrequencyHighMin:
		return domain.TierHigh
	case frequency > cfg.FrequencyMediumMin:
		return domain.TierMedium
	default:
		return domain.TierLow
	}
}

func monetaryTier(monetary decimal.Decimal, cfg Config) domain.Tier {
	switch {
	case monetary.GreaterThan(cfg.MonetaryHighMin):
		return domain.TierHigh
	case monetary.GreaterThan(cfg.MonetaryMediumMin):
		return domain.TierMedium
	default:
		return domain.TierLow
	}
}

// ClassifySegment maps a customer's monetary value to exactly one of the
// four segment labels. All boundaries are exclusive lower bounds, so the
// labels partition the value range with no gaps or overlaps.
func ClassifySegment(monetary decimal.Decimal, cfg Config) domain.Segment {
	switch {
	case monetary.GreaterThan(cfg.SegmentVIPMin):
		return domain.SegmentVIP
	case monetary.GreaterThan(cfg.SegmentLoyalMin):
		return domain.SegmentLoyal
	case monetary.GreaterThan(cfg.SegmentRegularMin):
		return domain.SegmentRegular
	default:
		return domain.SegmentOccasional
	}
}

// segmentRank orders segments from highest to lowest value.
var segmentRank = map[domain.Segment]int{
	domain.SegmentVIP:        0,
	domain.SegmentLoyal:      1,
	domain.SegmentRegular:    2,
	domain.SegmentOccasional: 3,
}

// ComputeSegmentSummary groups customers into segments and aggregates
// count, average spend and average order count per segment, ordered
// VIP first. Segments with no customers are omitted.
func ComputeSegmentSummary(orders []*domain.Order, cfg Config) []domain.SegmentSummary {
	rfm, _ := ComputeCustomerRFM(orders, cfg)

	type bucket struct {
		count     int
		spend     decimal.Decimal
		ordersSum int
	}
	buckets := make(map[domain.Segment]*bucket)
	for _, c := range rfm {
		seg := ClassifySegment(c.Monetary, cfg)
		b, ok := buckets[seg]
		if !ok {
			b = &bucket{}
			buckets[seg] = b
		}
		b.count++
		b.spend = b.spend.Add(c.Monetary)
		b.ordersSum += c.Frequency
	}

	result := make([]domain.SegmentSummary, 0, len(buckets))
	for seg, b := range buckets {
		result = append(result, domain.SegmentSummary{
			Segment:       seg,
			CustomerCount: b.count,
			AvgSpend:      b.spend.Div(decimal.NewFromInt(int64(b.count))).Round(2),
			AvgOrders:     float64(b.ordersSum) / float64(b.count),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return segmentRank[result[i].Segment] < segmentRank[result[j].Segment]
	})
	return result
}

// ComputeTopCustomers ranks customers by monetary value descending with
// customer ID ascending as tiebreak, truncated to topN. topN <= 0 means
// no truncation.
func ComputeTopCustomers(orders []*domain.Order, topN int) []domain.TopCustomer {
	type bucket struct {
		monetary  decimal.Decimal
		frequency int
	}
	buckets := make(map[string]*bucket)
	for _, o := range orders {
		b, ok := buckets[o.CustomerID]
		if !ok {
			b = &bucket{}
			buckets[o.CustomerID] = b
		}
		b.monetary = b.monetary.Add(o.TotalAmount)
		b.frequency++
	}

	result := make([]domain.TopCustomer, 0, len(buckets))
	for id, b := range buckets {
		result = append(result, domain.TopCustomer{
			CustomerID: id,
			Monetary:   b.monetary,
			Frequency:  b.frequency,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if c := result[i].Monetary.Cmp(result[j].Monetary); c != 0 {
			return c > 0
		}
		return result[i].CustomerID < result[j].CustomerID
	})

	if topN > 0 && len(result) > topN {
		result = result[:topN]
	}
	return result
}
