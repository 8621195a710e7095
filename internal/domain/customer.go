package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tier is an independent High/Medium/Low score for one RFM dimension.
type Tier string

// RFM tier labels
const (
	TierHigh   Tier = "High"
	TierMedium Tier = "Medium"
	TierLow    Tier = "Low"
)

// Segment is a coarse customer classification derived from monetary
// value alone. The four labels are mutually exclusive and exhaustive.
type Segment string

// Customer segment labels
const (
	SegmentVIP        Segment = "VIP"
	SegmentLoyal      Segment = "Loyal"
	SegmentRegular    Segment = "Regular"
	SegmentOccasional Segment = "Occasional"
)

// CustomerRFM holds one customer's recency/frequency/monetary dimensions
// and the tier assigned to each.
type CustomerRFM struct {
	CustomerID    string
	Frequency     int             // order count
	Monetary      decimal.Decimal // revenue sum
	RecencyDays   int             // whole days since last order, never negative
	LastOrderDate time.Time
	RecencyTier   Tier
	FrequencyTier Tier
	MonetaryTier  Tier
}

// SegmentSummary aggregates all customers of one segment.
type SegmentSummary struct {
	Segment       Segment
	CustomerCount int
	AvgSpend      decimal.Decimal
	AvgOrders     float64
}
