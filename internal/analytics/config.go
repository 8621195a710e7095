// Package analytics computes business metrics, trends, rankings and
// customer segmentation from an in-memory order collection. Every
// computation is a pure function: deterministic over the same input,
// no shared state, safe for concurrent callers.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config carries the classification policy constants and ranking limits.
// Thresholds are policy, not derived; tests override them freely.
type Config struct {
	// Recency tiers (inclusive upper bounds, in whole days):
	// High if days <= RecencyHighMaxDays, Medium if <= RecencyMediumMaxDays, else Low.
	RecencyHighMaxDays   int
	RecencyMediumMaxDays int

	// Frequency tiers (exclusive lower bounds):
	// High if orders > FrequencyHighMin, Medium if > FrequencyMediumMin, else Low.
	FrequencyHighMin   int
	FrequencyMediumMin int

	// Monetary tiers (exclusive lower bounds):
	// High if spend > MonetaryHighMin, Medium if > MonetaryMediumMin, else Low.
	MonetaryHighMin   decimal.Decimal
	MonetaryMediumMin decimal.Decimal

	// Segment boundaries (exclusive lower bounds). Deliberately separate
	// from the monetary tiers above: four buckets vs three, different
	// granularity.
	SegmentVIPMin     decimal.Decimal
	SegmentLoyalMin   decimal.Decimal
	SegmentRegularMin decimal.Decimal

	// TopN limits product and customer rankings.
	TopN int

	// ReferenceDate anchors recency computation. The zero value means
	// "use the latest order date present in the input".
	ReferenceDate time.Time
}

// DefaultConfig returns the standard classification policy.
func DefaultConfig() Config {
	return Config{
		RecencyHighMaxDays:   30,
		RecencyMediumMaxDays: 90,
		FrequencyHighMin:     30,
		FrequencyMediumMin:   15,
		MonetaryHighMin:      decimal.NewFromInt(5000),
		MonetaryMediumMin:    decimal.NewFromInt(2000),
		SegmentVIPMin:        decimal.NewFromInt(5000),
		SegmentLoyalMin:      decimal.NewFromInt(2000),
		SegmentRegularMin:    decimal.NewFromInt(500),
		TopN:                 10,
	}
}
