package domain

import "time"

// AnalysisSnapshot is the persisted result of one analysis run.
// Corresponds to the analysis_runs and monthly_revenue tables in ClickHouse.
// Snapshots are append-only; re-running the analysis produces a new run ID.
type AnalysisSnapshot struct {
	RunID          string // uuid assigned per run
	ComputedAt     time.Time
	Metrics        BusinessMetrics
	SkippedRecords int // input records rejected during validation
	Monthly        []MonthlyTrend
}
