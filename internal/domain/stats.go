package domain

import "time"

// RecordImageCount is one fan-out breakdown entry for the reconciliation
// report.
type RecordImageCount struct {
	BaseID string
	Title  string
	Images int
}

// FeedStats holds statistics about one feed generation run.
type FeedStats struct {
	Fetched        map[EntityKind]int
	Rows           map[EntityKind]int
	TotalRows      int
	SkippedRecords int
	SkippedImages  int

	// Fan-out path only (multi-image course pages).
	FanOutRecords int
	FanOutImages  int
	Breakdown     []RecordImageCount

	ExpectedImages int
	Duration       time.Duration
}

// NewFeedStats returns stats with the per-kind maps initialized.
func NewFeedStats() *FeedStats {
	return &FeedStats{
		Fetched: make(map[EntityKind]int),
		Rows:    make(map[EntityKind]int),
	}
}
