// Package ingest defines core types shared across the ingestion pipeline.
package ingest

import (
	"net/http"
	"time"
)

// RawAd is one marketplace listing already parsed out of a result page.
// Produced by a Source implementation; immutable once created.
type RawAd struct {
	Title       string
	Price       float64
	URL         string
	Description string
}

// PriceObservation is one validated price point for a canonical model.
// Created after successful extraction and validation; never mutated,
// filtering only removes observations from a group.
type PriceObservation struct {
	Model       string
	Price       float64
	URL         string
	Title       string
	Description string
}

// RejectionCategory classifies why a listing was discarded.
type RejectionCategory string

// Rejection categories, keyword groups first (checked in this priority order
// by the statistical filter).
const (
	CategoryMining       RejectionCategory = "mining"
	CategoryWaterCooling RejectionCategory = "water_cooling_parts"
	CategoryCoolingParts RejectionCategory = "cooling_parts"
	CategoryDefective    RejectionCategory = "defective"
	CategoryFullComputer RejectionCategory = "full_computer"

	CategoryInvalidVRAM     RejectionCategory = "invalid_vram"
	CategoryMissingVRAM     RejectionCategory = "missing_vram"
	CategoryTypo            RejectionCategory = "likely_typo"
	CategoryUnknownModel    RejectionCategory = "unknown_model"
	CategoryStatisticalLow  RejectionCategory = "statistical_outlier_low"
	CategoryStatisticalHigh RejectionCategory = "statistical_outlier_high"
	CategoryPriceFloor      RejectionCategory = "extremely_low_price"
)

// RejectionRecord is the audit entry appended for every discarded listing.
// Model is the best-effort canonical model and may be empty when no model
// could be extracted at all.
type RejectionRecord struct {
	Title    string
	Price    float64
	URL      string
	Model    string
	Reason   string
	Category RejectionCategory
}

// FilterStats accumulates per-category rejection counts for one run.
type FilterStats struct {
	ByCategory    map[RejectionCategory]int
	TotalKept     int
	TotalFiltered int
}

// NewFilterStats returns empty, ready-to-increment stats.
func NewFilterStats() *FilterStats {
	return &FilterStats{ByCategory: make(map[RejectionCategory]int)}
}

// Count records one filtered observation in the given category.
func (s *FilterStats) Count(cat RejectionCategory) {
	s.ByCategory[cat]++
	s.TotalFiltered++
}

// Merge folds other into s.
func (s *FilterStats) Merge(other *FilterStats) {
	if other == nil {
		return
	}
	for cat, n := range other.ByCategory {
		s.ByCategory[cat] += n
	}
	s.TotalKept += other.TotalKept
	s.TotalFiltered += other.TotalFiltered
}

// Response is the result of fetching one result page.
type Response struct {
	URL        string
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}

// Result is everything one ingestion run produces for its collaborators.
type Result struct {
	RunID        string
	Observations map[string][]PriceObservation
	Stats        *FilterStats
	Rejected     []RejectionRecord
	PagesFetched int
	Duplicates   int
	StartedAt    time.Time
	FinishedAt   time.Time
}

// TotalObservations sums the kept observations across all models.
func (r *Result) TotalObservations() int {
	total := 0
	for _, obs := range r.Observations {
		total += len(obs)
	}
	return total
}
