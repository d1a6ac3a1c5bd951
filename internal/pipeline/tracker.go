package pipeline

import (
	"sync"

	"github.com/gpuradar/gpuradar/internal/ingest"
	"github.com/gpuradar/gpuradar/internal/metrics"
)

// RejectionTracker collects the audit trail of discarded listings along
// with per-category counts.
type RejectionTracker struct {
	mu      sync.Mutex
	records []ingest.RejectionRecord
	stats   *ingest.FilterStats
}

func NewRejectionTracker() *RejectionTracker {
	return &RejectionTracker{stats: ingest.NewFilterStats()}
}

// Reject records one discarded listing.
func (t *RejectionTracker) Reject(rec ingest.RejectionRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = append(t.records, rec)
	t.stats.Count(rec.Category)
	metrics.CountRejection(rec.Category)
}

// Records returns the accumulated audit entries.
func (t *RejectionTracker) Records() []ingest.RejectionRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]ingest.RejectionRecord, len(t.records))
	copy(out, t.records)
	return out
}

// Stats returns a copy of the accumulated counts.
func (t *RejectionTracker) Stats() *ingest.FilterStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := ingest.NewFilterStats()
	out.Merge(t.stats)
	return out
}
