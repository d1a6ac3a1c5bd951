package pipeline

import (
	"sort"
	"strings"

	"github.com/gpuradar/gpuradar/internal/catalog"
	"github.com/gpuradar/gpuradar/internal/ingest"
)

// ValueEntry is one model's price/performance standing.
type ValueEntry struct {
	Model    string
	FPS      float64
	MinPrice float64
	// Value is FPS per currency unit; higher is better.
	Value float64
}

// ReferencePrice picks the price to rank a model by. With at least
// three observations it takes the 25th percentile instead of the bare
// minimum, which keeps a single mispriced listing from defining the
// model's market price.
func ReferencePrice(observations []ingest.PriceObservation) (float64, bool) {
	if len(observations) == 0 {
		return 0, false
	}
	prices := make([]float64, len(observations))
	for i, obs := range observations {
		prices[i] = obs.Price
	}
	sort.Float64s(prices)
	if len(prices) >= 3 {
		return prices[len(prices)/4], true
	}
	return prices[0], true
}

// ValueRanking ranks the collected models by benchmark FPS per currency
// unit, best value first. Models without a benchmark match are left out.
// Matching tries the exact model key first, then falls back to a
// base/variant containment match so "RTX 3080 10GB" can use the
// "RTX 3080" benchmark.
func ValueRanking(observations map[string][]ingest.PriceObservation, store *catalog.Store) []ValueEntry {
	var out []ValueEntry
	for model, obs := range observations {
		price, ok := ReferencePrice(obs)
		if !ok || price <= 0 {
			continue
		}
		fps, ok := benchmarkFor(model, store)
		if !ok {
			continue
		}
		out = append(out, ValueEntry{
			Model:    model,
			FPS:      fps,
			MinPrice: price,
			Value:    fps / price,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Model < out[j].Model
	})
	return out
}

func benchmarkFor(model string, store *catalog.Store) (float64, bool) {
	if fps, ok := store.BenchmarkFPS(model); ok {
		return fps, true
	}
	// Exact match failed; try the base without the VRAM suffix, then a
	// containment scan. Exact-first ordering keeps "RTX 2070" from
	// borrowing the "RTX 2070 SUPER" score.
	if base, _, ok := catalog.SplitVRAMSuffix(model); ok {
		if fps, found := store.BenchmarkFPS(base); found {
			return fps, true
		}
	}
	compact := strings.ReplaceAll(model, " ", "")
	for _, known := range store.Models() {
		fps, ok := store.BenchmarkFPS(known)
		if !ok {
			continue
		}
		knownCompact := strings.ReplaceAll(known, " ", "")
		if strings.Contains(knownCompact, compact) || strings.Contains(compact, knownCompact) {
			return fps, true
		}
	}
	return 0, false
}
