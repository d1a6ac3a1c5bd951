// Package filter is the post-collection cleaning pass. It runs once
// over the accumulated per-model observations, when the full price
// distribution is known, instead of judging listings one at a time.
package filter

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/gpuradar/gpuradar/internal/ingest"
)

// Config holds the tunable thresholds.
type Config struct {
	// LowFactor scales the per-model median into the low-outlier
	// threshold. Prices below it are rejected only together with a
	// suspicious keyword.
	LowFactor float64
	// HighFactor scales the median into the high-outlier threshold.
	HighFactor float64
	// HighEnabled toggles the high-outlier rejection.
	HighEnabled bool
	// MinSampleSize is the smallest observation count per model for
	// which the statistical thresholds apply at all.
	MinSampleSize int
	// AbsoluteFloor rejects any price below it unconditionally.
	AbsoluteFloor float64
}

// DefaultConfig mirrors the tuning the thresholds converged on.
func DefaultConfig() Config {
	return Config{
		LowFactor:     0.50,
		HighFactor:    3.0,
		HighEnabled:   true,
		MinSampleSize: 3,
		AbsoluteFloor: 50,
	}
}

// Filter applies keyword and statistical outlier rules to collected
// observations.
type Filter struct {
	cfg    Config
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Filter {
	return &Filter{cfg: cfg, logger: logger}
}

// Apply cleans the per-model observation lists. Every input observation
// ends up either in the returned map or in a rejection record, never
// both and never neither. Models whose observations are all rejected
// are absent from the returned map.
func (f *Filter) Apply(byModel map[string][]ingest.PriceObservation) (map[string][]ingest.PriceObservation, *ingest.FilterStats, []ingest.RejectionRecord) {
	kept := make(map[string][]ingest.PriceObservation, len(byModel))
	stats := ingest.NewFilterStats()
	var rejected []ingest.RejectionRecord

	for model, observations := range byModel {
		var survivors []ingest.PriceObservation
		for _, obs := range observations {
			if cat, term, ok := MatchKeyword(obs.Title + " " + obs.Description); ok {
				rejected = append(rejected, f.reject(obs, cat,
					fmt.Sprintf("blacklisted keyword %q", term), stats))
				continue
			}
			survivors = append(survivors, obs)
		}

		useStats := len(survivors) >= f.cfg.MinSampleSize
		var low, high float64
		if useStats {
			med := median(survivors)
			low = med * f.cfg.LowFactor
			high = med * f.cfg.HighFactor
			f.logger.Debug("price thresholds",
				zap.String("model", model),
				zap.Float64("median", med),
				zap.Float64("low", low),
				zap.Float64("high", high),
				zap.Int("samples", len(survivors)))
		}

		for _, obs := range survivors {
			switch {
			case obs.Price < f.cfg.AbsoluteFloor:
				rejected = append(rejected, f.reject(obs, ingest.CategoryPriceFloor,
					fmt.Sprintf("price %.0f below absolute floor %.0f", obs.Price, f.cfg.AbsoluteFloor), stats))
			case useStats && obs.Price < low:
				term, suspicious := hasSuspiciousTerm(obs.Title + " " + obs.Description)
				if !suspicious {
					// A cheap listing with no pressure wording may be
					// a genuine bargain. Keep it.
					kept[model] = append(kept[model], obs)
					stats.TotalKept++
					continue
				}
				rejected = append(rejected, f.reject(obs, ingest.CategoryStatisticalLow,
					fmt.Sprintf("price %.0f below %.0f with keyword %q", obs.Price, low, term), stats))
			case useStats && f.cfg.HighEnabled && obs.Price > high:
				rejected = append(rejected, f.reject(obs, ingest.CategoryStatisticalHigh,
					fmt.Sprintf("price %.0f above %.0f", obs.Price, high), stats))
			default:
				kept[model] = append(kept[model], obs)
				stats.TotalKept++
			}
		}
	}

	return kept, stats, rejected
}

func (f *Filter) reject(obs ingest.PriceObservation, cat ingest.RejectionCategory, reason string, stats *ingest.FilterStats) ingest.RejectionRecord {
	stats.Count(cat)
	f.logger.Debug("filtered observation",
		zap.String("model", obs.Model),
		zap.Float64("price", obs.Price),
		zap.String("reason", reason))
	return ingest.RejectionRecord{
		Title:    obs.Title,
		Price:    obs.Price,
		URL:      obs.URL,
		Model:    obs.Model,
		Reason:   reason,
		Category: cat,
	}
}

func median(observations []ingest.PriceObservation) float64 {
	prices := make([]float64, len(observations))
	for i, obs := range observations {
		prices[i] = obs.Price
	}
	sort.Float64s(prices)
	n := len(prices)
	if n%2 == 1 {
		return prices[n/2]
	}
	return (prices[n/2-1] + prices[n/2]) / 2
}
