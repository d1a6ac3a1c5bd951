package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gpuradar/gpuradar/internal/catalog"
	"github.com/gpuradar/gpuradar/internal/ingest"
)

func obsAt(model string, prices ...float64) []ingest.PriceObservation {
	out := make([]ingest.PriceObservation, len(prices))
	for i, p := range prices {
		out[i] = ingest.PriceObservation{Model: model, Price: p}
	}
	return out
}

func TestReferencePrice(t *testing.T) {
	t.Parallel()

	_, ok := ReferencePrice(nil)
	require.False(t, ok)

	// Under three observations the minimum stands.
	price, ok := ReferencePrice(obsAt("RTX 3060", 700, 500))
	require.True(t, ok)
	require.Equal(t, 500.0, price)

	// With enough samples the 25th percentile shields the ranking from a
	// single mispriced listing.
	price, ok = ReferencePrice(obsAt("RTX 3060", 100, 700, 720, 740))
	require.True(t, ok)
	require.Equal(t, 700.0, price)
}

func TestValueRankingOrdersByValue(t *testing.T) {
	t.Parallel()

	store := catalog.NewStore()
	observations := map[string][]ingest.PriceObservation{
		// ~88 FPS for 400: value 0.22
		"RTX 3060 TI": obsAt("RTX 3060 TI", 400, 450),
		// ~40 FPS for 100: value 0.40, best deal
		"GTX 1060 6GB": obsAt("GTX 1060 6GB", 100, 120),
		"not a model":  obsAt("not a model", 50),
	}

	ranking := ValueRanking(observations, store)
	require.Len(t, ranking, 2)
	require.Equal(t, "GTX 1060 6GB", ranking[0].Model)
	require.Equal(t, "RTX 3060 TI", ranking[1].Model)
	require.Greater(t, ranking[0].Value, ranking[1].Value)
}

func TestValueRankingFallsBackToBaseBenchmark(t *testing.T) {
	t.Parallel()

	store := catalog.NewStore()
	baseFPS, ok := store.BenchmarkFPS("RTX 4070")
	require.True(t, ok)

	// A memory variant without its own score borrows the base model's.
	observations := map[string][]ingest.PriceObservation{
		"RTX 4070 12GB": obsAt("RTX 4070 12GB", 600),
	}
	ranking := ValueRanking(observations, store)
	require.Len(t, ranking, 1)
	require.Equal(t, baseFPS, ranking[0].FPS)
}
