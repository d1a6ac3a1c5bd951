package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitVRAMSuffix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		model string
		base  string
		gb    int
		ok    bool
	}{
		{"GTX 1060 6GB", "GTX 1060", 6, true},
		{"RTX 3080 12GB", "RTX 3080", 12, true},
		{"RTX 3060 TI", "", 0, false},
		{"RX 580 8GB", "RX 580", 8, true},
		{"RTX 4090", "", 0, false},
	}
	for _, tt := range tests {
		base, gb, ok := SplitVRAMSuffix(tt.model)
		require.Equal(t, tt.ok, ok, tt.model)
		require.Equal(t, tt.base, base, tt.model)
		require.Equal(t, tt.gb, gb, tt.model)
	}
}

func TestStoreVariantQueries(t *testing.T) {
	t.Parallel()

	s := NewStore()

	require.True(t, s.Known("RTX 3060 TI"))
	require.True(t, s.Known("GTX 1060 6GB"))
	require.False(t, s.Known("RTX 9999"))

	// GTX 1060 shipped as 3GB and 6GB, so a bare "GTX 1060" is ambiguous.
	require.True(t, s.HasMultipleVRAMVariants("GTX 1060"))
	require.False(t, s.HasMultipleVRAMVariants("RTX 4090"))

	require.True(t, s.IsKnownVariant("GTX 1060", 3))
	require.True(t, s.IsKnownVariant("GTX 1060", 6))
	require.False(t, s.IsKnownVariant("GTX 1060", 12))

	gb, ok := s.VRAM("RTX 4090")
	require.True(t, ok)
	require.Equal(t, 24, gb)
}

func TestCorrectionsApplyOnceAndNeverChain(t *testing.T) {
	t.Parallel()

	s := NewStore()

	require.Equal(t, "RX 7900 XT", s.Correct("RX 7900"))
	require.Equal(t, "GTX 1080", s.Correct("GTX 1080 SUPER"))

	// A corrected result must come back unchanged even when it has its
	// own catalog entry.
	require.Equal(t, "RX 7900 XT", s.Correct("RX 7900 XT"))
	require.Equal(t, "RTX 3060 TI", s.Correct("RTX 3060 TI"))
}

func TestModelsSortedAndEntry(t *testing.T) {
	t.Parallel()

	s := NewStore()

	models := s.Models()
	require.NotEmpty(t, models)
	require.IsIncreasing(t, models)

	e, ok := s.Entry("GTX 1060 6GB")
	require.True(t, ok)
	require.Equal(t, 6, e.VRAMGB)

	_, ok = s.Entry("GTX 9060")
	require.False(t, ok)
}

func TestBenchmarkFPS(t *testing.T) {
	t.Parallel()

	s := NewStore()

	fps, ok := s.BenchmarkFPS("RTX 3060 TI")
	require.True(t, ok)
	require.Greater(t, fps, 0.0)

	_, ok = s.BenchmarkFPS("RTX 9999")
	require.False(t, ok)
}
