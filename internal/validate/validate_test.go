package validate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gpuradar/gpuradar/internal/catalog"
	"github.com/gpuradar/gpuradar/internal/ingest"
)

func TestValidateKnownModel(t *testing.T) {
	t.Parallel()
	v := New(catalog.NewStore())

	out := v.Validate("GTX 1060 6GB")
	require.Equal(t, StatusAccepted, out.Status)
	require.True(t, out.Accepted())
	require.Equal(t, "GTX 1060 6GB", out.Model)
}

func TestValidateUncataloguedVariantOfRealCard(t *testing.T) {
	t.Parallel()
	v := New(catalog.NewStore())

	out := v.Validate("RTX 3060 TI 12GB")
	require.Equal(t, StatusAcceptedWithoutVRAM, out.Status)
	require.True(t, out.Accepted())
	require.Equal(t, "RTX 3060 TI 12GB", out.Model)
	require.Equal(t, "RTX 3060 TI", out.Base)
}

func TestValidateTypo(t *testing.T) {
	t.Parallel()
	v := New(catalog.NewStore())

	out := v.Validate("GTX 1018")
	require.Equal(t, StatusRejected, out.Status)
	require.False(t, out.Accepted())
	require.Equal(t, ingest.CategoryTypo, out.Category)
	require.Contains(t, out.Reason, "looks like a typo")
}

func TestValidateUnknownModel(t *testing.T) {
	t.Parallel()
	v := New(catalog.NewStore())

	out := v.Validate("GTX 7777")
	require.Equal(t, StatusRejected, out.Status)
	require.Equal(t, ingest.CategoryUnknownModel, out.Category)
}

func TestIsTypo(t *testing.T) {
	t.Parallel()

	cases := []struct {
		candidate string
		known     string
		want      bool
	}{
		{"GTX 1018", "GTX 1080", true},
		{"RTX 3060 8GB", "RTX 3060 12GB", false}, // memory variants, same card
		{"GTX 1060", "GTX 1060 6GB", false},
		{"RTX 3070", "GTX 3070", false},  // brand mismatch
		{"GTX 1060", "GTX 1660", false},  // different generation
		{"GTX 960", "GTX 1060", false},   // different number length
		{"RTX 3060 TL", "RTX 3060 TI", true},
		{"ARC A770", "ARC A750", true},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, IsTypo(tc.candidate, tc.known),
			"IsTypo(%q, %q)", tc.candidate, tc.known)
	}
}
