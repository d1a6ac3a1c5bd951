package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gpuradar/gpuradar/internal/catalog"
	"github.com/gpuradar/gpuradar/internal/ingest"
)

func newExtractor(t *testing.T) *Extractor {
	t.Helper()
	return New(catalog.NewStore(), zap.NewNop())
}

func TestExtractCanonicalizesTitleMentions(t *testing.T) {
	t.Parallel()
	e := newExtractor(t)

	cases := []struct {
		name        string
		title       string
		description string
		want        string
	}{
		{"glued suffix and vram", "RTX3060TI 12GB", "", "RTX 3060 TI 12GB"},
		{"vendor only title", "Gigabyte 1060 6gb", "", "GTX 1060 6GB"},
		{"incomplete rx name corrected", "RX 7900", "", "RX 7900 XT"},
		{"vram from description", "Intel Arc B580", "12GB VRAM, GDDR6", "ARC B580 12GB"},
		{"lowercase with noise", "продавам rtx 4070 super като нова", "", "RTX 4070 SUPER"},
		{"cyrillic vram unit", "GTX 1070 8гб", "", "GTX 1070 8GB"},
		{"brand prefix stripped", "NVIDIA GeForce GTX 1080", "", "GTX 1080"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, rej := e.Extract(tc.title, tc.description)
			require.Nil(t, rej)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestExtractNoModelMention(t *testing.T) {
	t.Parallel()
	e := newExtractor(t)

	got, rej := e.Extract("Геймърски стол, черен", "")
	require.Empty(t, got)
	require.Nil(t, rej)
}

func TestExtractRejectsAmbiguousMissingVRAM(t *testing.T) {
	t.Parallel()
	e := newExtractor(t)

	// GTX 1060 shipped as 3GB and 6GB; a listing naming neither
	// cannot be priced against either variant.
	got, rej := e.Extract("GTX 1060 работи перфектно", "")
	require.Empty(t, got)
	require.NotNil(t, rej)
	require.Equal(t, ingest.CategoryMissingVRAM, rej.Category)
	require.Equal(t, "GTX 1060", rej.Model)
}

func TestExtractDiscardsSystemRAMFigure(t *testing.T) {
	t.Parallel()
	e := newExtractor(t)

	// 32GB next to a GTX 1650 is the machine's RAM, not the card's.
	got, rej := e.Extract("GTX 1650 геймърски компютър 32GB", "")
	require.Equal(t, "GTX 1650", got)
	require.NotNil(t, rej)
	require.Equal(t, ingest.CategoryInvalidVRAM, rej.Category)
}

func TestExtractKeepsUncataloguedVariant(t *testing.T) {
	t.Parallel()
	e := newExtractor(t)

	// 12GB is not a catalogued RTX 3060 TI variant but is close enough
	// to the reference size to keep as its own price group.
	got, rej := e.Extract("RTX 3060 TI 12GB", "")
	require.Nil(t, rej)
	require.Equal(t, "RTX 3060 TI 12GB", got)
}

func TestExtractWarrantyNotVRAM(t *testing.T) {
	t.Parallel()
	e := newExtractor(t)

	got, rej := e.Extract("RX 6600 с 3г гаранция", "")
	require.Nil(t, rej)
	require.Equal(t, "RX 6600", got)
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()
	store := catalog.NewStore()

	inputs := []string{
		"rtx3060ti12gb",
		"GTX 1060 SUPER",
		"RX 7900",
		"amd radeon rx 6700xt",
		"ARC A770 16GB",
		"RTX 4070 TI 16GB",
	}
	for _, in := range inputs {
		once := Normalize(in, store)
		require.Equal(t, once, Normalize(once, store), "input %q", in)
	}
}

func TestNormalizeCorrectionsApplyOnce(t *testing.T) {
	t.Parallel()
	store := catalog.NewStore()

	// GTX 1060 SUPER never existed; the correction lands on the real
	// GTX 1660 SUPER and stays there.
	require.Equal(t, "GTX 1660 SUPER", Normalize("GTX 1060 SUPER", store))
	require.Equal(t, "GTX 1660 SUPER", Normalize("GTX 1660 SUPER", store))
}

func TestVRAMFromText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want int
	}{
		{"RTX 3060 12GB", 12},
		{"видео карта с 16 GB", 16},
		{"8гб GDDR5", 8},
		{"карта 8г", 8},
		{"2г гаранция", 0},
		{"гаранция 3 години", 0},
		{"GTX 1060 3GB, 2г гаранция", 3},
		{"i7, 32GB RAM", 32}, // plausibility is the extractor's call
		{"5GB не е валиден размер", 0},
		{"без памет в текста", 0},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, VRAMFromText(tc.text), "text %q", tc.text)
	}
}
