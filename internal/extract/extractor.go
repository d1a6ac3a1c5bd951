package extract

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/gpuradar/gpuradar/internal/catalog"
	"github.com/gpuradar/gpuradar/internal/ingest"
)

// rule pairs a title pattern with a builder that turns the match into
// a raw model mention. Rules are tried in order; the first hit wins.
type rule struct {
	pattern *regexp.Regexp
	build   func(m []string) string
}

func matched(m []string) string { return m[0] }

// Branded mentions first, space-free Bulgarian shorthand next, then
// vendor-only titles like "Gigabyte 1060 6gb" where the brand prefix
// has to be inferred from the model number.
var rules = []rule{
	{regexp.MustCompile(`RTX\s?\d{4}\s?(TI|SUPER)?`), matched},
	{regexp.MustCompile(`GTX\s?\d{3,4}\s?(TI|SUPER)?`), matched},
	{regexp.MustCompile(`RX\s?\d{3,4}\s?(XTX|XT|GRE)?`), matched},
	{regexp.MustCompile(`RTX\d{4}(TI|SUPER)`), matched},
	{regexp.MustCompile(`GTX\d{3,4}(TI|SUPER)`), matched},
	{regexp.MustCompile(`RX\d{3,4}(XTX|XT|GRE)?`), matched},
	{regexp.MustCompile(`ARC\s?[AB]\d{3}`), matched},
	{regexp.MustCompile(`VEGA\s?\d+`), matched},
	{
		regexp.MustCompile(`(?:NVIDIA|GIGABYTE|ASUS|MSI|ZOTAC|EVGA|PNY|PALIT|GAINWARD|INNO3D|KFA2|GALAX|COLORFUL|MANLI|SAPPHIRE|XFX|POWERCOLOR)\s+(\d{3,4})\s?(TI|SUPER)?`),
		buildFromVendor,
	},
}

// buildFromVendor infers the missing brand prefix from the model
// number. 9xx/1xxx numbers are GeForce GTX generations, 2xxx through
// 5xxx are RTX. Anything else is too ambiguous to guess.
func buildFromVendor(m []string) string {
	number, suffix := m[1], m[2]
	var brand string
	switch number[0] {
	case '1', '9':
		brand = "GTX"
	case '2', '3', '4', '5':
		brand = "RTX"
	default:
		return ""
	}
	model := brand + " " + number
	if suffix != "" {
		model += " " + suffix
	}
	return model
}

// Rejection reports why an ad's model mention could not be accepted,
// or why part of it (the VRAM figure) was discarded.
type Rejection struct {
	Model    string
	Reason   string
	Category ingest.RejectionCategory
}

// Extractor turns listing titles into canonical catalog model keys.
type Extractor struct {
	store  *catalog.Store
	logger *zap.Logger
}

func New(store *catalog.Store, logger *zap.Logger) *Extractor {
	return &Extractor{store: store, logger: logger}
}

// Extract finds a GPU model mention in the title, normalizes it and
// attaches the VRAM size found in the title or description.
//
// The returned model may be empty when nothing recognizable was found
// (no rejection: the ad is simply not a GPU listing) or when the
// mention is unusable (rejection set). A non-empty model together with
// a non-nil rejection means the VRAM figure was discarded as implausible
// but the base model itself survives.
func (e *Extractor) Extract(title, description string) (string, *Rejection) {
	raw := e.match(strings.ToUpper(title))
	if raw == "" {
		return "", nil
	}

	model := Normalize(raw, e.store)
	base, _, hasEmbedded := catalog.SplitVRAMSuffix(model)
	if !hasEmbedded {
		base = model
	}

	vram := VRAMFromText(title)
	if vram == 0 && description != "" {
		vram = VRAMFromText(description)
	}

	suffix := fmt.Sprintf("%dGB", vram)
	if vram > 0 && !strings.Contains(model, suffix) {
		if !e.plausibleVRAM(base, vram) {
			e.logger.Warn("discarding implausible vram figure",
				zap.String("model", model),
				zap.Int("vram_gb", vram))
			return model, &Rejection{
				Model:    base,
				Reason:   fmt.Sprintf("implausible %dGB for %s, likely system RAM", vram, base),
				Category: ingest.CategoryInvalidVRAM,
			}
		}
		return e.store.Correct(model + " " + suffix), nil
	}

	if vram == 0 && !hasEmbedded && e.store.HasMultipleVRAMVariants(base) {
		return "", &Rejection{
			Model:    base,
			Reason:   fmt.Sprintf("%s ships in multiple memory sizes, listing names none", base),
			Category: ingest.CategoryMissingVRAM,
		}
	}

	return model, nil
}

func (e *Extractor) match(title string) string {
	for _, r := range rules {
		if m := r.pattern.FindStringSubmatch(title); m != nil {
			return r.build(m)
		}
	}
	return ""
}

// plausibleVRAM decides whether an extracted memory size can belong to
// the card at all. Known variants always pass. For bases the catalog
// knows, anything beyond twice the reference size is treated as system
// RAM leaking into the listing text. Unknown bases get the benefit of
// the doubt; validation deals with them later.
func (e *Extractor) plausibleVRAM(base string, vram int) bool {
	if e.store.IsKnownVariant(base, vram) {
		return true
	}
	expected, ok := e.store.VRAM(base)
	if !ok {
		return true
	}
	return vram <= 2*expected
}
