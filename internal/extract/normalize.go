package extract

import (
	"regexp"
	"strings"

	"github.com/gpuradar/gpuradar/internal/catalog"
)

// Normalization works on uppercase text with all interior whitespace
// removed, then re-inserts the canonical spacing. Running the result
// through Normalize again yields the same string.
var (
	brandPrefixRe = regexp.MustCompile(`^(?:AMD|NVIDIA|GEFORCE|RADEON|INTEL)\s*`)
	brandSpaceRe  = regexp.MustCompile(`(RTX|GTX|RX|VEGA|ARC)([AB]?\d)`)
	rxVegaRe      = regexp.MustCompile(`RX\s*VEGA`)

	// VRAM suffixes glued to the token before them. The Arc form runs
	// first so "A77016GB" splits on the letter-prefixed number instead
	// of the generic four-digit rule stealing a digit.
	vramAfterArcRe     = regexp.MustCompile(`([AB]\d{3})(\d{1,2}GB)$`)
	vramAfterQuadRe    = regexp.MustCompile(`(\d{4})(\d{1,2}GB)$`)
	vramAfterTripleRe  = regexp.MustCompile(`(\d{3})(\d{1,2}GB)$`)
	vramAfterEditionRe = regexp.MustCompile(`(TI|SUPER|XTX|XT|GRE)(\d{1,2}GB)$`)

	editionSpaceRe = regexp.MustCompile(`(\d)(TI|SUPER|XTX|XT|GRE)`)
	editionPairRe  = regexp.MustCompile(`(TI)(SUPER)`)
)

// Normalize canonicalizes a raw model mention into catalog form:
// uppercase, single-space separated brand, number, edition suffix and
// VRAM suffix, with known misspellings corrected. Idempotent.
func Normalize(raw string, store *catalog.Store) string {
	s := strings.ToUpper(strings.TrimSpace(raw))

	for {
		stripped := brandPrefixRe.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}

	s = strings.Join(strings.Fields(s), "")
	s = rxVegaRe.ReplaceAllString(s, "RX VEGA")
	s = brandSpaceRe.ReplaceAllString(s, "$1 $2")

	s = vramAfterArcRe.ReplaceAllString(s, "$1 $2")
	s = vramAfterQuadRe.ReplaceAllString(s, "$1 $2")
	s = vramAfterTripleRe.ReplaceAllString(s, "$1 $2")
	s = vramAfterEditionRe.ReplaceAllString(s, "$1 $2")

	s = editionSpaceRe.ReplaceAllString(s, "$1 $2")
	s = editionPairRe.ReplaceAllString(s, "$1 $2")

	return store.Correct(s)
}
