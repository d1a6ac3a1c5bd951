// Package validate decides whether an extracted model key names a real
// card. It separates genuine typos (GTX 1018) from uncatalogued memory
// variants of real cards, which stay their own price groups.
package validate

import (
	"fmt"
	"regexp"

	"github.com/antzucaro/matchr"

	"github.com/gpuradar/gpuradar/internal/catalog"
	"github.com/gpuradar/gpuradar/internal/ingest"
)

// Status classifies a validation outcome.
type Status int

const (
	// StatusAccepted means the exact model key is catalogued.
	StatusAccepted Status = iota
	// StatusAcceptedWithoutVRAM means the memory variant is not
	// catalogued but the base model is real. The full key is kept.
	StatusAcceptedWithoutVRAM
	// StatusRejected means the key names no known card.
	StatusRejected
)

// Outcome is the result of validating one model key.
type Outcome struct {
	Status   Status
	Model    string
	Base     string
	Reason   string
	Category ingest.RejectionCategory
}

func (o Outcome) Accepted() bool { return o.Status != StatusRejected }

// Validator checks model keys against the catalog.
type Validator struct {
	store *catalog.Store
}

func New(store *catalog.Store) *Validator {
	return &Validator{store: store}
}

// Validate classifies a normalized model key.
func (v *Validator) Validate(model string) Outcome {
	if v.store.Known(model) {
		return Outcome{Status: StatusAccepted, Model: model, Base: model}
	}

	base, _, hasVRAM := catalog.SplitVRAMSuffix(model)
	if hasVRAM && v.store.Known(base) {
		return Outcome{Status: StatusAcceptedWithoutVRAM, Model: model, Base: base}
	}
	if !hasVRAM {
		base = model
	}

	for _, known := range v.store.Models() {
		if IsTypo(model, known) {
			return Outcome{
				Status:   StatusRejected,
				Model:    model,
				Base:     base,
				Reason:   fmt.Sprintf("%q looks like a typo of %q", model, known),
				Category: ingest.CategoryTypo,
			}
		}
	}

	return Outcome{
		Status:   StatusRejected,
		Model:    model,
		Base:     base,
		Reason:   fmt.Sprintf("unknown model %q", model),
		Category: ingest.CategoryUnknownModel,
	}
}

var modelPartsRe = regexp.MustCompile(`^(GTX|RTX|RX|ARC|VEGA)\s+([AB]?\d{2,4})`)

// IsTypo reports whether candidate is most likely a misspelling of the
// known model. Both sides are compared with their VRAM suffix stripped,
// so memory variants of the same card are never typos of each other.
// Candidates must share brand, number length and series with the known
// model; within those bounds a Damerau-Levenshtein distance of one or
// two (a slipped or swapped character) counts as a typo.
func IsTypo(candidate, known string) bool {
	cb := stripVRAM(candidate)
	kb := stripVRAM(known)
	if cb == kb {
		return false
	}

	cm := modelPartsRe.FindStringSubmatch(cb)
	km := modelPartsRe.FindStringSubmatch(kb)
	if cm == nil || km == nil || cm[1] != km[1] {
		return false
	}
	cn, kn := cm[2], km[2]
	if len(cn) != len(kn) || !sameSeries(cn, kn) {
		return false
	}

	d := matchr.DamerauLevenshtein(cb, kb)
	return d >= 1 && d <= 2
}

// sameSeries compares the generation prefix of two model numbers:
// the first two digits for four-digit numbers (1018 and 1080 are both
// 10-series), the first digit otherwise. Cards from different
// generations are never typos of each other.
func sameSeries(a, b string) bool {
	n := 1
	if len(a) >= 4 {
		n = 2
	}
	return a[:n] == b[:n]
}

func stripVRAM(model string) string {
	if base, _, ok := catalog.SplitVRAMSuffix(model); ok {
		return base
	}
	return model
}
