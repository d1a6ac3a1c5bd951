// Package catalog holds the static, read-only GPU reference data: canonical
// model names, VRAM sizes, benchmark scores and the correction table. A Store
// is built once at startup and shared without locking.
package catalog

import (
	"regexp"
	"sort"
	"strconv"
)

var vramSuffix = regexp.MustCompile(`^(.+) (\d{1,2})GB$`)

// Entry is one catalogued model.
type Entry struct {
	Model        string
	VRAMGB       int
	BenchmarkFPS float64
}

// Store is the in-memory catalog. All lookups expect canonical
// (already-normalized) model strings.
type Store struct {
	vram         map[string]int
	fps          map[string]float64
	corrections  map[string]string
	known        map[string]struct{}
	variants     map[string][]int
	multiVariant map[string]bool
	models       []string
}

// NewStore builds the catalog from the built-in reference tables.
func NewStore() *Store {
	return newStore(vramSpecs, benchmarkFPS, corrections)
}

func newStore(vram map[string]int, fps map[string]float64, corr map[string]string) *Store {
	s := &Store{
		vram:         vram,
		fps:          fps,
		corrections:  corr,
		known:        make(map[string]struct{}, len(vram)+len(fps)),
		variants:     make(map[string][]int),
		multiVariant: make(map[string]bool),
	}
	for model := range vram {
		s.known[model] = struct{}{}
	}
	for model := range fps {
		s.known[model] = struct{}{}
	}
	for model := range s.known {
		s.models = append(s.models, model)
		base, gb, ok := SplitVRAMSuffix(model)
		if !ok {
			continue
		}
		s.variants[base] = append(s.variants[base], gb)
		if def, found := vram[base]; found && gb != def {
			s.multiVariant[base] = true
		}
	}
	sort.Strings(s.models)
	return s
}

// SplitVRAMSuffix splits "GTX 1060 6GB" into ("GTX 1060", 6, true).
// Models without a trailing memory size return ok=false.
func SplitVRAMSuffix(model string) (base string, gb int, ok bool) {
	m := vramSuffix.FindStringSubmatch(model)
	if m == nil {
		return "", 0, false
	}
	gb, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return m[1], gb, true
}

// Known reports whether the exact canonical model exists in the catalog.
func (s *Store) Known(model string) bool {
	_, ok := s.known[model]
	return ok
}

// VRAM returns the default VRAM size for a base model.
func (s *Store) VRAM(base string) (int, bool) {
	gb, ok := s.vram[base]
	return gb, ok
}

// HasMultipleVRAMVariants reports whether the base model shipped with more
// than one memory size, meaning a listing must name the variant to be
// priced safely.
func (s *Store) HasMultipleVRAMVariants(base string) bool {
	return s.multiVariant[base]
}

// IsKnownVariant reports whether the given VRAM size is plausible for the
// base model: either the default size or a catalogued variant.
func (s *Store) IsKnownVariant(base string, vramGB int) bool {
	if def, ok := s.vram[base]; ok && def == vramGB {
		return true
	}
	for _, gb := range s.variants[base] {
		if gb == vramGB {
			return true
		}
	}
	return false
}

// BenchmarkFPS returns the benchmark score for a model, if measured.
func (s *Store) BenchmarkFPS(model string) (float64, bool) {
	fps, ok := s.fps[model]
	return fps, ok
}

// Correct applies the correction table once. Corrections are never chained:
// the result is returned as-is even if it appears in the table itself.
func (s *Store) Correct(model string) string {
	if to, ok := s.corrections[model]; ok {
		return to
	}
	return model
}

// Models returns all catalogued canonical model names in sorted order.
func (s *Store) Models() []string {
	return s.models
}

// Entry returns the full catalog record for a model.
func (s *Store) Entry(model string) (Entry, bool) {
	if !s.Known(model) {
		return Entry{}, false
	}
	e := Entry{Model: model}
	if gb, ok := s.vram[model]; ok {
		e.VRAMGB = gb
	} else if _, gb, ok := SplitVRAMSuffix(model); ok {
		e.VRAMGB = gb
	}
	e.BenchmarkFPS = s.fps[model]
	return e, true
}
