package pipeline

import "sync"

// Deduper tracks listing URLs across search terms so a card matching
// several terms is only counted once per run.
type Deduper struct {
	seen sync.Map
}

func NewDeduper() *Deduper {
	return &Deduper{}
}

// MarkIfNew stores the URL if it has not been seen before and returns true.
func (d *Deduper) MarkIfNew(url string) bool {
	if url == "" {
		return false
	}
	_, loaded := d.seen.LoadOrStore(url, struct{}{})
	return !loaded
}
