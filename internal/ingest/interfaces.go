package ingest

import "context"

// Fetcher retrieves one URL and returns the body plus metadata.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Response, error)
}

// Source describes one marketplace: how to address a result page for a
// search term, and how to turn a fetched page into raw ads. HTML parsing
// lives entirely behind this boundary.
type Source interface {
	// PageURL builds the result-page URL for a search term. Pages are
	// 1-indexed.
	PageURL(term string, page int) string
	// ParsePage extracts the raw ads from a result page body and reports
	// whether pagination continues past it.
	ParsePage(body []byte) (ads []RawAd, hasNext bool, err error)
}
