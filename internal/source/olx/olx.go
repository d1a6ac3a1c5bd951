// Package olx adapts the OLX.bg marketplace to the ingestion pipeline:
// it builds search result URLs and parses listing previews out of
// result pages.
package olx

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gpuradar/gpuradar/internal/ingest"
)

const baseURL = "https://www.olx.bg"

var (
	priceRe = regexp.MustCompile(`(\d+(?:\s\d+)*)\s*лв`)
	nextRe  = regexp.MustCompile(`[→›»]|[Нн]апред|[Сс]ледваща`)
	pageRe  = regexp.MustCompile(`[?&]page=(\d+)`)
)

// Source implements ingest.Source for OLX.bg.
type Source struct{}

func New() *Source { return &Source{} }

// PageURL builds the search result URL for a term. OLX serves the
// first page at the bare search path and later pages via ?page=N.
func (s *Source) PageURL(term string, page int) string {
	u := fmt.Sprintf("%s/ads/q-%s/", baseURL, url.PathEscape(term))
	if page > 1 {
		u += fmt.Sprintf("?page=%d", page)
	}
	return u
}

// ParsePage extracts listing previews from a result page. Listings are
// anchors pointing at ad detail paths; the preview card carries the
// title in a heading, the price and an optional description snippet in
// paragraph tags.
func (s *Source) ParsePage(body []byte) ([]ingest.RawAd, bool, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("parse page: %w", err)
	}

	var ads []ingest.RawAd
	doc.Find(`a[href^="/d/ad/"]`).Each(func(_ int, a *goquery.Selection) {
		ad, ok := parseAd(a)
		if ok {
			ads = append(ads, ad)
		}
	})

	return ads, hasNextPage(doc), nil
}

func parseAd(a *goquery.Selection) (ingest.RawAd, bool) {
	title := strings.TrimSpace(a.Find("h4, h6").First().Text())
	if title == "" {
		return ingest.RawAd{}, false
	}

	var (
		price       float64
		priceFound  bool
		description string
	)
	a.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := strings.TrimSpace(p.Text())
		if !priceFound {
			if m := priceRe.FindStringSubmatch(text); m != nil {
				v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], " ", ""), 64)
				if err == nil {
					price = v
					priceFound = true
					return true
				}
			}
		}
		if description == "" && !strings.Contains(text, "лв") && len([]rune(text)) > 20 {
			description = text
		}
		return !(priceFound && description != "")
	})
	if !priceFound {
		return ingest.RawAd{}, false
	}

	href, _ := a.Attr("href")
	return ingest.RawAd{
		Title:       title,
		Price:       price,
		URL:         baseURL + href,
		Description: description,
	}, true
}

// hasNextPage looks for a forward control or a pagination link beyond
// the page marked as current.
func hasNextPage(doc *goquery.Document) bool {
	next := false
	doc.Find("a, button").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if nextRe.MatchString(strings.TrimSpace(s.Text())) {
			next = true
			return false
		}
		return true
	})
	if next {
		return true
	}

	// Fallback: any page link numbered above the current page.
	current := 1
	if href, ok := doc.Find(`a[data-cy="pagination-active"]`).Attr("href"); ok {
		if m := pageRe.FindStringSubmatch(href); m != nil {
			current, _ = strconv.Atoi(m[1])
		}
	}
	doc.Find(`a[href*="page="]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if m := pageRe.FindStringSubmatch(href); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > current {
				next = true
				return false
			}
		}
		return true
	})
	return next
}
