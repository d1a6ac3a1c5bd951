package fetch

import (
	"math/rand"
	"net/http"
	"strings"
)

// DefaultUserAgents rotates recent desktop browsers. Overridable from
// configuration.
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:133.0) Gecko/20100101 Firefox/133.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:133.0) Gecko/20100101 Firefox/133.0",
}

var referers = []string{
	"https://www.google.com/",
	"https://www.google.bg/",
}

const refererChance = 0.3

// headerSet is one request's browser identity.
type headerSet struct {
	userAgent string
	headers   http.Header
}

// buildHeaders assembles a coherent header set for a randomly chosen
// user agent. Chrome and Firefox ship different fingerprint headers;
// mixing them up is an easy tell for bot detection.
func buildHeaders(rng *rand.Rand, userAgents []string) headerSet {
	ua := userAgents[rng.Intn(len(userAgents))]

	h := http.Header{}
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7")
	h.Set("Accept-Language", "bg-BG,bg;q=0.9,en-US;q=0.8,en;q=0.7")
	h.Set("Accept-Encoding", "gzip, deflate, br, zstd")
	h.Set("Connection", "keep-alive")
	h.Set("Upgrade-Insecure-Requests", "1")
	h.Set("Cache-Control", "max-age=0")

	isFirefox := strings.Contains(ua, "Firefox")
	if isFirefox {
		h.Set("DNT", "1")
	} else {
		h.Set("Sec-Ch-Ua", `"Chromium";v="131", "Not_A Brand";v="24"`)
		h.Set("Sec-Ch-Ua-Mobile", "?0")
		h.Set("Sec-Ch-Ua-Platform", `"Windows"`)
	}
	h.Set("Sec-Fetch-Dest", "document")
	h.Set("Sec-Fetch-Mode", "navigate")
	h.Set("Sec-Fetch-Site", "none")
	h.Set("Sec-Fetch-User", "?1")

	if rng.Float64() < refererChance {
		h.Set("Referer", referers[rng.Intn(len(referers))])
	}

	return headerSet{userAgent: ua, headers: h}
}
