package extract

import (
	"regexp"
	"strconv"
)

// Memory sizes that shipped on discrete cards. Anything else in the
// text (system RAM, SSD capacity, warranty years) is noise.
var validVRAMSizes = map[int]bool{
	2: true, 3: true, 4: true, 6: true, 8: true, 10: true, 11: true,
	12: true, 16: true, 20: true, 24: true, 32: true, 48: true,
}

var (
	// Bulgarian listings write warranty as "2г гаранция" or
	// "гаранция 2г", which collides with the bare "Г" VRAM form.
	warrantyRe = regexp.MustCompile(`(?i)(\d{1,2})\s?г\.?\s*(?:гаранция|години|год)|(?:гаранция|години)\s*(\d{1,2})\s?г`)

	// Ordered by specificity: full unit first, bare letter last.
	vramPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(\d{1,2})\s?GB\b`),
		regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])(\d{1,2})\s?ГБ(?:$|[^\p{L}\p{N}])`),
		regexp.MustCompile(`(?i)\b(\d{1,2})\s?G\b`),
		regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])(\d{1,2})\s?Г(?:$|[^\p{L}\p{N}])`),
	}
)

func warrantyNumbers(text string) map[string]bool {
	out := make(map[string]bool)
	for _, m := range warrantyRe.FindAllStringSubmatch(text, -1) {
		for _, g := range m[1:] {
			if g != "" {
				out[g] = true
			}
		}
	}
	return out
}

// VRAMFromText finds a memory size mentioned in free text. Returns 0
// when nothing plausible is present. Numbers that belong to a warranty
// phrase or fall outside the known card sizes are ignored.
func VRAMFromText(text string) int {
	warranty := warrantyNumbers(text)
	for _, re := range vramPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			digits := m[1]
			if warranty[digits] {
				continue
			}
			n, err := strconv.Atoi(digits)
			if err != nil {
				continue
			}
			if validVRAMSizes[n] {
				return n
			}
		}
	}
	return 0
}
