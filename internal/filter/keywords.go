package filter

import (
	"strings"

	"github.com/gpuradar/gpuradar/internal/ingest"
)

// keywordCategory groups the blacklist terms for one rejection
// category. Categories are checked in order; water-cooling terms run
// before the generic defect list so "водно охлаждане" is not swallowed
// by a broader match.
type keywordCategory struct {
	category ingest.RejectionCategory
	terms    []string
}

var keywordCategories = []keywordCategory{
	{
		category: ingest.CategoryMining,
		terms: []string{
			"майнинг", "mining", "mining rig", "mining farm", "burnout",
			"копана", "копаене", "ферма", "от ферма", "от майнинг", "за майнинг",
		},
	},
	{
		category: ingest.CategoryWaterCooling,
		terms: []string{
			"ekwb", "ek-wb", "ek water", "water block", "waterblock",
			"воден блок", "водно охлаждане", "liquid cooling",
		},
	},
	{
		category: ingest.CategoryCoolingParts,
		terms: []string{
			"вентилатор за", "охладител за", "fan for", "cooler for",
			"heatsink", "радиатор за", "backplate",
		},
	},
	{
		category: ingest.CategoryDefective,
		terms: []string{
			"за части", "счупена", "не работи", "повредена", "дефект",
			"за ремонт", "артефакти", "черен екран", "не дава екран",
			"не стартира", "изгоря", "развален", "нетествана", "проблем",
			"не е тествана", "дефектна", "не функционира",
			"няма сигнал", "без сигнал", "не дава сигнал",
			"broken", "damaged", "faulty", "defective", "not working",
			"for parts", "parts only", "as is", "repair", "artifacts",
			"black screen", "burnt", "dead", "fried", "doa",
			"no signal", "no display",
		},
	},
	{
		category: ingest.CategoryFullComputer,
		terms: []string{
			"цял компютър", "компютър с", "геймърски компютър", "pc с",
			"настолен компютър", "лаптоп", "laptop", "notebook",
			"full pc", "gaming pc", "complete system", "цяла конфигурация",
			"конфигурация с",
		},
	},
}

// Urgency and promotional language. A low price on its own can be a
// genuine bargain; a low price sold with pressure wording usually is not.
var suspiciousTerms = []string{
	"спешно", "срочно", "бързо", "urgent", "quick sale",
}

// MatchKeyword scans title+description against the category lists in
// priority order and returns the first category and term hit.
func MatchKeyword(text string) (ingest.RejectionCategory, string, bool) {
	lower := strings.ToLower(text)
	for _, kc := range keywordCategories {
		for _, term := range kc.terms {
			if strings.Contains(lower, term) {
				return kc.category, term, true
			}
		}
	}
	return "", "", false
}

// MatchFullComputer reports whether the text advertises a whole machine
// rather than a bare card. The pipeline runs this before model
// extraction so bundled systems are not misread as ambiguous listings.
func MatchFullComputer(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, kc := range keywordCategories {
		if kc.category != ingest.CategoryFullComputer {
			continue
		}
		for _, term := range kc.terms {
			if strings.Contains(lower, term) {
				return term, true
			}
		}
	}
	return "", false
}

func hasSuspiciousTerm(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, term := range suspiciousTerms {
		if strings.Contains(lower, term) {
			return term, true
		}
	}
	return "", false
}
