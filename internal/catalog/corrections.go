package catalog

// corrections maps known-incomplete or non-existent spellings to the real
// canonical model. Applied exactly once during normalization, never chained.
var corrections = map[string]string{
	// AMD RX 7000-series, incomplete names
	"RX 7900": "RX 7900 XT", // XT is the default when unqualified
	"RX 7800": "RX 7800 XT", // only the XT exists
	"RX 7700": "RX 7700 XT", // only the XT exists

	// AMD RX 6000-series, incomplete names
	"RX 6950": "RX 6950 XT", // only the XT exists
	"RX 6900": "RX 6900 XT", // only the XT exists
	"RX 6500": "RX 6500 XT", // only the XT exists

	// AMD RX 5000-series
	"RX 5600": "RX 5600 XT", // only the XT exists

	// Common typos and brand confusions
	"GTX 1060 SUPER": "GTX 1660 SUPER",
	"GTX 1600":       "GTX 1650 SUPER",
	"RTX 2260 SUPER": "RTX 2060 SUPER",
	"RX 1650":        "GTX 1650 SUPER", // AMD prefix on an NVIDIA card

	// Non-existent variants sellers keep inventing.
	// GTX 10-series never had SUPER models (SUPER arrived with the 16-series).
	"GTX 1080 SUPER":     "GTX 1080",
	"GTX 1070 SUPER":     "GTX 1070",
	"GTX 1060 3GB SUPER": "GTX 1060 3GB",
	"GTX 1060 6GB SUPER": "GTX 1060 6GB",
	"GTX 1050 SUPER":     "GTX 1050",

	// RTX 30-series never had SUPER models either.
	"RTX 3090 SUPER":      "RTX 3090",
	"RTX 3090 TI SUPER":   "RTX 3090 TI",
	"RTX 3080 SUPER":      "RTX 3080",
	"RTX 3080 TI SUPER":   "RTX 3080 TI",
	"RTX 3080 12GB SUPER": "RTX 3080 12GB",
	"RTX 3070 SUPER":      "RTX 3070",
	"RTX 3070 TI SUPER":   "RTX 3070 TI",
	"RTX 3060 SUPER":      "RTX 3060",
	"RTX 3060 TI SUPER":   "RTX 3060 TI",
	"RTX 3060 12GB SUPER": "RTX 3060 12GB",
	"RTX 3050 SUPER":      "RTX 3050",
	"RTX 3050 8GB SUPER":  "RTX 3050 8GB",

	// RTX 20-series: only 2060/2070/2080 have SUPER variants.
	"RTX 2080 TI SUPER": "RTX 2080 TI",
	"RTX 2090":          "RTX 2080 TI",
	"RTX 2090 SUPER":    "RTX 2080 TI",
	"RTX 2090 TI":       "RTX 2080 TI",
	"RTX 2050":          "RTX 2060",
	"RTX 2050 SUPER":    "RTX 2060 SUPER",

	// RTX 40-series
	"RTX 4090 SUPER": "RTX 4090",
	"RTX 4090 TI":    "RTX 4090",
	"RTX 4060 SUPER": "RTX 4060",
	// The 16GB 4070 Ti was only ever sold as the SUPER.
	"RTX 4070 TI 16GB": "RTX 4070 TI SUPER 16GB",

	// GTX 16-series: only 1650 and 1660 have SUPER variants.
	"GTX 1630 SUPER": "GTX 1650 SUPER",
	"GTX 1640 SUPER": "GTX 1650 SUPER",

	// AMD never used SUPER; sellers mix up NVIDIA nomenclature.
	"RX 7900 SUPER": "RX 7900 XT",
	"RX 7800 SUPER": "RX 7800 XT",
	"RX 7700 SUPER": "RX 7700 XT",
	"RX 7600 SUPER": "RX 7600",
	"RX 6900 SUPER": "RX 6900 XT",
	"RX 6800 SUPER": "RX 6800 XT",
	"RX 6700 SUPER": "RX 6700 XT",
	"RX 6600 SUPER": "RX 6600 XT",
	"RX 5700 SUPER": "RX 5700 XT",
	"RX 5600 SUPER": "RX 5600 XT",
}
