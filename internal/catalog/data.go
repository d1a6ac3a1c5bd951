package catalog

// Reference data for desktop gaming GPUs sold on the second-hand market.
// Keys are canonical model names; a key may carry a VRAM suffix when the
// variant ships with a different memory size than the base model.

// vramSpecs maps canonical models to their VRAM size in GB. Models with
// several memory variants list each variant as its own key; the bare base
// key holds the most common size.
var vramSpecs = map[string]int{
	// NVIDIA GeForce RTX 50-series (Blackwell)
	"RTX 5090":         32,
	"RTX 5080":         16,
	"RTX 5070 TI":      16,
	"RTX 5070":         12,
	"RTX 5060 TI 16GB": 16,
	"RTX 5060 TI 12GB": 12,
	"RTX 5060 TI 8GB":  8,
	"RTX 5060 TI":      8,
	"RTX 5060":         8,

	// NVIDIA GeForce RTX 40-series (Ada Lovelace)
	"RTX 4090":          24,
	"RTX 4080 SUPER":    16,
	"RTX 4080":          16,
	"RTX 4070 TI SUPER": 16,
	"RTX 4070 TI":       12,
	"RTX 4070 SUPER":    12,
	"RTX 4070":          12,
	"RTX 4060 TI 16GB":  16,
	"RTX 4060 TI 8GB":   8,
	"RTX 4060 TI":       8,
	"RTX 4060":          8,

	// NVIDIA GeForce RTX 30-series (Ampere)
	"RTX 3090 TI":      24,
	"RTX 3090":         24,
	"RTX 3080 TI 20GB": 20,
	"RTX 3080 TI 12GB": 12,
	"RTX 3080 TI":      12,
	"RTX 3080 12GB":    12,
	"RTX 3080 10GB":    10,
	"RTX 3080":         10,
	"RTX 3070 TI":      8,
	"RTX 3070":         8,
	"RTX 3060 TI":      8,
	"RTX 3060 12GB":    12,
	"RTX 3060 8GB":     8,
	"RTX 3060":         12,
	"RTX 3050 8GB":     8,
	"RTX 3050 6GB":     6,
	"RTX 3050":         8,

	// NVIDIA GeForce RTX 20-series (Turing)
	"RTX 2080 TI":    11,
	"RTX 2080 SUPER": 8,
	"RTX 2080":       8,
	"RTX 2070 SUPER": 8,
	"RTX 2070":       8,
	"RTX 2060 SUPER": 8,
	"RTX 2060 12GB":  12,
	"RTX 2060 6GB":   6,
	"RTX 2060":       6,

	// NVIDIA GeForce GTX 16-series (Turing)
	"GTX 1660 SUPER": 6,
	"GTX 1660 TI":    6,
	"GTX 1660":       6,
	"GTX 1650 SUPER": 4,
	"GTX 1650":       4,
	"GTX 1630":       4,

	// NVIDIA GeForce GTX 10-series (Pascal)
	"GTX 1080 TI":  11,
	"GTX 1080":     8,
	"GTX 1070 TI":  8,
	"GTX 1070":     8,
	"GTX 1060 6GB": 6,
	"GTX 1060 3GB": 3,
	"GTX 1060":     6,
	"GTX 1050 TI":  4,
	"GTX 1050":     2,

	// NVIDIA GTX 900-series (Maxwell)
	"GTX 980 TI": 6,
	"GTX 980":    4,
	"GTX 970":    4,
	"GTX 960":    2,
	"GTX 950":    2,

	// AMD Radeon RX 9000-series (RDNA 4)
	"RX 9070 XT":      16,
	"RX 9070 GRE":     12,
	"RX 9070":         12,
	"RX 9060 XT 16GB": 16,
	"RX 9060 XT":      16,
	"RX 9060":         8,

	// AMD Radeon RX 7000-series (RDNA 3)
	"RX 7900 XTX": 24,
	"RX 7900 XT":  20,
	"RX 7900 GRE": 16,
	"RX 7800 XT":  16,
	"RX 7700 XT":  12,
	"RX 7650 GRE": 8,
	"RX 7600 XT":  16,
	"RX 7600":     8,
	"RX 7400":     4,

	// AMD Radeon RX 6000-series (RDNA 2)
	"RX 6950 XT":       16,
	"RX 6900 XT":       16,
	"RX 6800 XT":       16,
	"RX 6800":          16,
	"RX 6750 XT":       12,
	"RX 6750 GRE 12GB": 12,
	"RX 6750 GRE 10GB": 10,
	"RX 6700 XT":       12,
	"RX 6700":          10,
	"RX 6650 XT":       8,
	"RX 6600 XT":       8,
	"RX 6600":          8,
	"RX 6500 XT":       4,
	"RX 6400":          4,

	// AMD Radeon RX 5000-series (RDNA 1)
	"RX 5700 XT":      8,
	"RX 5700":         8,
	"RX 5600 XT":      6,
	"RX 5500 XT 8GB":  8,
	"RX 5500 XT 4GB":  4,
	"RX 5500 XT":      8,
	"RX 5500":         4,

	// AMD Radeon RX 500-series (Polaris)
	"RX 590":     8,
	"RX 580 8GB": 8,
	"RX 580 4GB": 4,
	"RX 580":     8,
	"RX 570 8GB": 8,
	"RX 570 4GB": 4,
	"RX 570":     8,
	"RX 560":     4,
	"RX 550":     2,

	// AMD Radeon RX 400-series (Polaris)
	"RX 490":     8,
	"RX 480 8GB": 8,
	"RX 480 4GB": 4,
	"RX 480":     8,
	"RX 470 8GB": 8,
	"RX 470 4GB": 4,
	"RX 470":     4,
	"RX 460 4GB": 4,
	"RX 460 2GB": 2,
	"RX 460":     4,

	// AMD Radeon Vega
	"RX VEGA 64": 8,
	"RX VEGA 56": 8,

	// Intel Arc (Alchemist and Battlemage)
	"ARC B580":      12,
	"ARC B570":      10,
	"ARC A770 16GB": 16,
	"ARC A770 8GB":  8,
	"ARC A770":      16,
	"ARC A750":      8,
	"ARC A580":      8,
	"ARC A380":      6,
	"ARC A350":      4,
	"ARC A310":      4,
}

// benchmarkFPS holds measured average FPS at 1080p ultra settings for the
// models with published benchmark runs. Alternative reference list for
// validation and value ranking; not every catalogued model has a run.
var benchmarkFPS = map[string]float64{
	// NVIDIA RTX 50-series
	"RTX 5090":         238,
	"RTX 5080":         173,
	"RTX 5070 TI":      157,
	"RTX 5070":         133,
	"RTX 5060 TI 16GB": 113,
	"RTX 5060 TI 12GB": 110,
	"RTX 5060 TI 8GB":  101,
	"RTX 5060":         95,

	// NVIDIA RTX 40-series
	"RTX 4090":          180,
	"RTX 4080 SUPER":    155,
	"RTX 4080":          153,
	"RTX 4070 TI SUPER": 140,
	"RTX 4070 TI":       129,
	"RTX 4070 SUPER":    124,
	"RTX 4070":          115,
	"RTX 4060 TI 16GB":  102,
	"RTX 4060 TI 8GB":   91,
	"RTX 4060":          81,

	// NVIDIA RTX 30-series
	"RTX 3090 TI":      146,
	"RTX 3090":         139,
	"RTX 3080 TI 20GB": 131,
	"RTX 3080 TI 12GB": 128,
	"RTX 3080 12GB":    125,
	"RTX 3080 10GB":    116,
	"RTX 3070 TI":      101,
	"RTX 3070":         94,
	"RTX 3060 TI":      88,
	"RTX 3060 12GB":    77,
	"RTX 3060 8GB":     68,
	"RTX 3050 8GB":     65,
	"RTX 3050 6GB":     50,

	// NVIDIA RTX 20-series
	"RTX 2080 TI":    106,
	"RTX 2080 SUPER": 88,
	"RTX 2080":       86,
	"RTX 2070 SUPER": 82,
	"RTX 2070":       79,
	"RTX 2060 SUPER": 77,
	"RTX 2060 12GB":  79,
	"RTX 2060 6GB":   66,

	// NVIDIA GTX 16-series
	"GTX 1660 TI":    60,
	"GTX 1660 SUPER": 59,
	"GTX 1660":       53,
	"GTX 1650 SUPER": 43,
	"GTX 1650":       35,
	"GTX 1630":       23,

	// NVIDIA GTX 10-series
	"GTX 1080 TI":  87,
	"GTX 1080":     70,
	"GTX 1070 TI":  65,
	"GTX 1070":     62,
	"GTX 1060 6GB": 40,
	"GTX 1060 3GB": 20,
	"GTX 1050 TI":  26,
	"GTX 1050":     10,

	// NVIDIA GTX 900-series
	"GTX 980 TI": 58,
	"GTX 980":    42,
	"GTX 970":    38,
	"GTX 960":    14,
	"GTX 950":    10,

	// AMD RX 9000-series
	"RX 9070 XT":      152,
	"RX 9070":         146,
	"RX 9070 GRE":     124,
	"RX 9060 XT 16GB": 110,
	"RX 9060":         93,

	// AMD RX 7000-series
	"RX 7900 XTX": 160,
	"RX 7900 XT":  144,
	"RX 7900 GRE": 128,
	"RX 7800 XT":  127,
	"RX 7700 XT":  108,
	"RX 7650 GRE": 80,
	"RX 7600 XT":  92,
	"RX 7600":     81,

	// AMD RX 6000-series
	"RX 6950 XT":       127,
	"RX 6900 XT":       124,
	"RX 6800 XT":       120,
	"RX 6800":          113,
	"RX 6750 XT":       99,
	"RX 6750 GRE 12GB": 96,
	"RX 6750 GRE 10GB": 86,
	"RX 6700 XT":       96,
	"RX 6700":          86,
	"RX 6650 XT":       77,
	"RX 6600 XT":       76,
	"RX 6600":          69,
	"RX 6500 XT":       43,
	"RX 6400":          35,

	// AMD RX 5000-series
	"RX 5700 XT":     79,
	"RX 5700":        76,
	"RX 5600 XT":     65,
	"RX 5500 XT 8GB": 48,
	"RX 5500 XT 4GB": 45,
	"RX 5500":        41,

	// AMD RX 500-series
	"RX 590":     56,
	"RX 580 8GB": 54,
	"RX 580 4GB": 48,
	"RX 570 8GB": 42,
	"RX 570 4GB": 37,
	"RX 560":     21,
	"RX 550":     10,

	// AMD RX 400-series
	"RX 480 8GB": 52,
	"RX 480 4GB": 46,
	"RX 470 8GB": 46,
	"RX 470 4GB": 42,
	"RX 460 4GB": 38,
	"RX 460 2GB": 34,

	// AMD Vega
	"RX VEGA 64": 66,
	"RX VEGA 56": 60,

	// Intel Arc
	"ARC B580":      84,
	"ARC B570":      74,
	"ARC A770 16GB": 72,
	"ARC A770 8GB":  70,
	"ARC A750":      64,
	"ARC A580":      52,
	"ARC A380":      28,
	"ARC A310":      16,
}
