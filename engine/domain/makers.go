package domain

// KnownMakers maps boiler manufacturer names to their common model lines.
// The dataset is the source of truth for lookups; this canon backs free-text
// query extraction and enrichment sanity warnings only.
var KnownMakers = map[string][]string{
	"Vaillant":        {"ecoTEC Plus", "ecoTEC Pro", "ecoFIT Pure", "ecoTEC Exclusive", "aroTHERM", "Turbomax"},
	"Worcester Bosch": {"Greenstar 25i", "Greenstar 30i", "Greenstar 4000", "Greenstar 8000", "Greenstar CDi Classic", "Greenstar Danesmoor"},
	"Baxi":            {"800 Combi", "600 Combi", "400 Combi", "Duo-tec", "EcoBlue Advance", "Platinum"},
	"Ideal":           {"Logic Combi", "Logic Max", "Logic+ Combi", "Vogue Max", "Mexico HE", "Evomax"},
	"ATAG":            {"iC Economiser", "iC 24", "iC 40", "iR 15", "iS 15", "ATAG Boiler"},
	"Viessmann":       {"Vitodens 050-W", "Vitodens 100-W", "Vitodens 111-W", "Vitodens 200-W", "Vitodens 222-F"},
	"Glow-worm":       {"Energy Combi", "Betacom", "Flexicom", "Ultimate", "Compact"},
	"Alpha":           {"E-Tec Plus", "E-Tec", "Evoke", "InTec", "CD Compact"},
	"Ferroli":         {"Bluehelix Tech RRT", "Modena HE", "Optimax HE", "Domicompact"},
	"Potterton":       {"Promax Combi", "Titanium", "Gold Combi HE", "Performa"},
	"Vokera":          {"Easi-Heat Plus", "Compact A", "Mynute VHE", "Unica"},
	"Main":            {"Eco Compact", "Eco Elite"},
	"Intergas":        {"Xclusive", "Eco RF", "HRE", "Xtreme"},
	"Biasi":           {"Riva Plus", "Riva Advance", "Inovia"},
	"Ravenheat":       {"CSi 85", "HE 25S", "WH 90"},
	"Grant":           {"Vortex Pro", "Vortex Eco", "VortexBlue"},
	"Ariston":         {"Clas ONE", "E-Combi ONE", "Cares X"},
	"Navien":          {"NCB 500", "NCB 700", "LCB 700"},
	"Keston":          {"C40", "C36", "Heat 45"},
	"Saunier Duval":   {"ThemaFast", "ThemaClassic", "ThemaPlus"},
}
