// Package faultnlp extracts a (maker, model, fault code) triple from
// unstructured query text using the known-maker canon, an alias table, and
// fault-code patterns. No external dependencies.
package faultnlp

import (
	"regexp"
	"sort"
	"strings"

	"github.com/BoilerWiseAI/boilerwise-mvp/engine/domain"
)

// Match is an extracted query triple. Empty fields were not found; the
// caller treats them as neutral filter terms.
type Match struct {
	Maker      string
	Model      string
	Code       string
	Confidence float64
}

// makerAliases maps abbreviations/spellings to canonical maker names.
var makerAliases = map[string]string{
	"vaillant":        "Vaillant",
	"worcester":       "Worcester Bosch",
	"worcester bosch": "Worcester Bosch",
	"bosch":           "Worcester Bosch",
	"baxi":            "Baxi",
	"ideal":           "Ideal",
	"atag":            "ATAG",
	"viessmann":       "Viessmann",
	"glow-worm":       "Glow-worm",
	"glow worm":       "Glow-worm",
	"glowworm":        "Glow-worm",
	"alpha":           "Alpha",
	"ferroli":         "Ferroli",
	"potterton":       "Potterton",
	"vokera":          "Vokera",
	"vokèra":          "Vokera",
	"intergas":        "Intergas",
	"biasi":           "Biasi",
	"ravenheat":       "Ravenheat",
	"grant":           "Grant",
	"ariston":         "Ariston",
	"navien":          "Navien",
	"keston":          "Keston",
	"saunier duval":   "Saunier Duval",
	"saunier":         "Saunier Duval",
}

// codePattern matches fault codes like F28, F.28, EA229, E119, L2, 10.
// Letter-prefixed forms are preferred; bare numbers are a fallback.
var (
	letterCodePattern = regexp.MustCompile(`(?i)\b([a-z]{1,2})[ .\-]?(\d{1,3})(\.\d{1,2})?\b`)
	bareCodePattern   = regexp.MustCompile(`\b(\d{1,3})\b`)
)

// sortedAliases returns alias keys longest-first so "worcester bosch" wins
// over "worcester" and "bosch".
func sortedAliases() []string {
	keys := make([]string, 0, len(makerAliases))
	for k := range makerAliases {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })
	return keys
}

var aliasOrder = sortedAliases()

// Extract pulls a maker, model, and fault code out of free text. Each field
// is best-effort; absence is not an error.
func Extract(text string) Match {
	lower := strings.ToLower(text)
	var m Match

	remainder := lower
	for _, alias := range aliasOrder {
		if idx := indexWord(remainder, alias); idx >= 0 {
			m.Maker = makerAliases[alias]
			remainder = remainder[:idx] + remainder[idx+len(alias):]
			break
		}
	}

	if m.Maker != "" {
		for _, model := range domain.KnownMakers[m.Maker] {
			ml := strings.ToLower(model)
			if idx := strings.Index(remainder, ml); idx >= 0 {
				m.Model = model
				remainder = remainder[:idx] + remainder[idx+len(ml):]
				break
			}
		}
	}

	if loc := letterCodePattern.FindStringSubmatchIndex(remainder); loc != nil {
		m.Code = normalizeCode(remainder[loc[0]:loc[1]])
	} else if loc := bareCodePattern.FindStringIndex(remainder); loc != nil {
		m.Code = remainder[loc[0]:loc[1]]
	}

	m.Confidence = score(m)
	return m
}

// indexWord finds needle in haystack at a word boundary.
func indexWord(haystack, needle string) int {
	start := 0
	for {
		idx := strings.Index(haystack[start:], needle)
		if idx < 0 {
			return -1
		}
		idx += start
		end := idx + len(needle)
		beforeOK := idx == 0 || !isWordByte(haystack[idx-1])
		afterOK := end == len(haystack) || !isWordByte(haystack[end])
		if beforeOK && afterOK {
			return idx
		}
		start = idx + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// normalizeCode uppercases the letter prefix and strips separator noise
// between prefix and digits ("f 28" -> "F28"). Codes stay opaque otherwise;
// no numeric normalization.
func normalizeCode(raw string) string {
	code := strings.ToUpper(raw)
	code = strings.NewReplacer(" ", "", "-", "").Replace(code)
	return code
}

func score(m Match) float64 {
	tenths := 0
	if m.Maker != "" {
		tenths += 4
	}
	if m.Model != "" {
		tenths += 2
	}
	if m.Code != "" {
		tenths += 4
	}
	return float64(tenths) / 10
}
