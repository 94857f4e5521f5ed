// Package index builds and queries the three-level fault lookup structure
// (maker -> model -> error code) that backs every catalog query. An Index is
// immutable after Build; rebuilding from a fresh dataset and swapping the
// pointer is the only mutation path.
package index

import (
	"sort"
	"strings"

	"github.com/BoilerWiseAI/boilerwise-mvp/engine/domain"
	"github.com/BoilerWiseAI/boilerwise-mvp/pkg/fn"
)

// CodeEntry pairs an error code with its short description for dropdown
// population. Description comes from the record's possible_cause.
type CodeEntry struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Index is the built lookup structure. All matching is case-insensitive;
// enumerations are deduplicated and sorted with case-insensitive collation,
// keeping the first-seen spelling. Duplicate (maker, model, code) triples
// resolve to the first record in source order.
type Index struct {
	records []domain.FaultRecord

	// byTriple maps folded maker -> folded model -> folded code to the
	// position of the first matching record in records.
	byTriple map[string]map[string]map[string]int

	makers        []string
	allModels     []string
	modelsByMaker map[string][]string
	codesByPair   map[string][]CodeEntry
}

func fold(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func pairKey(maker, model string) string { return fold(maker) + "\x00" + fold(model) }

// sortFolded sorts names with case-insensitive collation, in place.
func sortFolded(names []string) {
	sort.Slice(names, func(i, j int) bool {
		a, b := fold(names[i]), fold(names[j])
		if a == b {
			return names[i] < names[j]
		}
		return a < b
	})
}

// Build constructs an Index from a flat record list in O(n). It never fails:
// records with missing fields are indexed on whatever fields they have,
// absent values behaving as empty strings.
func Build(records []domain.FaultRecord) *Index {
	idx := &Index{
		records:       append([]domain.FaultRecord(nil), records...),
		byTriple:      make(map[string]map[string]map[string]int),
		modelsByMaker: make(map[string][]string),
		codesByPair:   make(map[string][]CodeEntry),
	}

	makerSpelling := make(map[string]string)
	modelSpelling := make(map[string]map[string]string)
	allModelSpelling := make(map[string]string)
	codeSeen := make(map[string]map[string]bool)

	for i, r := range idx.records {
		mk, md, cd := fold(r.Maker), fold(r.Model), fold(r.ErrorCode)

		if _, ok := makerSpelling[mk]; !ok {
			makerSpelling[mk] = r.Maker
		}
		if _, ok := allModelSpelling[md]; !ok {
			allModelSpelling[md] = r.Model
		}
		if modelSpelling[mk] == nil {
			modelSpelling[mk] = make(map[string]string)
		}
		if _, ok := modelSpelling[mk][md]; !ok {
			modelSpelling[mk][md] = r.Model
		}

		models := idx.byTriple[mk]
		if models == nil {
			models = make(map[string]map[string]int)
			idx.byTriple[mk] = models
		}
		codes := models[md]
		if codes == nil {
			codes = make(map[string]int)
			models[md] = codes
		}
		// First record in source order wins for duplicate triples.
		if _, ok := codes[cd]; !ok {
			codes[cd] = i
		}

		pk := pairKey(r.Maker, r.Model)
		if codeSeen[pk] == nil {
			codeSeen[pk] = make(map[string]bool)
		}
		if !codeSeen[pk][cd] {
			codeSeen[pk][cd] = true
			idx.codesByPair[pk] = append(idx.codesByPair[pk], CodeEntry{
				Code:        r.ErrorCode,
				Description: r.PossibleCause,
			})
		}
	}

	for mk, spellings := range modelSpelling {
		names := make([]string, 0, len(spellings))
		for _, s := range spellings {
			names = append(names, s)
		}
		sortFolded(names)
		idx.modelsByMaker[mk] = names
	}
	for _, s := range makerSpelling {
		idx.makers = append(idx.makers, s)
	}
	sortFolded(idx.makers)
	for _, s := range allModelSpelling {
		idx.allModels = append(idx.allModels, s)
	}
	sortFolded(idx.allModels)
	for pk := range idx.codesByPair {
		entries := idx.codesByPair[pk]
		sort.Slice(entries, func(i, j int) bool {
			a, b := fold(entries[i].Code), fold(entries[j].Code)
			if a == b {
				return entries[i].Code < entries[j].Code
			}
			return a < b
		})
	}

	return idx
}

// Len returns the number of indexed records, duplicates included.
func (x *Index) Len() int { return len(x.records) }

// Makers lists all distinct makers, first-seen spelling, sorted.
func (x *Index) Makers() []string {
	return append([]string(nil), x.makers...)
}

// Models lists distinct models under the given maker. An empty maker means
// "no filter selected" and returns models across all makers; an unknown
// maker returns an empty list, never an error.
func (x *Index) Models(maker string) []string {
	if strings.TrimSpace(maker) == "" {
		return append([]string(nil), x.allModels...)
	}
	return append([]string(nil), x.modelsByMaker[fold(maker)]...)
}

// FaultCodes lists the deduplicated, sorted error codes for a (maker, model)
// pair, each with the short description of its first record. Empty when the
// pair has no records.
func (x *Index) FaultCodes(maker, model string) []CodeEntry {
	return append([]CodeEntry(nil), x.codesByPair[pairKey(maker, model)]...)
}

// Fault returns the record for an exact (maker, model, code) triple, or
// domain.ErrFaultNotFound. This is the only query whose failure is a
// distinct outcome rather than a silent empty result.
func (x *Index) Fault(maker, model, code string) (domain.FaultRecord, error) {
	models := x.byTriple[fold(maker)]
	if models == nil {
		return domain.FaultRecord{}, domain.ErrFaultNotFound
	}
	codes := models[fold(model)]
	if codes == nil {
		return domain.FaultRecord{}, domain.ErrFaultNotFound
	}
	pos, ok := codes[fold(code)]
	if !ok {
		return domain.FaultRecord{}, domain.ErrFaultNotFound
	}
	return x.records[pos], nil
}

// Filter returns records matching all non-empty query terms, in source
// order. Maker and model match by case-insensitive equality (they arrive
// from closed dropdowns); code matches by case-insensitive substring (it is
// typed incrementally). An empty term is neutral for its dimension.
func (x *Index) Filter(maker, model, codeQuery string) []domain.FaultRecord {
	mk, md, cq := fold(maker), fold(model), fold(codeQuery)
	return fn.Filter(x.records, func(r domain.FaultRecord) bool {
		if mk != "" && fold(r.Maker) != mk {
			return false
		}
		if md != "" && fold(r.Model) != md {
			return false
		}
		if cq != "" && !strings.Contains(fold(r.ErrorCode), cq) {
			return false
		}
		return true
	})
}

// All returns every record in source order.
func (x *Index) All() []domain.FaultRecord {
	return append([]domain.FaultRecord(nil), x.records...)
}

// Keys returns the (maker, model, code) triple of every record in source
// order, for sitemap-style enumeration.
func (x *Index) Keys() []domain.FaultKey {
	return fn.Map(x.records, domain.FaultRecord.Key)
}
