package domain

import "strings"

// ValidateRecord checks that a record carries its natural key. Lookup paths
// never call this; malformed records are still indexed on their available
// fields. Only the enrichment pipeline gates on it.
func ValidateRecord(r FaultRecord) error {
	if strings.TrimSpace(r.Maker) == "" {
		return NewValidationError("maker", r.Maker, ErrMissingMaker)
	}
	if strings.TrimSpace(r.Model) == "" {
		return NewValidationError("model", r.Model, ErrMissingModel)
	}
	if strings.TrimSpace(r.ErrorCode) == "" {
		return NewValidationError("error_code", r.ErrorCode, ErrMissingErrorCode)
	}
	return nil
}

// ValidateResourceLink checks a link has a plausible URL.
func ValidateResourceLink(l ResourceLink) error {
	u := strings.TrimSpace(l.URL)
	if u == "" || (!strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://")) {
		return NewValidationError("url", l.URL, ErrBadResourceURL)
	}
	return nil
}

// NormalizeRecord trims key fields and normalizes resource link types.
// Returns a copy; the input is never mutated.
func NormalizeRecord(r FaultRecord) FaultRecord {
	out := r
	out.Maker = strings.TrimSpace(r.Maker)
	out.Model = strings.TrimSpace(r.Model)
	out.ErrorCode = strings.TrimSpace(r.ErrorCode)
	if len(r.HelpfulResources) > 0 {
		links := make([]ResourceLink, 0, len(r.HelpfulResources))
		for _, l := range r.HelpfulResources {
			l.Type = string(NormalizeResourceType(l.Type))
			links = append(links, l)
		}
		out.HelpfulResources = links
	}
	return out
}
