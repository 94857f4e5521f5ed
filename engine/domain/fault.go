// Package domain defines core domain types, constants, and validation for
// the BoilerWise engine. It acts as the validation gate at pipeline entry points.
package domain

import "strings"

// ResourceType classifies a helpful resource link.
type ResourceType string

const (
	ResourceVideo   ResourceType = "video"
	ResourceArticle ResourceType = "article"
	ResourceForum   ResourceType = "forum"
	ResourceGeneric ResourceType = "link"
)

// ValidResourceTypes is the set of recognised resource link types.
var ValidResourceTypes = map[ResourceType]bool{
	ResourceVideo: true, ResourceArticle: true,
	ResourceForum: true, ResourceGeneric: true,
}

// NormalizeResourceType maps a free-form type string onto a known
// ResourceType, falling back to the generic "link".
func NormalizeResourceType(s string) ResourceType {
	t := ResourceType(strings.ToLower(strings.TrimSpace(s)))
	if ValidResourceTypes[t] {
		return t
	}
	return ResourceGeneric
}

// ResourceLink is an external reference (video/article/forum) attached to a
// fault record.
type ResourceLink struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// FaultRecord is the full diagnostic payload for one (maker, model, code)
// triple. Records are immutable once loaded; the index never mutates them.
type FaultRecord struct {
	Maker              string         `json:"maker"`
	Model              string         `json:"model"`
	ErrorCode          string         `json:"error_code"`
	ErrorType          string         `json:"error_type,omitempty"`
	PossibleCause      string         `json:"possible_cause,omitempty"`
	Troubleshooting    string         `json:"troubleshooting,omitempty"`
	AIOverview         string         `json:"ai_overview,omitempty"`
	HelpfulResources   []ResourceLink `json:"helpful_resources,omitempty"`
	EnrichmentMetadata map[string]any `json:"enrichment_metadata,omitempty"`
}

// Key returns the record's natural key.
func (r FaultRecord) Key() FaultKey {
	return FaultKey{Maker: r.Maker, Model: r.Model, ErrorCode: r.ErrorCode}
}

// EnrichmentFailed reports whether the enrichment metadata carries an error,
// which signals the record's AI-generated fields may be incomplete.
func (r FaultRecord) EnrichmentFailed() bool {
	if r.EnrichmentMetadata == nil {
		return false
	}
	v, ok := r.EnrichmentMetadata["error"]
	if !ok {
		return false
	}
	s, isString := v.(string)
	return !isString || s != ""
}

// FaultKey identifies a record by its (maker, model, code) triple. Used for
// sitemap-style enumeration of the whole catalog.
type FaultKey struct {
	Maker     string `json:"maker"`
	Model     string `json:"model"`
	ErrorCode string `json:"error_code"`
}
