package enrich

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BoilerWiseAI/boilerwise-mvp/engine/domain"
)

// overviewPayload is the expected shape of an overview completion.
type overviewPayload struct {
	AIOverview      string `json:"ai_overview"`
	Troubleshooting string `json:"troubleshooting"`
}

// resourcesPayload is the expected shape of a resources completion.
type resourcesPayload struct {
	HelpfulResources []domain.ResourceLink `json:"helpful_resources"`
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag, so fenced completions still decode as JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 3 {
		return s
	}
	body := lines[1 : len(lines)-1]
	if strings.HasPrefix(strings.TrimSpace(body[0]), "json") && len(body) > 1 {
		body = body[1:]
	}
	return strings.TrimSpace(strings.Join(body, "\n"))
}

func parseOverview(raw string) (overviewPayload, error) {
	raw = stripFences(raw)
	if raw == "" {
		return overviewPayload{}, fmt.Errorf("empty overview completion")
	}
	var p overviewPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return overviewPayload{}, fmt.Errorf("decode overview: %w", err)
	}
	return p, nil
}

// parseResources is tolerant: a malformed or empty completion yields an
// empty list rather than an error, matching how resources are best-effort.
func parseResources(raw string) resourcesPayload {
	raw = stripFences(raw)
	if raw == "" {
		return resourcesPayload{}
	}
	var p resourcesPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return resourcesPayload{}
	}
	out := p.HelpfulResources[:0]
	for _, link := range p.HelpfulResources {
		if domain.ValidateResourceLink(link) != nil {
			continue
		}
		link.Type = string(domain.NormalizeResourceType(link.Type))
		out = append(out, link)
	}
	p.HelpfulResources = out
	return p
}
