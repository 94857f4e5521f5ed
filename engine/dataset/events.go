package dataset

// SubjectUpdated is the NATS subject announcing that a new dataset has been
// written and consumers should reload.
const SubjectUpdated = "boilerwise.catalog.updated"

// UpdatedEvent is the payload published on SubjectUpdated.
type UpdatedEvent struct {
	Path         string `json:"path"`
	TotalEntries int    `json:"total_entries"`
	EnrichedAt   string `json:"enriched_at,omitempty"`
	RunID        string `json:"run_id,omitempty"`
}
