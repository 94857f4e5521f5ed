package domain

// Dataset is the on-disk envelope produced by the enrichment pipeline and
// consumed by the index. The boiler_faults array is authoritative; metadata
// is informational only.
type Dataset struct {
	BoilerFaults []FaultRecord   `json:"boiler_faults"`
	Metadata     DatasetMetadata `json:"metadata,omitempty"`
}

// DatasetMetadata describes how and when a dataset was produced.
type DatasetMetadata struct {
	TotalEntries int    `json:"total_entries"`
	EnrichedAt   string `json:"enriched_at,omitempty"`
	ModelUsed    string `json:"model_used,omitempty"`
	TestMode     bool   `json:"test_mode,omitempty"`
}
