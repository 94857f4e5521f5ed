// Package dataset loads the enriched fault dataset and owns the lifecycle
// of the index built from it: load once at startup, rebuild-and-swap on
// reload, never expose a partially built index.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/BoilerWiseAI/boilerwise-mvp/engine/domain"
)

// Parse decodes a dataset document. Both the {"boiler_faults": [...]}
// envelope and a bare top-level record array are accepted.
func Parse(data []byte) (domain.Dataset, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return domain.Dataset{}, fmt.Errorf("%w: empty document", domain.ErrSourceUnavailable)
	}

	if trimmed[0] == '[' {
		var records []domain.FaultRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return domain.Dataset{}, fmt.Errorf("%w: parse record array: %v", domain.ErrSourceUnavailable, err)
		}
		return domain.Dataset{BoilerFaults: records}, nil
	}

	var ds domain.Dataset
	if err := json.Unmarshal(trimmed, &ds); err != nil {
		return domain.Dataset{}, fmt.Errorf("%w: parse envelope: %v", domain.ErrSourceUnavailable, err)
	}
	return ds, nil
}

// Load reads and parses a dataset file.
func Load(path string) (domain.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("%w: read %s: %v", domain.ErrSourceUnavailable, path, err)
	}
	return Parse(data)
}

// Write marshals a dataset to path with indentation, stamping
// metadata.total_entries from the record count.
func Write(path string, ds domain.Dataset) error {
	ds.Metadata.TotalEntries = len(ds.BoilerFaults)
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
