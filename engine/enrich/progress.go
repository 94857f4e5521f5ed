package enrich

import (
	"encoding/json"
	"os"
	"strings"
)

// Progress records which record indices have already been enriched so an
// interrupted run can resume where it stopped.
type Progress struct {
	path string
	done map[int]bool
}

// ProgressPath derives the default progress file next to an output file.
func ProgressPath(outputPath string) string {
	if strings.HasSuffix(outputPath, ".json") {
		return strings.TrimSuffix(outputPath, ".json") + "_progress.json"
	}
	return outputPath + "_progress.json"
}

type progressFile struct {
	ProcessedIndices []int `json:"processed_indices"`
}

// LoadProgress reads a progress file if one exists; a missing file means a
// fresh run.
func LoadProgress(path string) (*Progress, error) {
	p := &Progress{path: path, done: map[int]bool{}}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	var pf progressFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, err
	}
	for _, i := range pf.ProcessedIndices {
		p.done[i] = true
	}
	return p, nil
}

// Done reports whether index i was already enriched.
func (p *Progress) Done(i int) bool { return p.done[i] }

// Count returns how many indices are recorded.
func (p *Progress) Count() int { return len(p.done) }

// Mark records index i and persists the file.
func (p *Progress) Mark(i int) error {
	p.done[i] = true
	pf := progressFile{ProcessedIndices: make([]int, 0, len(p.done))}
	for idx := range p.done {
		pf.ProcessedIndices = append(pf.ProcessedIndices, idx)
	}
	data, err := json.Marshal(pf)
	if err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}

// Remove deletes the progress file after a completed run.
func (p *Progress) Remove() error {
	err := os.Remove(p.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
