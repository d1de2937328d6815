package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one converted scene in the output manifest.
type ManifestEntry struct {
	Scene    string `json:"scene"`
	Model    string `json:"model,omitempty"`
	Success  bool   `json:"success"`
	Valid    bool   `json:"valid"`
	Warnings int    `json:"warnings"`
	Error    string `json:"error,omitempty"`
}

// WriteManifest writes manifest.json summarizing a batch run.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Scene:    filepath.Base(r.Scene),
			Model:    r.Model,
			Success:  r.Success,
			Valid:    r.Valid,
			Warnings: r.Warnings,
			Error:    r.Error,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
