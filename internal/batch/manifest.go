package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestEntry represents one job in the output manifest.
type ManifestEntry struct {
	Index   int    `json:"index"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	AAType  string `json:"aa_type"`
	AALevel int    `json:"aa_level"`
	Pattern string `json:"pattern"`
	Samples int    `json:"samples,omitempty"`
	Image   string `json:"image,omitempty"`
	Preview string `json:"preview,omitempty"`
	Error   string `json:"error,omitempty"`
	Elapsed int64  `json:"elapsed_ms,omitempty"`
}

// WriteManifest writes manifest.json, creating its directory. Image paths are
// made relative to the manifest's directory when possible.
func WriteManifest(path string, results []Result) error {
	base := filepath.Dir(path)
	if err := os.MkdirAll(base, 0755); err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		size := r.Config.Size()
		entries[i] = ManifestEntry{
			Index:   r.Index,
			Width:   size.X,
			Height:  size.Y,
			AAType:  r.Config.AAType,
			AALevel: r.Config.Level(),
			Pattern: r.Config.Pattern,
			Samples: r.Render.Samples,
			Image:   relTo(base, r.Render.Path),
			Preview: relTo(base, r.Render.PreviewPath),
			Error:   r.Error,
			Elapsed: r.Render.Elapsed.Milliseconds(),
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	return nil
}

func relTo(base, path string) string {
	if path == "" {
		return ""
	}
	if rel, err := filepath.Rel(base, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
