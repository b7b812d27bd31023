package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// contentsManifest is the Contents.json document of an Xcode asset-catalog
// imageset.
type contentsManifest struct {
	Images     []contentsImage     `json:"images"`
	Info       contentsInfo        `json:"info"`
	Properties *contentsProperties `json:"properties,omitempty"`
}

type contentsImage struct {
	Idiom    string `json:"idiom"`
	Filename string `json:"filename"`
	Scale    string `json:"scale,omitempty"`
}

type contentsInfo struct {
	Author  string `json:"author"`
	Version int    `json:"version"`
}

type contentsProperties struct {
	PreservesVectorRepresentation bool `json:"preserves-vector-representation,omitempty"`
}

var xcodeInfo = contentsInfo{Author: "xcode", Version: 1}

// writeContents marshals the manifest into <dir>/Contents.json.
func writeContents(dir string, manifest contentsManifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal Contents.json: %w", err)
	}
	data = append(data, '\n')

	target := filepath.Join(dir, "Contents.json")
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}
