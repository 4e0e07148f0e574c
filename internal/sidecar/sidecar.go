// Package sidecar reads and writes the metadata side files stored next to
// asset files. A sidecar shares the asset's base name with a fixed
// .meta.json suffix replacing the asset extension. Absence of a sidecar is
// never an error.
package sidecar

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Suffix replaces the asset extension to form the sidecar name.
const Suffix = ".meta.json"

// Metadata is the sidecar payload. FrameRange and FPS describe the saved
// scene; Extra carries free-form string pairs the pipeline wants preserved.
type Metadata struct {
	File        string            `json:"file"`
	SavedAt     time.Time         `json:"saved_at"`
	Software    string            `json:"software,omitempty"`
	User        string            `json:"user,omitempty"`
	Host        string            `json:"host,omitempty"`
	FrameRange  string            `json:"frame_range,omitempty"`
	FPS         float64           `json:"fps,omitempty"`
	OperationID string            `json:"operation_id,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// PathFor returns the sidecar path for an asset path. The asset's last
// extension is dropped before the suffix is appended, so
// SH0010_comp_v001.ma maps to SH0010_comp_v001.meta.json.
func PathFor(assetPath string) string {
	return Stem(assetPath) + Suffix
}

// Stem returns the path without its final extension.
func Stem(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// IsSidecar reports whether a file name is a sidecar name.
func IsSidecar(name string) bool {
	return strings.HasSuffix(name, Suffix)
}

// Read loads the sidecar for an asset. A missing sidecar returns (nil, nil).
func Read(assetPath string) (*Metadata, error) {
	data, err := os.ReadFile(PathFor(assetPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sidecar for %s: %w", assetPath, err)
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode sidecar for %s: %w", assetPath, err)
	}
	return &meta, nil
}

// Write stores the sidecar for an asset, replacing any existing one.
func Write(assetPath string, meta Metadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode sidecar for %s: %w", assetPath, err)
	}
	if err := os.WriteFile(PathFor(assetPath), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write sidecar for %s: %w", assetPath, err)
	}
	return nil
}
