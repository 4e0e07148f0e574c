// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/crisslavik/nox-file-manager/internal/config"
)

// NewConfig returns a validated config rooted in temp directories.
func NewConfig(t *testing.T, mutate ...func(*config.Config)) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.ProjectRoot = t.TempDir()
	state := t.TempDir()
	cfg.Paths.LogDir = filepath.Join(state, "logs")
	cfg.Paths.HistoryDB = filepath.Join(state, "history.db")
	for _, fn := range mutate {
		fn(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WriteFile creates a file with parents, returning its path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// ScopeDir builds (and creates) the work directory for a shot task.
func ScopeDir(t *testing.T, cfg *config.Config, sequence, shot, task, dccName string) string {
	t.Helper()
	dir := filepath.Join(cfg.Paths.ProjectRoot, "shots", sequence, shot, task, "work", dccName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create scope dir: %v", err)
	}
	return dir
}
