package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crisslavik/nox-file-manager/internal/logging"
)

func TestNewConsoleWritesComponentPrefix(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "nox.log")

	logger, err := logging.New(logging.Options{
		Level:       "info",
		Format:      "console",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	scoped := logging.NewComponentLogger(logger, "catalog")
	scoped.Info("scan complete",
		logging.Int("entries", 4),
		logging.String(logging.FieldEntity, "SH0010"),
	)

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "catalog: scan complete") {
		t.Fatalf("missing component prefix: %q", line)
	}
	if !strings.Contains(line, "entries=4") {
		t.Fatalf("missing attr: %q", line)
	}
	if !strings.Contains(line, "entity=SH0010") {
		t.Fatalf("missing entity attr: %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "nox.log")

	logger, err := logging.New(logging.Options{
		Level:       "info",
		Format:      "console",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("noise")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty log, got %q", data)
	}
}
