package backup_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/crisslavik/nox-file-manager/internal/backup"
	"github.com/crisslavik/nox-file-manager/internal/engine"
)

func writeAsset(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readAsset(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestRotateDisabledPolicyIsNoop(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "SH0010_comp_v001.ma")
	writeAsset(t, target, "v1")

	result, err := backup.Rotate(target, backup.Policy{Enabled: false, MaxCount: 5})
	if err != nil {
		t.Fatalf("Rotate returned error: %v", err)
	}
	if len(result.Backups) != 0 {
		t.Fatalf("unexpected backups: %v", result.Backups)
	}
	if _, statErr := os.Stat(backup.SlotPath(target, 1)); !os.IsNotExist(statErr) {
		t.Fatal("backup slot created despite disabled policy")
	}
}

func TestRotateMissingFileIsNoop(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "SH0010_comp_v001.ma")

	result, err := backup.Rotate(target, backup.Policy{Enabled: true, MaxCount: 3})
	if err != nil {
		t.Fatalf("Rotate returned error: %v", err)
	}
	if len(result.Backups) != 0 || len(result.Warnings) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestRotateRetainsBoundedChain(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "SH0010_comp_v001.ma")
	policy := backup.Policy{Enabled: true, MaxCount: 3, FatalOnError: true}

	// Four consecutive save cycles: rotate, then overwrite with new content.
	for i := 1; i <= 4; i++ {
		writeAsset(t, target, fmt.Sprintf("rev%d", i))
		if _, err := backup.Rotate(target, policy); err != nil {
			t.Fatalf("rotation %d failed: %v", i, err)
		}
	}

	// After 4 rotations exactly 3 slots survive, newest first.
	for slot, want := range map[int]string{1: "rev4", 2: "rev3", 3: "rev2"} {
		got := readAsset(t, backup.SlotPath(target, slot))
		if got != want {
			t.Fatalf("slot %d = %q, want %q", slot, got, want)
		}
	}
	if _, err := os.Stat(backup.SlotPath(target, 4)); !os.IsNotExist(err) {
		t.Fatal("slot 4 should have been pruned")
	}
	// The original is untouched by rotation.
	if got := readAsset(t, target); got != "rev4" {
		t.Fatalf("original modified: %q", got)
	}
}

func TestRotateReportsRemovedSlots(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "SH0010_comp_v001.nk")
	policy := backup.Policy{Enabled: true, MaxCount: 1, FatalOnError: true}

	writeAsset(t, target, "a")
	if _, err := backup.Rotate(target, policy); err != nil {
		t.Fatalf("first rotation: %v", err)
	}
	writeAsset(t, target, "b")
	result, err := backup.Rotate(target, policy)
	if err != nil {
		t.Fatalf("second rotation: %v", err)
	}
	if len(result.Removed) != 1 || result.Removed[0] != backup.SlotPath(target, 2) {
		t.Fatalf("unexpected removed list: %v", result.Removed)
	}
	if got := readAsset(t, backup.SlotPath(target, 1)); got != "b" {
		t.Fatalf("slot 1 = %q, want %q", got, "b")
	}
}

func TestRotateDirectoryTargetFails(t *testing.T) {
	dir := t.TempDir()
	_, err := backup.Rotate(dir, backup.Policy{Enabled: true, MaxCount: 3})
	if !errors.Is(err, engine.ErrBackup) {
		t.Fatalf("expected ErrBackup, got %v", err)
	}
}

func TestIsBackupName(t *testing.T) {
	cases := map[string]bool{
		"SH0010_comp_v001.ma.bak1":  true,
		"SH0010_comp_v001.ma.bak12": true,
		"SH0010_comp_v001.ma.bak":   false,
		"SH0010_comp_v001.ma":       false,
		"notes.bakery":              false,
	}
	for name, want := range cases {
		if got := backup.IsBackupName(name); got != want {
			t.Fatalf("IsBackupName(%q) = %v, want %v", name, got, want)
		}
	}
}
