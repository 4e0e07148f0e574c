package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/crisslavik/nox-file-manager/internal/fileutil"
)

func TestCopyFilePreservesContent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.ma")
	dst := filepath.Join(dir, "dst.ma")
	payload := []byte("requires maya \"2026\";\n")
	if err := os.WriteFile(src, payload, 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	if err := fileutil.CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile failed: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("content mismatch: got %q want %q", got, payload)
	}
}

func TestCopyFileVerifiedRejectsMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := fileutil.CopyFileVerified(filepath.Join(dir, "absent.nk"), filepath.Join(dir, "out.nk"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestCopyFileVerifiedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "shot.nk")
	dst := filepath.Join(dir, "copy.nk")
	payload := make([]byte, 128*1024)
	for i := range payload {
		payload[i] = byte(i % 251)
	}
	if err := os.WriteFile(src, payload, 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	if err := fileutil.CopyFileVerified(src, dst); err != nil {
		t.Fatalf("CopyFileVerified failed: %v", err)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat destination: %v", err)
	}
	if info.Size() != int64(len(payload)) {
		t.Fatalf("size mismatch: got %d want %d", info.Size(), len(payload))
	}
}

func TestRemoveIfExistsIgnoresMissing(t *testing.T) {
	dir := t.TempDir()
	if err := fileutil.RemoveIfExists(filepath.Join(dir, "nothing.bak1")); err != nil {
		t.Fatalf("RemoveIfExists on missing file: %v", err)
	}
	target := filepath.Join(dir, "present.bak1")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := fileutil.RemoveIfExists(target); err != nil {
		t.Fatalf("RemoveIfExists: %v", err)
	}
	if fileutil.Exists(target) {
		t.Fatal("file still present after removal")
	}
}
