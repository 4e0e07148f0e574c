package sidecar_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/crisslavik/nox-file-manager/internal/sidecar"
)

func TestPathForReplacesExtension(t *testing.T) {
	cases := map[string]string{
		"/p/SH0010_comp_v001.ma": "/p/SH0010_comp_v001.meta.json",
		"/p/plate_bg_v003":       "/p/plate_bg_v003.meta.json",
		"relative.nk":            "relative.meta.json",
	}
	for in, want := range cases {
		if got := sidecar.PathFor(in); got != want {
			t.Fatalf("PathFor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsSidecar(t *testing.T) {
	if !sidecar.IsSidecar("SH0010_comp_v001.meta.json") {
		t.Fatal("expected sidecar name to be recognized")
	}
	if sidecar.IsSidecar("SH0010_comp_v001.ma") {
		t.Fatal("asset name misclassified as sidecar")
	}
}

func TestReadMissingSidecarIsNotAnError(t *testing.T) {
	asset := filepath.Join(t.TempDir(), "SH0010_comp_v001.ma")
	meta, err := sidecar.Read(asset)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if meta != nil {
		t.Fatalf("expected nil metadata, got %+v", meta)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	asset := filepath.Join(t.TempDir(), "SH0010_comp_v001.ma")
	want := sidecar.Metadata{
		File:        "SH0010_comp_v001.ma",
		SavedAt:     time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Software:    "maya",
		User:        "jdoe",
		Host:        "ws-042",
		FrameRange:  "1001-1120",
		FPS:         24,
		OperationID: "0f4a1f6e-15a4-4f3e-9c6e-2f3a8f0d9b11",
		Extra:       map[string]string{"colorspace": "ACEScg"},
	}
	if err := sidecar.Write(asset, want); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := sidecar.Read(asset)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got == nil {
		t.Fatal("Read returned nil metadata")
	}
	if got.File != want.File || !got.SavedAt.Equal(want.SavedAt) || got.FPS != want.FPS {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Extra["colorspace"] != "ACEScg" {
		t.Fatalf("extra lost: %+v", got.Extra)
	}
}

func TestReadCorruptSidecarFails(t *testing.T) {
	asset := filepath.Join(t.TempDir(), "SH0010_comp_v001.ma")
	if err := os.WriteFile(sidecar.PathFor(asset), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := sidecar.Read(asset); err == nil {
		t.Fatal("expected decode error")
	}
}
