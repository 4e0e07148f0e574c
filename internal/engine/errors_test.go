package engine_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/crisslavik/nox-file-manager/internal/engine"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := engine.Wrap(engine.ErrBackup, "backup", "rotate", "shift failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, engine.ErrBackup) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"backup", "rotate", "shift failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := engine.Wrap(engine.ErrPlanning, "planner", "plan", "entity required", nil)
	if !errors.Is(err, engine.ErrPlanning) {
		t.Fatalf("expected planning marker, got %v", err)
	}
	if errors.Unwrap(err) == nil {
		t.Fatal("expected marker to remain unwrappable")
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := engine.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, engine.ErrConfiguration) {
		t.Fatalf("expected configuration fallback, got %v", err)
	}
	if !strings.Contains(err.Error(), "engine failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}
