package savelock_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/crisslavik/nox-file-manager/internal/catalog"
	"github.com/crisslavik/nox-file-manager/internal/engine"
	"github.com/crisslavik/nox-file-manager/internal/pipeline"
	"github.com/crisslavik/nox-file-manager/internal/planner"
	"github.com/crisslavik/nox-file-manager/internal/savelock"
	"github.com/crisslavik/nox-file-manager/internal/template"
)

func TestTryAcquireIsExclusive(t *testing.T) {
	root := t.TempDir()

	guard, err := savelock.TryAcquire(root, "SH0010", "comp", ".ma")
	if err != nil {
		t.Fatalf("TryAcquire failed: %v", err)
	}

	if _, err := savelock.TryAcquire(root, "SH0010", "comp", "ma"); !errors.Is(err, engine.ErrLocked) {
		t.Fatalf("expected ErrLocked while held, got %v", err)
	}

	// A different triple is an independent lock.
	other, err := savelock.TryAcquire(root, "SH0010", "anim", "ma")
	if err != nil {
		t.Fatalf("independent triple should lock: %v", err)
	}
	if err := other.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}

	if err := guard.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	reacquired, err := savelock.TryAcquire(root, "SH0010", "comp", "ma")
	if err != nil {
		t.Fatalf("TryAcquire after release failed: %v", err)
	}
	_ = reacquired.Release()
}

func TestAcquireCreatesScopeRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "shots", "SEQ01", "SH0010", "comp", "work", "maya")
	guard, err := savelock.Acquire(context.Background(), root, "SH0010", "comp", "ma")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer guard.Release()

	if _, err := os.Stat(root); err != nil {
		t.Fatalf("scope root not created: %v", err)
	}
}

// Concurrent saves under the guard must never plan the same version.
func TestSerializedPlansNeverCollide(t *testing.T) {
	root := t.TempDir()
	scope := pipeline.Scope{
		Root:              root,
		AllowedExtensions: []string{"ma"},
		Template:          template.MustCompile("{entity}_{task}_v{version:3}.{ext}"),
		Kind:              pipeline.WorkArea,
	}

	const savers = 8
	versions := make(chan int, savers)
	var wg sync.WaitGroup
	for i := 0; i < savers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			guard, err := savelock.Acquire(context.Background(), root, "SH0010", "comp", "ma")
			if err != nil {
				t.Errorf("Acquire: %v", err)
				return
			}
			defer guard.Release()

			snap, err := catalog.Scan(context.Background(), scope)
			if err != nil {
				t.Errorf("Scan: %v", err)
				return
			}
			plan, err := planner.PlanSave(snap, "SH0010", "comp", "ma")
			if err != nil {
				t.Errorf("PlanSave: %v", err)
				return
			}
			if err := os.WriteFile(plan.TargetPath, []byte("x"), 0o644); err != nil {
				t.Errorf("write target: %v", err)
				return
			}
			versions <- plan.Version
		}()
	}
	wg.Wait()
	close(versions)

	seen := make(map[int]bool)
	for v := range versions {
		if seen[v] {
			t.Fatalf("version %d planned twice", v)
		}
		seen[v] = true
	}
	if len(seen) != savers {
		t.Fatalf("expected %d distinct versions, got %d", savers, len(seen))
	}
}
