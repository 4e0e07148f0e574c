// Package savelock serializes the plan-through-write window of a save.
// Two saves for the same (entity, task, extension) triple in the same scope
// must never compute the same next version, so the triple is guarded by an
// advisory file lock held from planning until the file is on disk.
package savelock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/crisslavik/nox-file-manager/internal/engine"
	"github.com/crisslavik/nox-file-manager/internal/template"
)

const retryInterval = 50 * time.Millisecond

// Guard is a held save lock. Release it exactly once.
type Guard struct {
	lock *flock.Flock
}

// Path returns the lock file backing the guard.
func (g *Guard) Path() string {
	return g.lock.Path()
}

// Release drops the lock. The lock file itself stays behind; removing it
// would race with another process opening it.
func (g *Guard) Release() error {
	return g.lock.Unlock()
}

func lockPath(root, entity, task, ext string) string {
	name := fmt.Sprintf(".%s_%s_%s.lock", entity, task, template.NormalizeExt(ext))
	return filepath.Join(root, name)
}

// Acquire blocks until the save lock for the triple is held, or the context
// is cancelled. The scope root is created if it does not exist yet.
func Acquire(ctx context.Context, root, entity, task, ext string) (*Guard, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, engine.Wrap(engine.ErrLocked, "savelock", "acquire", "create scope root", err)
	}
	lock := flock.New(lockPath(root, entity, task, ext))
	locked, err := lock.TryLockContext(ctx, retryInterval)
	if err != nil {
		return nil, engine.Wrap(engine.ErrLocked, "savelock", "acquire", "acquire save lock", err)
	}
	if !locked {
		return nil, engine.Wrap(engine.ErrLocked, "savelock", "acquire", "save lock unavailable", nil)
	}
	return &Guard{lock: lock}, nil
}

// TryAcquire takes the lock without waiting, failing when another save for
// the same triple is in flight.
func TryAcquire(root, entity, task, ext string) (*Guard, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, engine.Wrap(engine.ErrLocked, "savelock", "acquire", "create scope root", err)
	}
	lock := flock.New(lockPath(root, entity, task, ext))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, engine.Wrap(engine.ErrLocked, "savelock", "acquire", "acquire save lock", err)
	}
	if !locked {
		return nil, engine.Wrap(engine.ErrLocked, "savelock", "acquire",
			fmt.Sprintf("another save for %s/%s.%s is in flight", entity, task, template.NormalizeExt(ext)), nil)
	}
	return &Guard{lock: lock}, nil
}
