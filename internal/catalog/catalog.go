package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/crisslavik/nox-file-manager/internal/backup"
	"github.com/crisslavik/nox-file-manager/internal/engine"
	"github.com/crisslavik/nox-file-manager/internal/pipeline"
	"github.com/crisslavik/nox-file-manager/internal/sidecar"
	"github.com/crisslavik/nox-file-manager/internal/version"
)

// Kind classifies a catalog entry.
type Kind string

const (
	KindDirectory       Kind = "directory"
	KindVersionedFile   Kind = "versioned"
	KindUnversionedFile Kind = "unversioned"
)

// Entry is one filesystem item inside a scope. Parsed is nil when nothing
// versioned could be recovered from the name; for heuristic results the
// entry stays KindUnversionedFile but the inferred fields are still
// attached for display.
type Entry struct {
	Name       string
	Path       string
	Kind       Kind
	Parsed     *version.Info
	Compatible bool
	Size       int64
	ModTime    time.Time
	HasSidecar bool
}

// Warning records a per-entry problem that did not abort the scan.
type Warning struct {
	Path   string
	Reason string
}

// Snapshot is the result of one scan. It is never mutated after Scan
// returns; views copy before reordering.
type Snapshot struct {
	Scope     pipeline.Scope
	Entries   []Entry
	Warnings  []Warning
	ScannedAt time.Time
}

// entries read between cancellation checks
const scanBatch = 64

// Scan enumerates the scope root and classifies every entry. Dot files,
// sidecars and backup slots are omitted; the publish directory is hidden
// when browsing a work scope. Per-entry failures become warnings; only a
// missing or unreadable root fails the scan.
func Scan(ctx context.Context, scope pipeline.Scope) (*Snapshot, error) {
	dirEntries, err := os.ReadDir(scope.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, engine.Wrap(engine.ErrScope, "catalog", "scan",
				fmt.Sprintf("scope not found: %s", scope.Root), nil)
		}
		if os.IsPermission(err) {
			return nil, engine.Wrap(engine.ErrScope, "catalog", "scan",
				fmt.Sprintf("scope not readable: %s", scope.Root), err)
		}
		return nil, engine.Wrap(engine.ErrScope, "catalog", "scan", "enumerate scope root", err)
	}

	// Sidecars are matched to assets by shared stem, so index them up front.
	sidecarStems := make(map[string]struct{})
	for _, de := range dirEntries {
		if name := de.Name(); sidecar.IsSidecar(name) {
			sidecarStems[name[:len(name)-len(sidecar.Suffix)]] = struct{}{}
		}
	}

	snap := &Snapshot{Scope: scope, ScannedAt: time.Now().UTC()}
	type versionKey struct {
		entity, task string
		version      int
	}
	seen := make(map[versionKey]string)
	for i, de := range dirEntries {
		if i%scanBatch == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		name := de.Name()
		if name == "" || name[0] == '.' {
			continue
		}
		if sidecar.IsSidecar(name) || backup.IsBackupName(name) {
			continue
		}
		full := filepath.Join(scope.Root, name)
		if de.Type()&fs.ModeSymlink != 0 {
			snap.Warnings = append(snap.Warnings, Warning{Path: full, Reason: "symbolic link skipped"})
			continue
		}
		info, err := de.Info()
		if err != nil {
			snap.Warnings = append(snap.Warnings, Warning{Path: full, Reason: fmt.Sprintf("not readable: %v", err)})
			continue
		}

		if de.IsDir() {
			if name == string(pipeline.PublishArea) && scope.Kind == pipeline.WorkArea {
				continue
			}
			snap.Entries = append(snap.Entries, Entry{
				Name:    name,
				Path:    full,
				Kind:    KindDirectory,
				ModTime: info.ModTime(),
			})
			continue
		}

		entry := Entry{
			Name:       name,
			Path:       full,
			Kind:       KindUnversionedFile,
			Compatible: scope.Allows(filepath.Ext(name)),
			Size:       info.Size(),
			ModTime:    info.ModTime(),
		}
		if _, ok := sidecarStems[sidecar.Stem(name)]; ok {
			entry.HasSidecar = true
		}
		if parsed, ok := version.Extract(name, scope.Template); ok {
			entry.Parsed = &parsed
			if parsed.Confident() {
				entry.Kind = KindVersionedFile
				key := versionKey{parsed.Entity, parsed.Task, parsed.Version}
				if prev, dup := seen[key]; dup {
					snap.Warnings = append(snap.Warnings, Warning{
						Path: full,
						Reason: fmt.Sprintf("duplicate version: %s and %s both claim %s/%s v%d",
							prev, name, parsed.Entity, parsed.Task, parsed.Version),
					})
				} else {
					seen[key] = name
				}
			}
		}
		snap.Entries = append(snap.Entries, entry)
	}

	sortEntries(snap.Entries, SortName)
	return snap, nil
}

// ScanScopes scans several independent scopes concurrently and returns one
// snapshot per scope, in input order. The first scan failure cancels the
// rest.
func ScanScopes(ctx context.Context, scopes []pipeline.Scope) ([]*Snapshot, error) {
	snaps := make([]*Snapshot, len(scopes))
	group, gctx := errgroup.WithContext(ctx)
	for i, scope := range scopes {
		i, scope := i, scope
		group.Go(func() error {
			snap, err := Scan(gctx, scope)
			if err != nil {
				return err
			}
			snaps[i] = snap
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return snaps, nil
}

func sortEntries(entries []Entry, key SortKey) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		aDir := a.Kind == KindDirectory
		bDir := b.Kind == KindDirectory
		if aDir != bDir {
			return aDir
		}
		if less, decided := key.compare(a, b); decided {
			return less
		}
		return a.Name < b.Name
	})
}
