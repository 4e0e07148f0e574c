package catalog

import (
	"sort"
	"strings"
)

// SortKey selects the ordering of a listing. Directories always come first;
// ties fall back to name so every ordering is stable and total.
type SortKey string

const (
	SortName    SortKey = "name"
	SortTask    SortKey = "task"
	SortVersion SortKey = "version"
	SortSize    SortKey = "size"
	SortUpdated SortKey = "updated"
)

// ParseSortKey validates a user-supplied sort key, defaulting to name.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortName:
		return SortName, true
	case SortTask:
		return SortTask, true
	case SortVersion:
		return SortVersion, true
	case SortSize:
		return SortSize, true
	case SortUpdated:
		return SortUpdated, true
	}
	return SortName, false
}

// compare returns (less, true) when the key distinguishes the two entries,
// and (false, false) to defer to the name tiebreak.
func (k SortKey) compare(a, b Entry) (bool, bool) {
	switch k {
	case SortTask:
		at, bt := entryTask(a), entryTask(b)
		if at != bt {
			return at < bt, true
		}
	case SortVersion:
		av, bv := entryVersion(a), entryVersion(b)
		if av != bv {
			return av < bv, true
		}
	case SortSize:
		if a.Size != b.Size {
			return a.Size < b.Size, true
		}
	case SortUpdated:
		if !a.ModTime.Equal(b.ModTime) {
			return a.ModTime.Before(b.ModTime), true
		}
	}
	return false, false
}

func entryTask(e Entry) string {
	if e.Parsed != nil {
		return e.Parsed.Task
	}
	return ""
}

func entryVersion(e Entry) int {
	if e.Parsed != nil {
		return e.Parsed.Version
	}
	return -1
}

// Sorted returns a reordered copy of the entries. The snapshot itself is
// never mutated, so repeated views stay consistent.
func (s *Snapshot) Sorted(key SortKey) []Entry {
	out := make([]Entry, len(s.Entries))
	copy(out, s.Entries)
	sortEntries(out, key)
	return out
}

// Filter narrows a listing without rescanning.
type Filter struct {
	Query          string
	Ext            string
	CompatibleOnly bool
}

// Filtered returns the entries matching the filter, preserving order.
// Directories pass the extension and compatibility filters so the listing
// keeps its structure while files are narrowed.
func (s *Snapshot) Filtered(f Filter) []Entry {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(f.Ext), "."))
	var out []Entry
	for _, e := range s.Entries {
		if query != "" && !strings.Contains(strings.ToLower(e.Name), query) {
			continue
		}
		if e.Kind != KindDirectory {
			if f.CompatibleOnly && !e.Compatible {
				continue
			}
			if ext != "" {
				name := strings.ToLower(e.Name)
				if !strings.HasSuffix(name, "."+ext) {
					continue
				}
			}
		}
		out = append(out, e)
	}
	return out
}

// CompatibleCount reports how many files in the snapshot carry an allowed
// extension. Directories do not count.
func (s *Snapshot) CompatibleCount() int {
	n := 0
	for _, e := range s.Entries {
		if e.Kind != KindDirectory && e.Compatible {
			n++
		}
	}
	return n
}

// Versions lists the confidently parsed versions for one (entity, task,
// extension) triple in ascending order. The extension comparison ignores
// case and a leading dot; heuristic parses never contribute.
func (s *Snapshot) Versions(entity, task, ext string) []int {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	var versions []int
	for _, e := range s.Entries {
		if e.Kind != KindVersionedFile || e.Parsed == nil {
			continue
		}
		p := e.Parsed
		if p.Entity != entity || p.Task != task || p.Ext != ext {
			continue
		}
		versions = append(versions, p.Version)
	}
	sort.Ints(versions)
	return versions
}
