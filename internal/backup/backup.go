package backup

import (
	"fmt"
	"os"
	"strings"

	"github.com/crisslavik/nox-file-manager/internal/engine"
	"github.com/crisslavik/nox-file-manager/internal/fileutil"
)

// Policy controls backup retention. Read-only after config load.
type Policy struct {
	Enabled      bool
	MaxCount     int
	FatalOnError bool
}

// Suffix prefixes the numbered backup slots: file.ma.bak1, file.ma.bak2, ...
const Suffix = ".bak"

// Result reports what a rotation did. Warnings cover partial-rotation
// problems that policy allowed the save to proceed past.
type Result struct {
	Backups  []string
	Removed  []string
	Warnings []string
}

// SlotPath returns the backup path for the given slot number (1 = newest).
func SlotPath(path string, slot int) string {
	return fmt.Sprintf("%s%s%d", path, Suffix, slot)
}

// IsBackupName reports whether name looks like a rotated backup slot.
func IsBackupName(name string) bool {
	idx := strings.LastIndex(name, Suffix)
	if idx < 0 {
		return false
	}
	digits := name[idx+len(Suffix):]
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Rotate shifts the backup chain for path up by one slot and copies the
// current file into slot 1. A no-op when the policy is disabled or the file
// does not exist yet. The returned error is tagged engine.ErrBackup; when the
// policy is non-fatal, partial rotations surface as Result warnings instead.
func Rotate(path string, policy Policy) (Result, error) {
	var result Result
	if !policy.Enabled || policy.MaxCount <= 0 {
		return result, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, engine.Wrap(engine.ErrBackup, "backup", "rotate", "inspect current file", err)
	}
	if info.IsDir() {
		return result, engine.Wrap(engine.ErrBackup, "backup", "rotate", fmt.Sprintf("%q is a directory", path), nil)
	}

	// Stage the copy of the current file first. If this fails nothing has
	// moved and the save must not proceed to overwrite.
	tmp := path + Suffix + ".tmp"
	if err := fileutil.CopyFileMode(path, tmp, info.Mode().Perm()); err != nil {
		_ = fileutil.RemoveIfExists(tmp)
		return result, engine.Wrap(engine.ErrBackup, "backup", "rotate", "copy current file to staging slot", err)
	}

	chain := chainLength(path)
	shifted := true
	for slot := chain; slot >= 1; slot-- {
		if err := os.Rename(SlotPath(path, slot), SlotPath(path, slot+1)); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("backup rotation partial: shift slot %d: %v", slot, err))
			shifted = false
			break
		}
	}
	if !shifted {
		_ = fileutil.RemoveIfExists(tmp)
		if policy.FatalOnError {
			return result, engine.Wrap(engine.ErrBackup, "backup", "rotate", "backup chain shift failed", nil)
		}
		return result, nil
	}

	if err := os.Rename(tmp, SlotPath(path, 1)); err != nil {
		_ = fileutil.RemoveIfExists(tmp)
		if policy.FatalOnError {
			return result, engine.Wrap(engine.ErrBackup, "backup", "rotate", "move staged copy into slot 1", err)
		}
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("backup rotation partial: move staged copy: %v", err))
		return result, nil
	}

	// Prune beyond the retention count, oldest last so a failed delete never
	// breaks the surviving chain.
	for slot := policy.MaxCount + 1; slot <= chain+1; slot++ {
		victim := SlotPath(path, slot)
		if !fileutil.Exists(victim) {
			continue
		}
		if err := os.Remove(victim); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("backup rotation partial: remove %s: %v", victim, err))
			continue
		}
		result.Removed = append(result.Removed, victim)
	}

	keep := chain + 1
	if keep > policy.MaxCount {
		keep = policy.MaxCount
	}
	for slot := 1; slot <= keep; slot++ {
		result.Backups = append(result.Backups, SlotPath(path, slot))
	}
	return result, nil
}

// chainLength counts contiguous backup slots starting at 1.
func chainLength(path string) int {
	n := 0
	for fileutil.Exists(SlotPath(path, n+1)) {
		n++
	}
	return n
}
