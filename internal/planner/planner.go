// Package planner computes the next version and target path for a save.
// Planning never writes; callers re-check the target under the save lock
// before committing.
package planner

import (
	"fmt"
	"path/filepath"

	"github.com/crisslavik/nox-file-manager/internal/catalog"
	"github.com/crisslavik/nox-file-manager/internal/engine"
	"github.com/crisslavik/nox-file-manager/internal/fileutil"
	"github.com/crisslavik/nox-file-manager/internal/template"
)

// Plan is the result of planning a save. BackupOf names the file the backup
// rotation will preserve when the target already exists.
type Plan struct {
	TargetName           string
	TargetPath           string
	Version              int
	CollidesWithExisting bool
	BackupOf             string
	Warnings             []string
}

// PlanSave computes the next version for (entity, task, ext) in a scanned
// scope. Versions increase monotonically from the maximum existing one;
// gaps are preserved, never compacted, and an empty scope plans version 1.
// Names the template could not parse confidently are excluded from the
// maximum and reported as warnings when they look related.
func PlanSave(snap *catalog.Snapshot, entity, task, ext string) (Plan, error) {
	if err := checkArgs(snap, entity, task, &ext); err != nil {
		return Plan{}, err
	}
	versions := snap.Versions(entity, task, ext)
	next := 1
	if len(versions) > 0 {
		next = versions[len(versions)-1] + 1
	}
	plan, err := build(snap, entity, task, ext, next)
	if err != nil {
		return Plan{}, err
	}
	plan.Warnings = inferredWarnings(snap, entity, task, ext)
	return plan, nil
}

// PlanOverwrite targets an explicit existing version instead of the next
// one. The caller decides whether overwriting is acceptable; the plan just
// reports the collision and what a backup rotation would preserve.
func PlanOverwrite(snap *catalog.Snapshot, entity, task, ext string, ver int) (Plan, error) {
	if err := checkArgs(snap, entity, task, &ext); err != nil {
		return Plan{}, err
	}
	if ver < 0 {
		return Plan{}, engine.Wrap(engine.ErrPlanning, "planner", "plan overwrite",
			fmt.Sprintf("version %d is negative", ver), nil)
	}
	return build(snap, entity, task, ext, ver)
}

func checkArgs(snap *catalog.Snapshot, entity, task string, ext *string) error {
	if snap == nil {
		return engine.Wrap(engine.ErrPlanning, "planner", "plan", "no catalog snapshot", nil)
	}
	if snap.Scope.Template == nil {
		return engine.Wrap(engine.ErrPlanning, "planner", "plan", "scope has no naming template", nil)
	}
	if entity == "" || task == "" {
		return engine.Wrap(engine.ErrPlanning, "planner", "plan", "entity and task are required", nil)
	}
	*ext = template.NormalizeExt(*ext)
	if *ext == "" {
		return engine.Wrap(engine.ErrPlanning, "planner", "plan", "extension is required", nil)
	}
	return nil
}

func build(snap *catalog.Snapshot, entity, task, ext string, ver int) (Plan, error) {
	name, err := snap.Scope.Template.Format(template.Fields{
		Entity:  entity,
		Task:    task,
		Version: ver,
		Ext:     ext,
	})
	if err != nil {
		return Plan{}, engine.Wrap(engine.ErrPlanning, "planner", "plan", "format target name", err)
	}
	plan := Plan{
		TargetName: name,
		TargetPath: filepath.Join(snap.Scope.Root, name),
		Version:    ver,
	}
	if fileutil.Exists(plan.TargetPath) {
		plan.CollidesWithExisting = true
		plan.BackupOf = plan.TargetPath
	}
	return plan, nil
}

// inferredWarnings flags files whose version was only heuristically
// recovered for the same triple. They never feed the maximum, and the
// caller should know the scope holds names outside the active convention.
func inferredWarnings(snap *catalog.Snapshot, entity, task, ext string) []string {
	var warnings []string
	for _, e := range snap.Entries {
		if e.Kind != catalog.KindUnversionedFile || e.Parsed == nil {
			continue
		}
		p := e.Parsed
		if p.Entity != entity || p.Task != task || p.Ext != ext {
			continue
		}
		warnings = append(warnings, fmt.Sprintf(
			"%s carries an inferred version (v%d) outside the active naming convention; excluded from planning",
			e.Name, p.Version))
	}
	return warnings
}
