// Package saver orchestrates a complete save: resolve the scope, plan the
// version, serialize against concurrent saves, rotate backups, commit the
// payload, and record the outcome. The host application writes its scene to
// a staging path first; the saver moves that payload into the pipeline.
package saver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crisslavik/nox-file-manager/internal/backup"
	"github.com/crisslavik/nox-file-manager/internal/catalog"
	"github.com/crisslavik/nox-file-manager/internal/config"
	"github.com/crisslavik/nox-file-manager/internal/engine"
	"github.com/crisslavik/nox-file-manager/internal/fileutil"
	"github.com/crisslavik/nox-file-manager/internal/history"
	"github.com/crisslavik/nox-file-manager/internal/logging"
	"github.com/crisslavik/nox-file-manager/internal/pipeline"
	"github.com/crisslavik/nox-file-manager/internal/planner"
	"github.com/crisslavik/nox-file-manager/internal/savelock"
	"github.com/crisslavik/nox-file-manager/internal/sidecar"
	"github.com/crisslavik/nox-file-manager/internal/template"
)

// Saver carries the collaborators a save needs. The history store is
// optional; without it saves simply go unrecorded.
type Saver struct {
	cfg     *config.Config
	store   *history.Store
	logger  *slog.Logger
	nowFunc func() time.Time
}

// New builds a Saver. A nil logger disables logging.
func New(cfg *config.Config, store *history.Store, logger *slog.Logger) *Saver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Saver{
		cfg:     cfg,
		store:   store,
		logger:  logging.NewComponentLogger(logger, "saver"),
		nowFunc: time.Now,
	}
}

// Request describes one save. Version 0 plans the next version; a positive
// version targets that exact slot and overwrites after backup rotation.
type Request struct {
	Context    pipeline.Context
	DCC        string
	SourcePath string
	Version    int
	FrameRange string
	FPS        float64
	Extra      map[string]string
}

// Result reports a completed save.
type Result struct {
	Path        string
	Version     int
	OperationID string
	Overwrote   bool
	Backups     backup.Result
	Warnings    []string
	HistoryID   int64
}

// Save runs the full flow. The plan-through-commit window is serialized per
// (entity, task, extension), and a fatal backup failure aborts before the
// existing file is touched.
func (s *Saver) Save(ctx context.Context, req Request) (*Result, error) {
	src, err := os.Stat(req.SourcePath)
	if err != nil {
		return nil, engine.Wrap(engine.ErrNotFound, "saver", "save", "staged source file", err)
	}
	ext := template.NormalizeExt(filepath.Ext(req.SourcePath))
	if ext == "" {
		return nil, engine.Wrap(engine.ErrPlanning, "saver", "save",
			fmt.Sprintf("source %q has no extension", req.SourcePath), nil)
	}
	if err := checkComponents(req.Context); err != nil {
		return nil, err
	}

	dccName := req.DCC
	if dccName == "" {
		dccName = s.cfg.DCC.Default
	}
	tmpl, err := s.cfg.TemplateFor(req.Context.Task)
	if err != nil {
		return nil, engine.Wrap(engine.ErrConfiguration, "saver", "save", "compile naming template", err)
	}
	scope, err := pipeline.Resolve(req.Context, pipeline.OpSave, pipeline.ResolveInput{
		ProjectRoot: s.cfg.Paths.ProjectRoot,
		DCC:         dccName,
		Extensions:  s.cfg.ExtensionsFor(dccName),
		Template:    tmpl,
		Kind:        pipeline.WorkArea,
	})
	if err != nil {
		return nil, err
	}
	if !scope.Allows(ext) {
		return nil, engine.Wrap(engine.ErrPlanning, "saver", "save",
			fmt.Sprintf("extension %q is not allowed for %s", ext, dccName), nil)
	}
	if err := containedInProject(scope.Root, s.cfg.Paths.ProjectRoot); err != nil {
		return nil, err
	}

	entity := req.Context.ShotOrAsset
	guard, err := savelock.Acquire(ctx, scope.Root, entity, req.Context.Task, ext)
	if err != nil {
		return nil, err
	}
	defer guard.Release()

	// Scan and plan under the lock so the version we commit is the version
	// we planned.
	snap, err := catalog.Scan(ctx, scope)
	if err != nil {
		return nil, err
	}
	var plan planner.Plan
	if req.Version > 0 {
		plan, err = planner.PlanOverwrite(snap, entity, req.Context.Task, ext, req.Version)
	} else {
		plan, err = planner.PlanSave(snap, entity, req.Context.Task, ext)
	}
	if err != nil {
		return nil, err
	}
	if req.Version == 0 && plan.CollidesWithExisting {
		return nil, engine.Wrap(engine.ErrPlanning, "saver", "save",
			fmt.Sprintf("planned target %s already exists; scope is being written outside the save lock", plan.TargetName), nil)
	}

	result := &Result{
		Path:        plan.TargetPath,
		Version:     plan.Version,
		OperationID: uuid.NewString(),
		Overwrote:   plan.CollidesWithExisting,
		Warnings:    append([]string(nil), plan.Warnings...),
	}

	rotated, err := backup.Rotate(plan.TargetPath, s.cfg.BackupPolicy())
	if err != nil {
		return nil, err
	}
	result.Backups = rotated
	result.Warnings = append(result.Warnings, rotated.Warnings...)

	if err := fileutil.CopyFileVerified(req.SourcePath, plan.TargetPath); err != nil {
		return nil, engine.Wrap(engine.ErrPlanning, "saver", "save", "commit payload", err)
	}

	meta := sidecar.Metadata{
		File:        plan.TargetName,
		SavedAt:     s.nowFunc().UTC(),
		Software:    dccName,
		User:        currentUser(),
		Host:        currentHost(),
		FrameRange:  req.FrameRange,
		FPS:         req.FPS,
		OperationID: result.OperationID,
		Extra:       req.Extra,
	}
	if err := sidecar.Write(plan.TargetPath, meta); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("sidecar not written: %v", err))
	}

	if s.store != nil {
		id, err := s.store.Add(ctx, history.Record{
			OperationID: result.OperationID,
			Show:        req.Context.Show,
			Sequence:    req.Context.Sequence,
			Entity:      entity,
			Task:        req.Context.Task,
			Version:     plan.Version,
			Extension:   ext,
			DCC:         dccName,
			Path:        plan.TargetPath,
			SizeBytes:   src.Size(),
			SavedAt:     meta.SavedAt,
		})
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("history not recorded: %v", err))
		} else {
			result.HistoryID = id
		}
	}

	s.logger.InfoContext(ctx, "saved",
		logging.String(logging.FieldEntity, entity),
		logging.String(logging.FieldTask, req.Context.Task),
		logging.Int(logging.FieldVersion, plan.Version),
		logging.String(logging.FieldDCC, dccName),
		logging.String(logging.FieldPath, plan.TargetPath),
		logging.String(logging.FieldOperationID, result.OperationID))
	return result, nil
}

// checkComponents rejects context fields that would escape the resolved
// directory tree.
func checkComponents(pctx pipeline.Context) error {
	for _, field := range []string{pctx.Show, pctx.Sequence, pctx.ShotOrAsset, pctx.Task, pctx.AssetType} {
		if field == "" {
			continue
		}
		if field == ".." || strings.ContainsAny(field, `/\`) {
			return engine.Wrap(engine.ErrPlanning, "saver", "save",
				fmt.Sprintf("context field %q is not a valid path component", field), nil)
		}
	}
	return nil
}

func containedInProject(path, root string) error {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return engine.Wrap(engine.ErrPlanning, "saver", "save",
			fmt.Sprintf("target %q escapes the project root", path), nil)
	}
	return nil
}

func currentUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return os.Getenv("USERNAME")
}

func currentHost() string {
	host, err := os.Hostname()
	if err != nil {
		return ""
	}
	return host
}
