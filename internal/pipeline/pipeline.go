package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/crisslavik/nox-file-manager/internal/engine"
	"github.com/crisslavik/nox-file-manager/internal/template"
)

// Operation names what the caller intends to do with the resolved scope.
type Operation string

const (
	OpLoad Operation = "load"
	OpSave Operation = "save"
)

// WorkKind selects between the work area and the publish area of a task.
type WorkKind string

const (
	WorkArea    WorkKind = "work"
	PublishArea WorkKind = "publish"
)

// Context is an immutable pipeline selection. A non-empty AssetType marks an
// asset-centric context; shot contexts carry a sequence instead.
type Context struct {
	Show        string
	Sequence    string
	ShotOrAsset string
	Task        string
	AssetType   string
}

// IsAsset reports whether the context addresses an asset rather than a shot.
func (c Context) IsAsset() bool {
	return c.AssetType != ""
}

// String renders the context as a slash path for display and logging.
func (c Context) String() string {
	parts := make([]string, 0, 4)
	if c.Show != "" {
		parts = append(parts, c.Show)
	}
	if c.IsAsset() {
		parts = append(parts, c.AssetType)
	} else if c.Sequence != "" {
		parts = append(parts, c.Sequence)
	}
	if c.ShotOrAsset != "" {
		parts = append(parts, c.ShotOrAsset)
	}
	if c.Task != "" {
		parts = append(parts, c.Task)
	}
	if len(parts) == 0 {
		return "(empty context)"
	}
	return strings.Join(parts, "/")
}

// Scope is a resolved browse location. It is recomputed on every context
// change and never persisted.
type Scope struct {
	Root              string
	AllowedExtensions []string
	Template          *template.Template
	Kind              WorkKind
	DCC               string
}

// Allows reports whether the extension is compatible with the scope. The
// comparison is case-insensitive and ignores a leading dot. An empty
// extension table allows everything, which keeps broad load listings usable.
func (s Scope) Allows(ext string) bool {
	if len(s.AllowedExtensions) == 0 {
		return true
	}
	ext = template.NormalizeExt(ext)
	for _, allowed := range s.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// ResolveInput carries the configuration a resolution needs. Threading it in
// explicitly keeps Resolve a pure function of its arguments.
type ResolveInput struct {
	ProjectRoot string
	DCC         string
	Extensions  []string
	Template    *template.Template
	Kind        WorkKind
}

// Resolve maps a context to a scope. Save requires a complete context (shot
// or asset plus task, and a sequence for shots) and an active application;
// Load tolerates partial contexts and resolves a broader root instead.
func Resolve(pctx Context, op Operation, in ResolveInput) (Scope, error) {
	if strings.TrimSpace(in.ProjectRoot) == "" {
		return Scope{}, engine.Wrap(engine.ErrConfiguration, "pipeline", "resolve", "project root is not configured", nil)
	}
	if in.Template == nil {
		return Scope{}, engine.Wrap(engine.ErrConfiguration, "pipeline", "resolve", "naming template is not configured", nil)
	}
	kind := in.Kind
	if kind == "" {
		kind = WorkArea
	}
	if op == OpSave {
		if pctx.ShotOrAsset == "" || pctx.Task == "" {
			return Scope{}, engine.Wrap(engine.ErrPlanning, "pipeline", "resolve",
				"cannot resolve a save scope without a shot or asset and a task", nil)
		}
		if !pctx.IsAsset() && pctx.Sequence == "" {
			return Scope{}, engine.Wrap(engine.ErrPlanning, "pipeline", "resolve",
				"shot contexts require a sequence", nil)
		}
		if strings.TrimSpace(in.DCC) == "" {
			return Scope{}, engine.Wrap(engine.ErrConfiguration, "pipeline", "resolve",
				"active application is not configured", nil)
		}
	}

	segments := []string{in.ProjectRoot}
	if pctx.IsAsset() {
		segments = append(segments, "assets", pctx.AssetType)
	} else {
		segments = append(segments, "shots")
		if pctx.Sequence != "" {
			segments = append(segments, pctx.Sequence)
		}
	}
	// Deeper levels are only meaningful when the shallower ones are set.
	if pctx.ShotOrAsset != "" && (pctx.IsAsset() || pctx.Sequence != "") {
		segments = append(segments, pctx.ShotOrAsset)
		if pctx.Task != "" {
			segments = append(segments, pctx.Task, string(kind))
			if in.DCC != "" {
				segments = append(segments, in.DCC)
			}
		}
	}

	return Scope{
		Root:              filepath.Join(segments...),
		AllowedExtensions: normalizeExtensions(in.Extensions),
		Template:          in.Template,
		Kind:              kind,
		DCC:               in.DCC,
	}, nil
}

// ContextFromPath recovers a context from a path inside the project tree,
// typically the scene currently open in the host application. The second
// return is false when the path does not sit under a recognizable
// shots/ or assets/ branch.
func ContextFromPath(path, projectRoot string) (Context, bool) {
	rel, err := filepath.Rel(projectRoot, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return Context{}, false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 4 {
		return Context{}, false
	}
	switch parts[0] {
	case "shots":
		return Context{Sequence: parts[1], ShotOrAsset: parts[2], Task: parts[3]}, true
	case "assets":
		return Context{AssetType: parts[1], ShotOrAsset: parts[2], Task: parts[3]}, true
	}
	return Context{}, false
}

func normalizeExtensions(exts []string) []string {
	if len(exts) == 0 {
		return nil
	}
	out := make([]string, 0, len(exts))
	seen := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		normalized := template.NormalizeExt(ext)
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
