package pipeline_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/crisslavik/nox-file-manager/internal/engine"
	"github.com/crisslavik/nox-file-manager/internal/pipeline"
	"github.com/crisslavik/nox-file-manager/internal/template"
)

func resolveInput(root string) pipeline.ResolveInput {
	return pipeline.ResolveInput{
		ProjectRoot: root,
		DCC:         "maya",
		Extensions:  []string{".ma", ".MB"},
		Template:    template.MustCompile("{entity}_{task}_v{version:3}.{ext}"),
		Kind:        pipeline.WorkArea,
	}
}

func TestResolveShotSaveScope(t *testing.T) {
	pctx := pipeline.Context{Show: "SH", Sequence: "SEQ01", ShotOrAsset: "SH0010", Task: "comp"}
	scope, err := pipeline.Resolve(pctx, pipeline.OpSave, resolveInput("/proj"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := filepath.Join("/proj", "shots", "SEQ01", "SH0010", "comp", "work", "maya")
	if scope.Root != want {
		t.Fatalf("root = %q, want %q", scope.Root, want)
	}
	if scope.Kind != pipeline.WorkArea {
		t.Fatalf("kind = %q, want work", scope.Kind)
	}
}

func TestResolveAssetPublishScope(t *testing.T) {
	pctx := pipeline.Context{Show: "SH", AssetType: "prop", ShotOrAsset: "teapot", Task: "model"}
	in := resolveInput("/proj")
	in.Kind = pipeline.PublishArea
	scope, err := pipeline.Resolve(pctx, pipeline.OpSave, in)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := filepath.Join("/proj", "assets", "prop", "teapot", "model", "publish", "maya")
	if scope.Root != want {
		t.Fatalf("root = %q, want %q", scope.Root, want)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	pctx := pipeline.Context{Sequence: "SEQ01", ShotOrAsset: "SH0010", Task: "comp"}
	in := resolveInput("/proj")
	a, errA := pipeline.Resolve(pctx, pipeline.OpSave, in)
	b, errB := pipeline.Resolve(pctx, pipeline.OpSave, in)
	if errA != nil || errB != nil {
		t.Fatalf("Resolve failed: %v / %v", errA, errB)
	}
	if a.Root != b.Root || a.Kind != b.Kind {
		t.Fatalf("resolution not deterministic: %+v vs %+v", a, b)
	}
}

func TestResolveSaveRequiresCompleteContext(t *testing.T) {
	cases := []struct {
		name string
		pctx pipeline.Context
	}{
		{"missing task", pipeline.Context{Sequence: "SEQ01", ShotOrAsset: "SH0010"}},
		{"missing shot", pipeline.Context{Sequence: "SEQ01", Task: "comp"}},
		{"shot without sequence", pipeline.Context{ShotOrAsset: "SH0010", Task: "comp"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pipeline.Resolve(tc.pctx, pipeline.OpSave, resolveInput("/proj"))
			if !errors.Is(err, engine.ErrPlanning) {
				t.Fatalf("expected ErrPlanning, got %v", err)
			}
		})
	}
}

func TestResolveLoadToleratesPartialContext(t *testing.T) {
	scope, err := pipeline.Resolve(pipeline.Context{Sequence: "SEQ01"}, pipeline.OpLoad, resolveInput("/proj"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := filepath.Join("/proj", "shots", "SEQ01")
	if scope.Root != want {
		t.Fatalf("root = %q, want %q", scope.Root, want)
	}
}

func TestResolveRequiresConfiguredRoot(t *testing.T) {
	in := resolveInput("")
	_, err := pipeline.Resolve(pipeline.Context{}, pipeline.OpLoad, in)
	if !errors.Is(err, engine.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestScopeAllows(t *testing.T) {
	scope, err := pipeline.Resolve(
		pipeline.Context{Sequence: "SEQ01", ShotOrAsset: "SH0010", Task: "comp"},
		pipeline.OpSave, resolveInput("/proj"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	for ext, want := range map[string]bool{".ma": true, "MB": true, ".Ma": true, ".txt": false} {
		if got := scope.Allows(ext); got != want {
			t.Fatalf("Allows(%q) = %v, want %v", ext, got, want)
		}
	}

	open := pipeline.Scope{}
	if !open.Allows(".anything") {
		t.Fatal("empty extension table should allow everything")
	}
}

func TestContextFromPath(t *testing.T) {
	root := "/proj"
	cases := []struct {
		path string
		want pipeline.Context
		ok   bool
	}{
		{
			path: filepath.Join(root, "shots", "SEQ01", "SH0010", "comp", "work", "maya", "SH0010_comp_v003.ma"),
			want: pipeline.Context{Sequence: "SEQ01", ShotOrAsset: "SH0010", Task: "comp"},
			ok:   true,
		},
		{
			path: filepath.Join(root, "assets", "prop", "teapot", "model"),
			want: pipeline.Context{AssetType: "prop", ShotOrAsset: "teapot", Task: "model"},
			ok:   true,
		},
		{path: filepath.Join(root, "editorial", "cut01.mov"), ok: false},
		{path: "/elsewhere/shots/SEQ01/SH0010/comp", ok: false},
		{path: root, ok: false},
	}
	for _, tc := range cases {
		got, ok := pipeline.ContextFromPath(tc.path, root)
		if ok != tc.ok {
			t.Fatalf("ContextFromPath(%q) ok = %v, want %v", tc.path, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("ContextFromPath(%q) = %+v, want %+v", tc.path, got, tc.want)
		}
	}
}

func TestContextString(t *testing.T) {
	pctx := pipeline.Context{Show: "SH", Sequence: "SEQ01", ShotOrAsset: "SH0010", Task: "comp"}
	if got := pctx.String(); got != "SH/SEQ01/SH0010/comp" {
		t.Fatalf("String() = %q", got)
	}
	if got := (pipeline.Context{}).String(); got != "(empty context)" {
		t.Fatalf("empty String() = %q", got)
	}
}
