package version_test

import (
	"testing"

	"github.com/crisslavik/nox-file-manager/internal/template"
	"github.com/crisslavik/nox-file-manager/internal/version"
)

func TestExtractPrefersTemplate(t *testing.T) {
	tmpl := template.MustCompile("{entity}_{task}_v{version:3}.{ext}")
	info, ok := version.Extract("SH0010_comp_v004.ma", tmpl)
	if !ok {
		t.Fatal("expected a parse result")
	}
	if info.Source != version.SourceTemplate || !info.Confident() {
		t.Fatalf("source = %q, want template", info.Source)
	}
	if info.Entity != "SH0010" || info.Task != "comp" || info.Version != 4 || info.Ext != "ma" {
		t.Fatalf("unexpected fields: %+v", info.Fields)
	}
}

func TestExtractFallsBackToHeuristic(t *testing.T) {
	// Width 4 template rejects a width-3 legacy name; the shape heuristic
	// still recovers all fields, tagged accordingly.
	tmpl := template.MustCompile("{entity}_{task}_v{version:4}.{ext}")
	info, ok := version.Extract("SH0010_comp_v004.ma", tmpl)
	if !ok {
		t.Fatal("expected a heuristic result")
	}
	if info.Source != version.SourceHeuristic || info.Confident() {
		t.Fatalf("source = %q, want heuristic", info.Source)
	}
	if info.Entity != "SH0010" || info.Version != 4 {
		t.Fatalf("unexpected fields: %+v", info.Fields)
	}
}

func TestInferShapes(t *testing.T) {
	cases := []struct {
		name    string
		ok      bool
		entity  string
		task    string
		version int
		ext     string
	}{
		{name: "SH0010_comp_v012.nk", ok: true, entity: "SH0010", task: "comp", version: 12, ext: "nk"},
		{name: "teapot_model_V2.mb", ok: true, entity: "teapot", task: "model", version: 2, ext: "mb"},
		{name: "old_scene_backup_v7.hip", ok: true, version: 7, ext: "hip"},
		{name: "plate_bg_v003", ok: true, version: 3},
		{name: "notes.txt", ok: false},
		{name: "reference_video.mov", ok: false},
		{name: "SH0010_comp.ma", ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info, ok := version.Infer(tc.name)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if !ok {
				return
			}
			if info.Source != version.SourceHeuristic {
				t.Fatalf("source = %q, want heuristic", info.Source)
			}
			if info.Entity != tc.entity || info.Task != tc.task || info.Version != tc.version || info.Ext != tc.ext {
				t.Fatalf("fields = %+v", info.Fields)
			}
		})
	}
}

func TestExtractWithoutTemplate(t *testing.T) {
	info, ok := version.Extract("SH0010_comp_v001.ma", nil)
	if !ok || info.Source != version.SourceHeuristic {
		t.Fatalf("expected heuristic result, got ok=%v source=%q", ok, info.Source)
	}
}
