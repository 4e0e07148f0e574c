package dcc_test

import (
	"context"
	"testing"

	"github.com/crisslavik/nox-file-manager/internal/dcc"
)

func TestLookupNormalizesNamesAndAliases(t *testing.T) {
	host, ok := dcc.Lookup("Nuke")
	if !ok {
		t.Fatal("expected nuke host")
	}
	if host.NativeExtension() != "nk" {
		t.Fatalf("unexpected native extension: %q", host.NativeExtension())
	}

	host, ok = dcc.Lookup("3de")
	if !ok {
		t.Fatal("expected 3dequalizer via alias")
	}
	if host.Name != "3dequalizer" {
		t.Fatalf("alias resolved to %q", host.Name)
	}

	if _, ok := dcc.Lookup("photoshop"); ok {
		t.Fatal("unexpected host match")
	}
}

type recordingCapability struct {
	calls []string
}

func (r *recordingCapability) Open(_ context.Context, path string) error {
	r.calls = append(r.calls, "open:"+path)
	return nil
}

func (r *recordingCapability) ImportInto(_ context.Context, path string) error {
	r.calls = append(r.calls, "import:"+path)
	return nil
}

func (r *recordingCapability) Reference(_ context.Context, path string) error {
	r.calls = append(r.calls, "reference:"+path)
	return nil
}

func TestDispatchRoutesRequestKinds(t *testing.T) {
	capability := &recordingCapability{}
	ctx := context.Background()

	for _, kind := range []dcc.RequestKind{dcc.RequestOpen, dcc.RequestImport, dcc.RequestReference} {
		if err := dcc.Dispatch(ctx, capability, kind, "/proj/s.nk"); err != nil {
			t.Fatalf("Dispatch(%s) returned error: %v", kind, err)
		}
	}
	want := []string{"open:/proj/s.nk", "import:/proj/s.nk", "reference:/proj/s.nk"}
	if len(capability.calls) != len(want) {
		t.Fatalf("unexpected calls: %v", capability.calls)
	}
	for i, call := range want {
		if capability.calls[i] != call {
			t.Fatalf("call %d = %q, want %q", i, capability.calls[i], call)
		}
	}
}

func TestParseRequestKind(t *testing.T) {
	cases := map[string]dcc.RequestKind{
		"open":      dcc.RequestOpen,
		"":          dcc.RequestOpen,
		"Import":    dcc.RequestImport,
		"reference": dcc.RequestReference,
	}
	for in, want := range cases {
		got, err := dcc.ParseRequestKind(in)
		if err != nil {
			t.Fatalf("ParseRequestKind(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseRequestKind(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := dcc.ParseRequestKind("merge"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
