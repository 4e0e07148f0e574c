package dcc

import (
	"context"
	"fmt"
	"strings"
)

// Host identifies a supported content-creation application and the file
// extensions its scenes use. The first extension is the native save format.
type Host struct {
	Name       string
	Label      string
	Extensions []string
}

// NativeExtension returns the extension new saves use, without a dot.
func (h Host) NativeExtension() string {
	if len(h.Extensions) == 0 {
		return ""
	}
	return h.Extensions[0]
}

var hosts = []Host{
	{Name: "nuke", Label: "Nuke", Extensions: []string{"nk", "nknc"}},
	{Name: "houdini", Label: "Houdini", Extensions: []string{"hip", "hipnc"}},
	{Name: "maya", Label: "Maya", Extensions: []string{"ma", "mb"}},
	{Name: "blender", Label: "Blender", Extensions: []string{"blend"}},
	{Name: "mocha", Label: "Mocha Pro", Extensions: []string{"mocha"}},
	{Name: "silhouette", Label: "Silhouette", Extensions: []string{"sfx"}},
	{Name: "3dequalizer", Label: "3DEqualizer", Extensions: []string{"3de"}},
	{Name: "substance_painter", Label: "Substance Painter", Extensions: []string{"spp"}},
}

var aliases = map[string]string{
	"3de":       "3dequalizer",
	"substance": "substance_painter",
}

// Known returns the built-in host table. Callers must not mutate the result.
func Known() []Host {
	out := make([]Host, len(hosts))
	copy(out, hosts)
	return out
}

// Lookup resolves a host by name or alias, case-insensitively.
func Lookup(name string) (Host, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[normalized]; ok {
		normalized = canonical
	}
	for _, host := range hosts {
		if host.Name == normalized {
			return host, true
		}
	}
	return Host{}, false
}

// RequestKind selects which host operation a load should perform.
type RequestKind int

const (
	RequestOpen RequestKind = iota
	RequestImport
	RequestReference
)

func (k RequestKind) String() string {
	switch k {
	case RequestOpen:
		return "open"
	case RequestImport:
		return "import"
	case RequestReference:
		return "reference"
	default:
		return fmt.Sprintf("request(%d)", int(k))
	}
}

// ParseRequestKind maps a user-facing mode string to a RequestKind.
func ParseRequestKind(value string) (RequestKind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "open", "":
		return RequestOpen, nil
	case "import":
		return RequestImport, nil
	case "reference":
		return RequestReference, nil
	default:
		return RequestOpen, fmt.Errorf("unknown load mode %q", value)
	}
}

// Capability is implemented once per host application, entirely outside the
// engine.
type Capability interface {
	Open(ctx context.Context, path string) error
	ImportInto(ctx context.Context, path string) error
	Reference(ctx context.Context, path string) error
}

// Dispatch routes a resolved path to the requested host operation.
func Dispatch(ctx context.Context, capability Capability, kind RequestKind, path string) error {
	if capability == nil {
		return fmt.Errorf("dispatch %s: no host capability supplied", kind)
	}
	switch kind {
	case RequestOpen:
		return capability.Open(ctx, path)
	case RequestImport:
		return capability.ImportInto(ctx, path)
	case RequestReference:
		return capability.Reference(ctx, path)
	default:
		return fmt.Errorf("dispatch: unknown request kind %d", int(kind))
	}
}
