// Package version extracts entity/task/version metadata from asset
// filenames. The template parse is authoritative; a heuristic fallback
// recovers what it can from names that predate the active convention, and
// every result is tagged with its source so callers can tell the two apart.
package version

import (
	"regexp"
	"strconv"

	"github.com/crisslavik/nox-file-manager/internal/template"
)

// Source tags how a parse result was obtained.
type Source string

const (
	// SourceTemplate marks fields parsed by the active naming template.
	SourceTemplate Source = "template"
	// SourceHeuristic marks fields inferred from the filename shape alone.
	SourceHeuristic Source = "heuristic"
)

// Info is a parse result plus its provenance.
type Info struct {
	template.Fields
	Source Source
}

// Confident reports whether the fields came from the authoritative parse.
// Only confident results should feed version planning.
func (i Info) Confident() bool {
	return i.Source == SourceTemplate
}

var (
	fullShapeRe = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9-]*)_([A-Za-z0-9][A-Za-z0-9-]*)_[vV](\d+)\.([A-Za-z0-9]+)$`)
	looseVerRe  = regexp.MustCompile(`_[vV](\d+)(?:\.[A-Za-z0-9.]+)?$`)
	extRe       = regexp.MustCompile(`\.([A-Za-z0-9]+)$`)
)

// Extract parses a filename against the active template, falling back to
// Infer for names the template rejects. The second return is false when
// nothing versioned could be recovered at all.
func Extract(name string, tmpl *template.Template) (Info, bool) {
	if tmpl != nil {
		if fields, ok := tmpl.Parse(name); ok {
			return Info{Fields: fields, Source: SourceTemplate}, true
		}
	}
	return Infer(name)
}

// Infer is the best-effort secondary parse path. It first tries the common
// entity_task_vNNN.ext shape, then settles for any trailing _vNNN marker
// with just a version and extension.
func Infer(name string) (Info, bool) {
	if m := fullShapeRe.FindStringSubmatch(name); m != nil {
		v, err := strconv.Atoi(m[3])
		if err == nil {
			return Info{
				Fields: template.Fields{Entity: m[1], Task: m[2], Version: v, Ext: template.NormalizeExt(m[4])},
				Source: SourceHeuristic,
			}, true
		}
	}
	if m := looseVerRe.FindStringSubmatch(name); m != nil {
		v, err := strconv.Atoi(m[1])
		if err == nil {
			info := Info{Fields: template.Fields{Version: v}, Source: SourceHeuristic}
			if em := extRe.FindStringSubmatch(name); em != nil {
				info.Ext = template.NormalizeExt(em[1])
			}
			return info, true
		}
	}
	return Info{}, false
}
