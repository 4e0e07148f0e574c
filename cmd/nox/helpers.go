package main

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/crisslavik/nox-file-manager/internal/catalog"
	"github.com/crisslavik/nox-file-manager/internal/template"
	"github.com/crisslavik/nox-file-manager/internal/version"
)

func matchesExt(a, b string) bool {
	return template.NormalizeExt(a) == template.NormalizeExt(b)
}

var titleCaser = cases.Title(language.English, cases.NoLower)

// taskLabel renders a task name for display, e.g. "comp" -> "Comp".
func taskLabel(task string) string {
	if task == "" {
		return ""
	}
	return titleCaser.String(task)
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Local().Format("2006-01-02 15:04")
}

func entryKindLabel(e catalog.Entry) string {
	switch e.Kind {
	case catalog.KindDirectory:
		return "dir"
	case catalog.KindVersionedFile:
		return "versioned"
	default:
		return "file"
	}
}

func entryVersionLabel(e catalog.Entry) string {
	if e.Parsed == nil {
		return ""
	}
	label := fmt.Sprintf("v%03d", e.Parsed.Version)
	if e.Parsed.Source == version.SourceHeuristic {
		label += "?"
	}
	return label
}

func entryTaskLabel(e catalog.Entry) string {
	if e.Parsed == nil {
		return ""
	}
	return taskLabel(e.Parsed.Task)
}

// parseExtraPairs turns repeated key=value flags into a map.
func parseExtraPairs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	extra := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --extra %q, expected key=value", pair)
		}
		extra[strings.TrimSpace(key)] = value
	}
	return extra, nil
}
