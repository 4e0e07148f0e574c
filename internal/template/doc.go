// Package template compiles pipeline naming templates into filename
// formatters and matchers.
//
// A template names the four fields a versioned asset filename carries:
// {entity}, {task}, {version:N} (N = zero-pad width, default 3), and {ext}.
// The angle-bracket notation used in pipeline documentation
// (<entity>_<task>_v###.<ext>) is accepted and normalized at compile time.
//
// Compilation failures are configuration-time errors. Parse failures are not
// errors at all: a filename that does not match simply reports no fields,
// which is the expected case for foreign and legacy files in a scope.
package template
