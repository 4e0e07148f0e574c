// Package logging builds the slog loggers used by the CLI and save
// orchestration layers.
//
// Two output formats are supported: a console handler that renders
// timestamp/level/component lines with flattened key=value attributes, and a
// JSON handler for machine consumption. Typed attribute helpers keep call
// sites terse and field names consistent across the codebase.
//
// The core resolution packages (template, catalog, planner, backup) do not
// log; they return results plus warnings and leave presentation to callers
// holding one of these loggers.
package logging
