// Package config loads, normalizes, and validates NOX configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// NOX_PROJECT_ROOT. The Config type centralizes every knob the CLI and the
// resolution engine need: the project root, naming templates, per-application
// extension tables, the backup policy, and pass-through credentials for the
// production-tracking service.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, compiled templates, and clear validation errors.
package config
