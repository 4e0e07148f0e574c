// Package engine defines the error taxonomy shared by the core resolution
// packages.
//
// Every failure the engine can surface is tagged with one of the sentinel
// markers below so callers can classify errors without string matching:
// configuration problems abort before any scan, scope problems abort a single
// operation, planning problems abort a single save attempt, and backup
// problems are fatal or advisory depending on policy. Per-entry problems
// during a scan are not errors at all; they travel as catalog warnings.
//
// Core packages never log. They return wrapped errors built with Wrap and
// leave presentation to the CLI layer.
package engine
