// Package pipeline models the show/sequence/shot-or-asset/task selection
// that scopes browsing and saving, and resolves it against a project root
// into a concrete filesystem scope.
package pipeline
