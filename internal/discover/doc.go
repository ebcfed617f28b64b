// Package discover implements the configuration-aware file discovery
// engine used by the lint driver to turn user-supplied path patterns into
// a deduplicated set of absolute file paths.
//
// The entry point is FindFiles. Everything else in this package is an
// implementation detail reachable from it: pattern classification
// (pattern.go), base-path grouping (group.go), pattern compilation
// (matcher.go), the per-base directory walk (walker.go), and the
// unmatched-pattern reconciliation pass (reconcile.go).
package discover
