package discover

import "github.com/cockroachdb/errors"

// Sentinel errors for the three error kinds in §7. The two exported ones
// are the user-input kinds: the errors FindFiles returns wrap them, so
// callers distinguish them with errors.Is, never by matching message
// text.
var (
	// ErrNoFilesFound marks a pattern that produced nothing at all - no
	// file existed that could have matched, ignored or not.
	ErrNoFilesFound = errors.New("discover: no files found")

	// ErrAllFilesIgnored marks a pattern that produced matches, all of
	// which the configuration provider ignored.
	ErrAllFilesIgnored = errors.New("discover: all matched files were ignored")

	// errUnmatchedSearchPatterns is component F's internal-only control
	// flow error (§7 kind 2); it never crosses FindFiles's return.
	errUnmatchedSearchPatterns = errors.New("discover: unmatched search patterns")
)

// newNoFilesFoundError builds the user-facing error for one pattern that
// matched nothing, per §6's no_files_found(pattern, glob_enabled) shape.
func newNoFilesFoundError(pattern string, globEnabled bool) error {
	err := errors.Wrapf(ErrNoFilesFound, "no files found for pattern %q", pattern)
	return errors.WithSafeDetails(err, "pattern=%s globEnabled=%t", errors.Safe(pattern), errors.Safe(globEnabled))
}

// newAllFilesIgnoredError builds the user-facing error for a pattern
// whose matches were all filtered out by the configuration provider.
func newAllFilesIgnoredError(pattern string) error {
	err := errors.Wrapf(ErrAllFilesIgnored, "all files matching pattern %q were ignored by configuration", pattern)
	return errors.WithSafeDetails(err, "pattern=%s", errors.Safe(pattern))
}

// unmatchedSearchPatternsError is the group-scoped intermediate error
// described in §6 - it carries enough for the reconciler (§4.F) to run a
// second, targeted walk and never escapes discover.FindFiles.
type unmatchedSearchPatternsError struct {
	basePath    string
	unmatched   map[string]struct{}
	patterns    []string // relative, in group order
	rawPatterns []string // parallel to patterns
}

func (e *unmatchedSearchPatternsError) Error() string {
	return errors.Newf("discover: group %s has %d unmatched pattern(s)", e.basePath, len(e.unmatched)).Error()
}

func (e *unmatchedSearchPatternsError) Unwrap() error { return errUnmatchedSearchPatterns }

// firstUnmatched returns the first pattern (by the group's original
// ordering) still present in the unmatched set - "first one wins" per
// §4.F.
func (e *unmatchedSearchPatternsError) firstUnmatched() (pattern, raw string, ok bool) {
	for i, p := range e.patterns {
		if _, stillUnmatched := e.unmatched[p]; stillUnmatched {
			return p, e.rawPatterns[i], true
		}
	}
	return "", "", false
}
