package discover

import (
	"context"

	"github.com/spf13/afero"
)

// reconcile implements component F (§4.F). It is invoked only for a
// group whose walk finished with a non-empty unmatched set and only
// when ErrorOnUnmatchedPattern is set; whenever the set still holds a
// pattern it resolves to one of the two user-facing errors for the
// *first* unmatched pattern (§4.F step 2/3 - "first one wins"), never a
// success.
func reconcile(ctx context.Context, fs afero.Fs, unmatchedErr *unmatchedSearchPatternsError, maxConcurrency int) error {
	pattern, raw, ok := unmatchedErr.firstUnmatched()
	if !ok {
		// Every pattern matched by the time reconcile runs in some
		// caller path - nothing to report.
		return nil
	}

	matcher, err := compileMatcher(pattern)
	if err != nil {
		return err
	}

	group := &searchGroup{
		basePath:           unmatchedErr.basePath,
		normalizedPatterns: []string{joinAbs(unmatchedErr.basePath, pattern)},
		rawPatterns:        []string{raw},
	}

	// Configuration disabled per §4.F step 1: provider is nil, which
	// both skips is_directory_ignored (D-3) and get_config (F-1). This
	// is a fresh, targeted re-walk - the first walk's state (whose file
	// filter stops tracking matches once its unmatched set empties) is
	// never reused.
	walker := newGroupWalker(fs, group, []*CompiledMatcher{matcher}, nil, maxConcurrency)
	outcome, err := walker.walk(ctx)
	if err != nil {
		return err
	}

	if len(outcome.files) > 0 {
		return newAllFilesIgnoredError(raw)
	}
	return newNoFilesFoundError(raw, true)
}
