package discover

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
)

// CompiledMatcher is §3's "compiled matcher": a reusable representation
// of one relative, forward-slash pattern, compiled once per group and
// shared across that group's walk (component C).
type CompiledMatcher struct {
	// Pattern is the relative pattern, forward-slash, no leading "/".
	Pattern  string
	segments []string
}

// compileMatcher validates and compiles relative against doublestar's
// dialect. relative must already be forward-slash and relative to the
// group's base path (§4.C).
func compileMatcher(relative string) (*CompiledMatcher, error) {
	if !doublestar.ValidatePattern(relative) {
		return nil, errors.Newf("discover: invalid pattern %q", relative)
	}
	return &CompiledMatcher{
		Pattern:  relative,
		segments: strings.Split(relative, "/"),
	}, nil
}

// compileMatchers compiles every pattern in a group, relative to its own
// base path, per §4.C.
func compileMatchers(g *searchGroup) ([]*CompiledMatcher, error) {
	matchers := make([]*CompiledMatcher, 0, len(g.normalizedPatterns))
	for _, abs := range g.normalizedPatterns {
		rel := relativeToBase(g.basePath, abs)
		m, err := compileMatcher(rel)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, m)
	}
	return matchers, nil
}

// relativeToBase strips base (absolute, forward-slash, no trailing
// slash) from abs (absolute, forward-slash), producing the relative
// pattern the matcher is compiled against. abs is always base joined
// with a "/"-separated suffix containing no ".." segments, per §3's
// search-group invariant.
func relativeToBase(base, abs string) string {
	base = strings.TrimSuffix(base, "/")
	rel := strings.TrimPrefix(abs, base)
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" {
		rel = "."
	}
	return rel
}

// Matches reports whether relPath (relative to the group's base,
// forward-slash, no leading "/") is matched by this pattern - a full
// path match, dot-files included per §4.C's dot_files_match=true.
func (m *CompiledMatcher) Matches(relPath string) bool {
	ok, _ := doublestar.Match(m.Pattern, relPath)
	return ok
}

// MatchesPrefix reports whether relDir could be an ancestor of some file
// matched by this pattern - the directory-descent filter used by D-2.
// The empty relDir (the group's base path itself) always matches; it is
// handled separately by the walker's D-1 override, but returning true
// here keeps the predicate total.
func (m *CompiledMatcher) MatchesPrefix(relDir string) bool {
	if relDir == "" || relDir == "." {
		return true
	}
	dirSegs := strings.Split(relDir, "/")
	for i, seg := range m.segments {
		if seg == "**" {
			// "**" absorbs any number of remaining segments, so every
			// directory from here down is a viable descent target.
			return true
		}
		if i >= len(dirSegs) {
			// Pattern has more segments than we've descended so far;
			// relDir could still be a strict ancestor of a match.
			return true
		}
		ok, _ := doublestar.Match(seg, dirSegs[i])
		if !ok {
			return false
		}
	}
	// Pattern fully consumed without a trailing "**": relDir can only be
	// a prefix of a match if it isn't already deeper than the pattern.
	return len(dirSegs) <= len(m.segments)
}
