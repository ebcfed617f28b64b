package discover

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompiledMatcherMatches(t *testing.T) {
	m, err := compileMatcher("**/*.js")
	require.NoError(t, err)

	require.True(t, m.Matches("a/x.js"))
	require.True(t, m.Matches("a/b/c/.hidden.js"), "dot-files must match per §4.C's dot_files_match=true")
	require.False(t, m.Matches("a/y.txt"))
}

func TestCompiledMatcherMatchesPrefix(t *testing.T) {
	m, err := compileMatcher("a/b/*.go")
	require.NoError(t, err)

	require.True(t, m.MatchesPrefix(""))
	require.True(t, m.MatchesPrefix("a"))
	require.True(t, m.MatchesPrefix("a/b"))
	require.False(t, m.MatchesPrefix("a/c"), "sibling of static prefix segment cannot lead to a match")
	require.False(t, m.MatchesPrefix("a/b/c"), "pattern has no trailing ** so deeper directories can't match")
}

func TestCompiledMatcherMatchesPrefixRecursive(t *testing.T) {
	m, err := compileMatcher("**/*.js")
	require.NoError(t, err)

	require.True(t, m.MatchesPrefix("any/depth/at/all"))
}

func TestCompiledMatcherInvalidPattern(t *testing.T) {
	_, err := compileMatcher("a[")
	require.Error(t, err)
}
