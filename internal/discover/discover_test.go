package discover

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// buildTree reproduces the filesystem tree used throughout §8's
// end-to-end scenarios:
//
//	/r/a/x.js         (config present)
//	/r/a/y.txt        (config absent)
//	/r/b/z.js         (config present; b is ignored by provider)
//	/r/c/d/w.js       (config present)
//	/r/c/d/.hidden.js (config present)
func buildTree(t *testing.T) (afero.Fs, *fakeProvider) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, f := range []string{"/r/a/x.js", "/r/a/y.txt", "/r/b/z.js", "/r/c/d/w.js", "/r/c/d/.hidden.js"} {
		require.NoError(t, afero.WriteFile(fs, f, []byte("x"), 0o644))
	}

	provider := newFakeProvider()
	provider.noConfig["/r/a/y.txt"] = true
	provider.ignoredDirs["/r/b"] = true
	return fs, provider
}

func TestFindFilesLiteralFile(t *testing.T) {
	fs, provider := buildTree(t)
	files, err := FindFiles(context.Background(), []string{"a/x.js"}, provider, Options{
		Cwd: "/r", GlobInputPaths: true, Fs: fs,
	})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"/r/a/x.js"}, files)
}

func TestFindFilesGlobExcludesIgnoredDir(t *testing.T) {
	fs, provider := buildTree(t)
	files, err := FindFiles(context.Background(), []string{"**/*.js"}, provider, Options{
		Cwd: "/r", GlobInputPaths: true, Fs: fs,
	})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"/r/a/x.js", "/r/c/d/w.js", "/r/c/d/.hidden.js"}, files)
}

func TestFindFilesLiteralDirectoryOverridesAncestorIgnore(t *testing.T) {
	fs, provider := buildTree(t)
	// D-1: the directory was named explicitly, so its own ignored status
	// (as an ancestor of itself) must not suppress it.
	files, err := FindFiles(context.Background(), []string{"b"}, provider, Options{
		Cwd: "/r", GlobInputPaths: true, Fs: fs,
	})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"/r/b/z.js"}, files)
}

func TestFindFilesNoFilesFound(t *testing.T) {
	fs, provider := buildTree(t)
	_, err := FindFiles(context.Background(), []string{"**/*.py"}, provider, Options{
		Cwd: "/r", GlobInputPaths: true, Fs: fs, ErrorOnUnmatchedPattern: true,
	})
	require.ErrorIs(t, err, ErrNoFilesFound)
}

func TestFindFilesAllFilesIgnored(t *testing.T) {
	fs, provider := buildTree(t)
	_, err := FindFiles(context.Background(), []string{"b/**/*.js"}, provider, Options{
		Cwd: "/r", GlobInputPaths: true, Fs: fs, ErrorOnUnmatchedPattern: true,
	})
	require.ErrorIs(t, err, ErrAllFilesIgnored)
}

func TestFindFilesLiteralFileWithAbsentConfigStillReturned(t *testing.T) {
	fs, provider := buildTree(t)
	files, err := FindFiles(context.Background(), []string{"a/y.txt"}, provider, Options{
		Cwd: "/r", GlobInputPaths: true, Fs: fs,
	})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"/r/a/y.txt"}, files)
}

func TestFindFilesEmptyPatternsNoError(t *testing.T) {
	fs, provider := buildTree(t)
	files, err := FindFiles(context.Background(), nil, provider, Options{
		Cwd: "/r", GlobInputPaths: true, Fs: fs, ErrorOnUnmatchedPattern: true,
	})
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestFindFilesDotVsStarDiffer(t *testing.T) {
	fs, provider := buildTree(t)

	dot, err := FindFiles(context.Background(), []string{"."}, provider, Options{Cwd: "/r", GlobInputPaths: true, Fs: fs})
	require.NoError(t, err)
	// a/y.txt has no applicable config and b/z.js is pruned via the
	// directory-ignore rule (D-3); neither is a D-1 literal-directory
	// case here since "." names the base itself, not "b".
	require.ElementsMatch(t, []string{"/r/a/x.js", "/r/c/d/w.js", "/r/c/d/.hidden.js"}, dot)

	star, err := FindFiles(context.Background(), []string{"*"}, provider, Options{Cwd: "/r", GlobInputPaths: true, Fs: fs})
	require.NoError(t, err)
	require.Empty(t, star, "* must not descend recursively; the tree has no top-level files")
}

func TestFindFilesNoDuplicatesWhenPatternsOverlap(t *testing.T) {
	fs, provider := buildTree(t)
	files, err := FindFiles(context.Background(), []string{"a/x.js", "a/*.js"}, provider, Options{
		Cwd: "/r", GlobInputPaths: true, Fs: fs,
	})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"/r/a/x.js"}, files)
}

func TestFindFilesReorderingPatternsSameResultSet(t *testing.T) {
	fs, provider := buildTree(t)
	a, err := FindFiles(context.Background(), []string{"a/x.js", "**/*.js"}, provider, Options{Cwd: "/r", GlobInputPaths: true, Fs: fs})
	require.NoError(t, err)
	b, err := FindFiles(context.Background(), []string{"**/*.js", "a/x.js"}, provider, Options{Cwd: "/r", GlobInputPaths: true, Fs: fs})
	require.NoError(t, err)
	require.ElementsMatch(t, a, b)
}

func TestFindFilesRejectsRelativeCwd(t *testing.T) {
	fs, provider := buildTree(t)
	_, err := FindFiles(context.Background(), []string{"a/x.js"}, provider, Options{Cwd: "relative", Fs: fs})
	require.Error(t, err)
}

func TestFindFilesMissingLiteralWithoutErrorFlagIsSilent(t *testing.T) {
	fs, provider := buildTree(t)
	files, err := FindFiles(context.Background(), []string{"does-not-exist.go"}, provider, Options{
		Cwd: "/r", GlobInputPaths: true, Fs: fs, ErrorOnUnmatchedPattern: false,
	})
	require.NoError(t, err)
	require.Empty(t, files)
}
