package discover

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestClassifyLiteralFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/r/a/x.js", []byte("x"), 0o644))

	p, err := classify(fs, "/r", "a/x.js", true)
	require.NoError(t, err)
	require.Equal(t, KindLiteralFile, p.Kind)
	require.Equal(t, "/r/a/x.js", p.AbsPath)
	require.Equal(t, "a/x.js", p.Raw)
}

func TestClassifyLiteralDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/r/b", 0o755))

	p, err := classify(fs, "/r", "b", true)
	require.NoError(t, err)
	require.Equal(t, KindLiteralDirectory, p.Kind)
	require.Equal(t, "/r/b", p.AbsPath)
}

func TestClassifyGlob(t *testing.T) {
	fs := afero.NewMemMapFs()

	p, err := classify(fs, "/r", "**/*.js", true)
	require.NoError(t, err)
	require.Equal(t, KindGlob, p.Kind)
	require.Equal(t, "**/*.js", p.Normalized)
}

func TestClassifyGlobDisabled(t *testing.T) {
	fs := afero.NewMemMapFs()

	p, err := classify(fs, "/r", "**/*.js", false)
	require.NoError(t, err)
	require.Equal(t, KindMissing, p.Kind)
}

func TestClassifyMissing(t *testing.T) {
	fs := afero.NewMemMapFs()

	p, err := classify(fs, "/r", "nope.txt", true)
	require.NoError(t, err)
	require.Equal(t, KindMissing, p.Kind)
	require.Equal(t, "nope.txt", p.Raw)
}

func TestHasGlobMeta(t *testing.T) {
	cases := map[string]bool{
		"a/b/c.go":  false,
		"a/*/c.go":  true,
		"a/b?.go":   true,
		"a/[bc].go": true,
		"a/{b,c}":   true,
		"!a/b":      true,
	}
	for input, want := range cases {
		require.Equal(t, want, hasGlobMeta(input), "input=%q", input)
	}
}
