package discover

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Kind classifies a raw user-entered pattern.
type Kind int

const (
	KindLiteralFile Kind = iota
	KindLiteralDirectory
	KindGlob
	KindMissing
)

func (k Kind) String() string {
	switch k {
	case KindLiteralFile:
		return "literal_file"
	case KindLiteralDirectory:
		return "literal_directory"
	case KindGlob:
		return "glob"
	case KindMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// Pattern is a classified user-entered path pattern. Raw is exactly what
// the user typed; Normalized is the forward-slash form used for glob
// classification and, for KindGlob, for static-prefix computation.
type Pattern struct {
	Raw        string
	Normalized string
	Kind       Kind
	// AbsPath is populated for KindLiteralFile and KindLiteralDirectory.
	AbsPath string
}

// globMetachars mirrors §4.A of the discovery spec: a pattern is a glob
// if, after normalization, it contains any of these outside of plain
// path segments. doublestar interprets the dialect itself (**, *, ?,
// [...], {a,b}, leading ! negation); the classifier only needs to know
// "could this be a glob at all".
const globMetachars = "*?[{!("

func hasGlobMeta(s string) bool {
	return strings.ContainsAny(s, globMetachars)
}

// classify resolves raw against cwd and stats it, per §4.A steps 1-5.
func classify(fsys afero.Fs, cwd, raw string, globInputPaths bool) (Pattern, error) {
	normalized := filepath.ToSlash(raw)

	resolved := raw
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(cwd, resolved)
	} else {
		resolved = filepath.Clean(resolved)
	}

	info, err := fsys.Stat(resolved)
	switch {
	case err == nil && info.IsDir():
		return Pattern{Raw: raw, Normalized: filepath.ToSlash(resolved), Kind: KindLiteralDirectory, AbsPath: resolved}, nil
	case err == nil:
		return Pattern{Raw: raw, Normalized: filepath.ToSlash(resolved), Kind: KindLiteralFile, AbsPath: resolved}, nil
	case os.IsNotExist(err):
		if globInputPaths && hasGlobMeta(normalized) {
			return Pattern{Raw: raw, Normalized: normalized, Kind: KindGlob}, nil
		}
		return Pattern{Raw: raw, Kind: KindMissing}, nil
	default:
		// A real system error (permission denied, etc.) - propagated
		// unchanged per §7, not papered over as "missing".
		return Pattern{}, err
	}
}
