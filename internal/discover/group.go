package discover

import (
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// searchGroup is §3's "search group": a set of patterns sharing a base
// path, walked as a unit. normalizedPatterns and rawPatterns are kept
// parallel, positions corresponding, per the invariant in §3.
type searchGroup struct {
	basePath           string
	normalizedPatterns []string
	rawPatterns        []string

	// literalDirectoryRoot is true when this group's base_path came from
	// a literal directory argument (not merely a glob whose static
	// prefix happens to coincide with a real directory). D-1's "never
	// prune the group's own base" override is scoped to this case - it
	// encodes "the user explicitly chose this directory", which does
	// not hold when the base was only incidentally derived from a
	// glob's static prefix.
	literalDirectoryRoot bool
}

func (g *searchGroup) add(normalized, raw string) {
	g.normalizedPatterns = append(g.normalizedPatterns, normalized)
	g.rawPatterns = append(g.rawPatterns, raw)
}

// groupSet buckets classified patterns into search groups, collects
// literal files directly, and records missing patterns - §4.B.
type groupSet struct {
	groups       map[string]*searchGroup
	literalFiles []string
	missing      []string
}

func newGroupSet(cwd string) *groupSet {
	gs := &groupSet{groups: map[string]*searchGroup{}}
	// Seed cwd as an optimization so globs whose base is cwd share a group.
	gs.groups[cwd] = &searchGroup{basePath: cwd}
	return gs
}

func (gs *groupSet) group(basePath string) *searchGroup {
	g, ok := gs.groups[basePath]
	if !ok {
		g = &searchGroup{basePath: basePath}
		gs.groups[basePath] = g
	}
	return g
}

// add buckets one classified pattern per §4.B.
func (gs *groupSet) add(cwd string, p Pattern) {
	switch p.Kind {
	case KindLiteralFile:
		gs.literalFiles = append(gs.literalFiles, p.AbsPath)
	case KindLiteralDirectory:
		// "**" with no ancestor-ignore override: the user explicitly
		// chose this directory (D-1 in the walker relies on this).
		g := gs.group(p.AbsPath)
		g.literalDirectoryRoot = true
		g.add(joinAbs(p.AbsPath, "**"), p.Raw)
	case KindGlob:
		absPattern := resolveGlobPattern(cwd, p.Normalized)
		base := staticPrefix(absPattern)
		gs.group(base).add(absPattern, p.Raw)
	case KindMissing:
		gs.missing = append(gs.missing, p.Raw)
	}
}

// sortedGroups returns non-empty groups in a deterministic order so that
// "the first failing group, by launch order" (§7) is reproducible across
// runs rather than depending on Go's randomized map iteration.
func (gs *groupSet) sortedGroups() []*searchGroup {
	var out []*searchGroup
	for _, g := range gs.groups {
		if len(g.normalizedPatterns) == 0 {
			continue // drop empty groups, including an unused pre-seeded cwd group
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].basePath < out[j].basePath })
	return out
}

// resolveGlobPattern turns a classified glob's normalized (possibly
// relative) form into an absolute, forward-slash pattern string, per
// §6's "resolving against cwd via ordinary '..'-segment collapsing".
// path.Clean (not filepath.Clean) is used deliberately: the pattern is
// already forward-slash and may contain "**"/"*"/"{...}" segments that
// path.Clean leaves untouched, only collapsing "." and ".." - this is
// what keeps the static-prefix-outside-cwd case (§9 Open Question,
// resolved in SPEC_FULL.md) producing a clean absolute base path instead
// of a literal ".." segment.
func resolveGlobPattern(cwd, normalized string) string {
	if strings.HasPrefix(normalized, "/") {
		return path.Clean(normalized)
	}
	return path.Clean(joinAbs(filepath.ToSlash(cwd), normalized))
}

// staticPrefix computes the longest leading path of absPattern (absolute,
// forward-slash) made of segments containing no glob metacharacters -
// §4.B / §4.C's "static_prefix".
func staticPrefix(absPattern string) string {
	segs := strings.Split(absPattern, "/")
	static := []string{segs[0]} // keep the root marker ("" for a leading "/", or a drive letter)
	for _, s := range segs[1:] {
		if hasGlobMeta(s) {
			break
		}
		static = append(static, s)
	}
	prefix := strings.Join(static, "/")
	if prefix == "" {
		prefix = "/"
	}
	return prefix
}

// joinAbs joins an absolute forward-slash base with a relative
// forward-slash suffix, without introducing a doubled separator.
func joinAbs(base, suffix string) string {
	base = strings.TrimSuffix(base, "/")
	if suffix == "" {
		return base
	}
	return base + "/" + suffix
}
