package discover

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// walkOutcome is one group walk's result: either a flat file list, or
// (when the walk leaves patterns unmatched) enough state for the
// reconciler in reconcile.go to run its second pass.
type walkOutcome struct {
	files     []string
	unmatched *unmatchedSearchPatternsError // nil when every pattern matched
}

// groupWalker performs component D's per-base traversal. One instance is
// scoped to a single walk call; it is not reused across passes (the
// reconciler's second pass, per design note in §9, builds its own).
type groupWalker struct {
	fs       afero.Fs
	basePath string
	matchers []*CompiledMatcher
	patterns []string // relative, group order, parallel to rawPatterns
	raw      []string

	// rootOverride mirrors searchGroup.literalDirectoryRoot: when true,
	// the base path is never checked against is_directory_ignored (D-1).
	// When false (a glob-derived group whose static prefix merely
	// coincides with a real, possibly-ignored directory), the base is
	// checked like any other directory before the walk reads it at all.
	rootOverride bool

	// provider is nil for the reconciliation pass (§4.F: "configuration
	// effectively disabled" - no is_directory_ignored, no get_config).
	provider ConfigProvider

	sem chan struct{}

	mu        sync.Mutex
	unmatched map[string]struct{}
	files     []string

	visitedMu sync.Mutex
	visited   map[[2]uint64]struct{}
}

func newGroupWalker(fs afero.Fs, g *searchGroup, matchers []*CompiledMatcher, provider ConfigProvider, maxConcurrency int) *groupWalker {
	if maxConcurrency <= 0 {
		maxConcurrency = runtime.NumCPU()
	}
	unmatched := make(map[string]struct{}, len(matchers))
	patterns := make([]string, len(matchers))
	for i, m := range matchers {
		patterns[i] = m.Pattern
		unmatched[m.Pattern] = struct{}{}
	}
	return &groupWalker{
		fs:           fs,
		basePath:     g.basePath,
		matchers:     matchers,
		patterns:     patterns,
		raw:          append([]string(nil), g.rawPatterns...),
		rootOverride: g.literalDirectoryRoot,
		provider:     provider,
		sem:          make(chan struct{}, maxConcurrency),
		unmatched:    unmatched,
		visited:      make(map[[2]uint64]struct{}),
	}
}

// walk runs the traversal to completion or until ctx is cancelled or an
// I/O / provider error occurs, per §5's suspension-point and
// cancellation contract.
func (w *groupWalker) walk(ctx context.Context) (walkOutcome, error) {
	// D-1's override only exempts the base path when it came from an
	// explicit literal-directory argument. A glob-derived group whose
	// static prefix merely coincides with a real directory gets no such
	// exemption: the base is checked against is_directory_ignored just
	// like any descendant would be, before the walk ever reads it.
	if !w.rootOverride && w.provider != nil {
		if err := w.provider.LoadConfigForDirectory(ctx, w.basePath); err != nil {
			return walkOutcome{}, err
		}
		ignored, err := w.provider.IsDirectoryIgnored(ctx, w.basePath)
		if err != nil {
			return walkOutcome{}, err
		}
		if ignored {
			return w.outcome(), nil
		}
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error { return w.walkDir(egCtx, eg, "") })
	if err := eg.Wait(); err != nil {
		return walkOutcome{}, err
	}

	return w.outcome(), nil
}

// outcome snapshots the walker's state into a walkOutcome, marking every
// pattern still outstanding as unmatched. Used both when walk finishes
// normally and when the root is pruned before any directory is read.
func (w *groupWalker) outcome() walkOutcome {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.unmatched) == 0 {
		return walkOutcome{files: w.files}
	}
	return walkOutcome{
		files: w.files,
		unmatched: &unmatchedSearchPatternsError{
			basePath:    w.basePath,
			unmatched:   w.unmatched,
			patterns:    w.patterns,
			rawPatterns: w.raw,
		},
	}
}

// walkDir reads one directory (relDir relative to basePath, "" for the
// base itself) and fans out a goroutine per subdirectory that survives
// the directory filter. Per §5, the parent's directory-filter decision
// always completes before any child entry-filter call, which holds here
// because filtering happens synchronously in this function before eg.Go
// is invoked for a child.
func (w *groupWalker) walkDir(ctx context.Context, eg *errgroup.Group, relDir string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	absDir := joinAbs(w.basePath, relDir)
	entries, err := afero.ReadDir(w.fs, absDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		relChild := entry.Name()
		if relDir != "" {
			relChild = relDir + "/" + entry.Name()
		}
		absChild := filepath.Join(absDir, entry.Name())

		if entry.IsDir() {
			enter, err := w.shouldEnterDirectory(ctx, relChild, absChild)
			if err != nil {
				return err
			}
			if !enter {
				continue
			}
			if w.isRevisit(entry) {
				continue
			}
			relChild := relChild
			eg.Go(func() error {
				select {
				case w.sem <- struct{}{}:
				case <-ctx.Done():
					return ctx.Err()
				}
				defer func() { <-w.sem }()
				return w.walkDir(ctx, eg, relChild)
			})
			continue
		}

		yield, err := w.shouldYieldFile(ctx, relChild, absChild)
		if err != nil {
			return err
		}
		if yield {
			w.mu.Lock()
			w.files = append(w.files, absChild)
			w.mu.Unlock()
		}
	}
	return nil
}

// shouldEnterDirectory implements the D-2/D-3 directory filter for
// descendants. The base path itself is never passed in here - walkDir
// only calls this for children - so D-1's base-path override is instead
// applied once, up front, in walk (gated on rootOverride). The relDir
// == "" branch below is therefore unreachable in practice; it stays as
// a defensive guard rather than a relied-upon code path.
func (w *groupWalker) shouldEnterDirectory(ctx context.Context, relDir, absDir string) (bool, error) {
	if relDir == "" {
		return true, nil // D-1
	}

	anyPrefix := false
	for _, m := range w.matchers {
		if m.MatchesPrefix(relDir) {
			anyPrefix = true
			break
		}
	}
	if !anyPrefix {
		return false, nil // D-2
	}

	if w.provider != nil {
		if err := w.provider.LoadConfigForDirectory(ctx, absDir); err != nil {
			return false, err
		}
		ignored, err := w.provider.IsDirectoryIgnored(ctx, absDir)
		if err != nil {
			return false, err
		}
		if ignored {
			return false, nil // D-3
		}
	}
	return true, nil
}

// shouldYieldFile implements the F-1/F-2/F-3 file filter.
func (w *groupWalker) shouldYieldFile(ctx context.Context, relFile, absFile string) (bool, error) {
	hasConfig := true
	if w.provider != nil {
		if err := w.provider.LoadConfigForFile(ctx, absFile); err != nil {
			return false, err
		}
		_, ok, err := w.provider.GetConfig(ctx, absFile)
		if err != nil {
			return false, err
		}
		hasConfig = ok
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	matched := false
	if len(w.unmatched) > 0 {
		for _, m := range w.matchers {
			if m.Matches(relFile) && hasConfig {
				delete(w.unmatched, m.Pattern)
				matched = true
			}
		}
	} else {
		for _, m := range w.matchers {
			if m.Matches(relFile) {
				matched = true
				break
			}
		}
	}
	return matched && hasConfig, nil
}

// isRevisit reports whether entry's (dev, inode) pair has already been
// entered by this walk, guarding against symlink cycles (SPEC_FULL's
// supplemented traversal-safety feature). Filesystems that don't expose
// dev/inode (afero's in-memory fs, Windows) disable the guard rather
// than false-positive.
func (w *groupWalker) isRevisit(info os.FileInfo) bool {
	dev, inode, ok := deviceInode(info)
	if !ok {
		return false
	}
	key := [2]uint64{dev, inode}

	w.visitedMu.Lock()
	defer w.visitedMu.Unlock()
	if _, seen := w.visited[key]; seen {
		return true
	}
	w.visited[key] = struct{}{}
	return false
}
