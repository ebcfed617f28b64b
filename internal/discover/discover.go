package discover

import (
	"context"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// FindFiles is the orchestrator (component G, §4.G): it resolves
// patterns to a deduplicated set of absolute file paths, consulting
// provider to decide which files and directories to skip.
func FindFiles(ctx context.Context, patterns []string, provider ConfigProvider, opts Options) ([]string, error) {
	// §4.G step 1: cwd absoluteness is an options-layer contract, but a
	// relative cwd would silently corrupt every downstream join, so it
	// is worth a cheap guard here rather than a confusing failure deep
	// in the walker.
	if !filepath.IsAbs(opts.Cwd) {
		return nil, errors.Newf("discover: Options.Cwd must be absolute, got %q", opts.Cwd)
	}
	nativeCwd := filepath.Clean(opts.Cwd)
	slashCwd := filepath.ToSlash(nativeCwd)
	fs := opts.fs()

	// §4.G step 2: classify every pattern and bucket it.
	gs := newGroupSet(slashCwd)
	for _, raw := range patterns {
		p, err := classify(fs, nativeCwd, raw, opts.GlobInputPaths)
		if err != nil {
			return nil, err
		}
		gs.add(slashCwd, p)
	}

	// §4.B: an unmatched literal path fails immediately, before any walk
	// is launched.
	if len(gs.missing) > 0 && opts.ErrorOnUnmatchedPattern {
		return nil, newNoFilesFoundError(gs.missing[0], opts.GlobInputPaths)
	}

	// §4.G step 3: drop empty groups (including an unused pre-seeded
	// cwd group).
	groups := gs.sortedGroups()

	type groupResult struct {
		outcome walkOutcome
	}
	results := make([]groupResult, len(groups))

	// §4.G step 5: run every group's walk in parallel; a real I/O or
	// provider error propagates unchanged and cancels the rest via
	// errgroup's shared context, per §5's cancellation contract.
	eg, egCtx := errgroup.WithContext(ctx)
	maxConcurrency := opts.MaxConcurrentWalks
	for i, g := range groups {
		i, g := i, g
		eg.Go(func() error {
			matchers, err := compileMatchers(g)
			if err != nil {
				return err
			}
			walker := newGroupWalker(fs, g, matchers, provider, maxConcurrency)
			outcome, err := walker.walk(egCtx)
			if err != nil {
				return err
			}
			results[i] = groupResult{outcome: outcome}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// §4.G step 6/7: reconcile the first failing group (by the
	// deterministic launch order above), merge, dedupe.
	all := append([]string(nil), gs.literalFiles...)
	var reconcileErr error
	for _, r := range results {
		all = append(all, r.outcome.files...)
		if r.outcome.unmatched == nil {
			continue
		}
		if !opts.ErrorOnUnmatchedPattern {
			continue // §7: silently dropped when the caller didn't ask to error
		}
		if reconcileErr == nil {
			reconcileErr = reconcile(ctx, fs, r.outcome.unmatched, maxConcurrency)
		}
	}
	if reconcileErr != nil {
		return nil, reconcileErr
	}

	return dedupe(all), nil
}

// dedupe preserves first-occurrence order per §4.G step 7; ordering
// beyond "no duplicates" is unspecified (§3 invariant 4).
func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
