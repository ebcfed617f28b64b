package discover

import "context"

// ConfigProvider is the external collaborator described in §6: it
// decides which directories are ignored and which files carry an
// applicable configuration. The core consults it but never caches its
// answers itself - caching is the provider's responsibility.
type ConfigProvider interface {
	// LoadConfigForDirectory loads (and, per the provider's own
	// contract, caches) whatever configuration applies at absPath.
	// Idempotent.
	LoadConfigForDirectory(ctx context.Context, absPath string) error

	// LoadConfigForFile is the file-scoped counterpart. Idempotent.
	LoadConfigForFile(ctx context.Context, absPath string) error

	// IsDirectoryIgnored reports whether absPath should be pruned from
	// traversal. Must stay consistent with GetConfig: a directory whose
	// every possible descendant would resolve to an absent config is a
	// reasonable candidate for this returning true, but the provider
	// owns that policy, not the core.
	IsDirectoryIgnored(ctx context.Context, absPath string) (bool, error)

	// GetConfig returns the aggregated configuration applicable to
	// absPath, or ok=false if none applies - absent means "exclude this
	// file from results" per §6.
	GetConfig(ctx context.Context, absPath string) (cfg any, ok bool, err error)
}
