package discover

import "github.com/spf13/afero"

// Options carries the discovery-relevant fields of §3's Options record,
// plus the SPEC_FULL ambient additions (filesystem injection and a
// concurrency bound) needed to make the engine testable and to cap how
// many directory reads each group walk runs at once.
type Options struct {
	// Cwd is the absolute working directory patterns are resolved
	// against. FindFiles returns an error when it is not absolute and
	// cleans it before use.
	Cwd string

	// GlobInputPaths gates whether a stat-failing pattern with glob
	// metacharacters is treated as a glob (true) or as missing (false).
	GlobInputPaths bool

	// ErrorOnUnmatchedPattern gates whether an unmatched pattern raises
	// ErrNoFilesFound / ErrAllFilesIgnored (true) or is silently dropped
	// (false).
	ErrorOnUnmatchedPattern bool

	// Fs is the filesystem discovery runs against. Defaults to
	// afero.NewOsFs() when nil, per the pattern the teacher's
	// dependents (josephgoksu/TaskWing) use for testable filesystem
	// code.
	Fs afero.Fs

	// MaxConcurrentWalks bounds how many directory-read goroutines a
	// single group walk may have in flight at once. Defaults to
	// runtime.NumCPU() when <= 0.
	MaxConcurrentWalks int
}

func (o *Options) fs() afero.Fs {
	if o.Fs == nil {
		return afero.NewOsFs()
	}
	return o.Fs
}
