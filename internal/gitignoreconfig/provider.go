// Package gitignoreconfig is the reference discover.ConfigProvider: a
// per-directory rule file (".lintdiscover.yaml" by default) that carries
// gitignore-style ignore patterns plus arbitrary lint settings, loaded
// with viper and matched with go-gitignore. It exists to exercise the
// ConfigProvider contract (internal/discover/config.go) against a real
// filesystem-backed implementation, not as the lint tool's actual config
// format.
package gitignoreconfig

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	gitignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// DefaultFilename is the rule file name looked up in every directory
// walked, mirroring how ".gitignore" is looked up at every level.
const DefaultFilename = ".lintdiscover.yaml"

// Config is the aggregated configuration returned by GetConfig: the
// nearest ancestor rule file's settings, keyed the way the surrounding
// lint driver would key its own per-rule options. The core never
// inspects Config's fields (§4.E treats it as opaque); they're exported
// for callers of GetConfig outside the core.
type Config struct {
	// Dir is the absolute directory the rule file was loaded from.
	Dir string
	// Settings is the raw decoded YAML document (viper.AllSettings()).
	Settings map[string]interface{}
}

type dirEntry struct {
	config     *Config
	ignore     *gitignore.GitIgnore
	generation string
}

// Provider implements discover.ConfigProvider. It caches one dirEntry
// per directory it has ever been asked about, per the provider-owns-its-
// cache contract in §6/§4.E - the core never calls it twice expecting a
// re-read.
type Provider struct {
	fs       afero.Fs
	filename string
	logger   *log.Logger

	mu    sync.RWMutex
	cache map[string]*dirEntry
}

// Option configures a Provider.
type Option func(*Provider)

// WithFilename overrides the rule filename looked up per directory.
func WithFilename(name string) Option {
	return func(p *Provider) { p.filename = name }
}

// WithLogger overrides the leveled logger used for cache-population
// debug lines. Defaults to log.Default().
func WithLogger(logger *log.Logger) Option {
	return func(p *Provider) { p.logger = logger }
}

// New creates a Provider backed by fs, looking for DefaultFilename (or
// whatever WithFilename overrides it to) in every directory it is asked
// about.
func New(fs afero.Fs, opts ...Option) *Provider {
	p := &Provider{
		fs:       fs,
		filename: DefaultFilename,
		logger:   log.Default(),
		cache:    make(map[string]*dirEntry),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LoadConfigForDirectory loads and caches whatever rule file applies at
// absPath. Idempotent per §6.
func (p *Provider) LoadConfigForDirectory(_ context.Context, absPath string) error {
	p.entry(absPath)
	return nil
}

// LoadConfigForFile loads the rule file for absPath's containing
// directory. Idempotent per §6.
func (p *Provider) LoadConfigForFile(_ context.Context, absPath string) error {
	p.entry(filepath.Dir(absPath))
	return nil
}

// IsDirectoryIgnored reports whether any ancestor's ignore patterns
// (including the directory's own parent, but not the directory's own
// rule file - a directory does not ignore itself via its own rules)
// match absPath, walking from absPath's parent up to the filesystem
// root.
func (p *Provider) IsDirectoryIgnored(_ context.Context, absPath string) (bool, error) {
	return p.isIgnored(absPath), nil
}

// GetConfig returns the nearest ancestor's Config (including absPath's
// own containing directory), or ok=false if absPath is ignored by any
// ancestor's rules or no rule file was ever found above it.
func (p *Provider) GetConfig(_ context.Context, absPath string) (interface{}, bool, error) {
	if p.isIgnored(absPath) {
		return nil, false, nil
	}

	dir := filepath.Dir(absPath)
	for {
		entry := p.entry(dir)
		if entry.config != nil {
			return entry.config, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, false, nil
		}
		dir = parent
	}
}

// isIgnored checks absPath's ignore-pattern membership against every
// ancestor directory's rule file, each pattern matched relative to the
// directory that declared it.
func (p *Provider) isIgnored(absPath string) bool {
	dir := filepath.Dir(absPath)
	for {
		entry := p.entry(dir)
		if entry.ignore != nil {
			if rel, err := filepath.Rel(dir, absPath); err == nil {
				if entry.ignore.MatchesPath(filepath.ToSlash(rel)) {
					return true
				}
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

// entry returns dir's cached dirEntry, loading it on first access.
func (p *Provider) entry(dir string) *dirEntry {
	p.mu.RLock()
	e, ok := p.cache[dir]
	p.mu.RUnlock()
	if ok {
		return e
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if e, ok := p.cache[dir]; ok {
		return e
	}

	e = p.load(dir)
	p.cache[dir] = e
	return e
}

// load reads dir's rule file, if any, and compiles it into a dirEntry.
// A missing rule file is not an error - most directories won't have
// one.
func (p *Provider) load(dir string) *dirEntry {
	entry := &dirEntry{generation: uuid.NewString()}

	rulePath := filepath.Join(dir, p.filename)
	data, err := afero.ReadFile(p.fs, rulePath)
	if err != nil {
		p.logger.Debug("no rule file", "dir", dir, "generation", entry.generation)
		return entry
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		p.logger.Warn("failed to parse rule file", "path", rulePath, "err", err, "generation", entry.generation)
		return entry
	}

	entry.config = &Config{Dir: dir, Settings: v.AllSettings()}

	if lines := v.GetStringSlice("ignore"); len(lines) > 0 {
		if gi := gitignore.CompileIgnoreLines(lines...); gi != nil {
			entry.ignore = gi
		}
	}

	p.logger.Debug("loaded rule file", "path", rulePath, "ignores", len(v.GetStringSlice("ignore")), "generation", entry.generation)
	return entry
}
