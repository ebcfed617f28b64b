// Command lintdiscover wires a thin cobra command around
// internal/discover.FindFiles. It is the "surrounding tool" the
// discovery spec places out of scope for its own core - it exists only
// to exercise the library end to end, not to reimplement the lint
// driver itself.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kaelbridge/lintdiscover/internal/discover"
	"github.com/kaelbridge/lintdiscover/internal/gitignoreconfig"
	"github.com/kaelbridge/lintdiscover/pkg/version"
)

var (
	flagCwd         string
	flagNoGlob      bool
	flagUnmatched   bool
	flagRuleFile    string
	flagConcurrency int
	flagVerbose     bool
)

var rootCmd = &cobra.Command{
	Use:     "lintdiscover [patterns...]",
	Short:   "Resolve lint path patterns to a deduplicated set of files",
	Version: version.Version,
	Args:    cobra.MinimumNArgs(0),
	RunE:    runDiscover,
}

// main runs the CLI, mirroring the teacher's cmd/root.go Execute().
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

func init() {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	rootCmd.Flags().StringVar(&flagCwd, "cwd", cwd, "working directory patterns are resolved against")
	rootCmd.Flags().BoolVar(&flagNoGlob, "no-glob", false, "treat stat-failing patterns as missing instead of globs")
	rootCmd.Flags().BoolVar(&flagUnmatched, "unmatched", true, "error when a pattern matches nothing (or only ignored files)")
	rootCmd.Flags().StringVar(&flagRuleFile, "rule-file", gitignoreconfig.DefaultFilename, "per-directory rule file name")
	rootCmd.Flags().IntVar(&flagConcurrency, "concurrency", 0, "max concurrent directory reads per search group (0 = default)")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		log.SetLevel(log.DebugLevel)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	absCwd, err := filepath.Abs(flagCwd)
	if err != nil {
		return errors.Wrapf(err, "resolving --cwd %q", flagCwd)
	}

	fs := afero.NewOsFs()
	provider := gitignoreconfig.New(fs, gitignoreconfig.WithFilename(flagRuleFile))

	opts := discover.Options{
		Cwd:                     absCwd,
		GlobInputPaths:          !flagNoGlob,
		ErrorOnUnmatchedPattern: flagUnmatched,
		Fs:                      fs,
		MaxConcurrentWalks:      flagConcurrency,
	}

	files, err := discover.FindFiles(ctx, args, provider, opts)
	if err != nil {
		log.Error("discovery failed", "err", err)
		return err
	}

	for _, f := range files {
		fmt.Println(color.GreenString(f))
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, color.YellowString("no files matched"))
	}
	return nil
}
