// Package cli implements the fcss command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fcss/pkg/buildinfo"
	"github.com/matzehuels/fcss/pkg/cache"
	"github.com/matzehuels/fcss/pkg/config"
	"github.com/matzehuels/fcss/pkg/resolve"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "fcss"

	// defaultConfigFile is read by "fcss watch" when -c is not given.
	defaultConfigFile = "fcss.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	out    io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), out: w}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "fcss expands reg style sheets and matches them against templates",
		Long: `fcss reads reg files, a CSS-like notation with @import directives and
?extend markers, resolves their imports into one tree and prints it in
canonical form. It can also list the class signatures a reg file declares
and watch template directories, reporting which classes each changed
template uses.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.registerHooks()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.signaturesCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Resolver Factory
// =============================================================================

// resolveOpts are the flags shared by every command that resolves imports.
type resolveOpts struct {
	dir       string
	cache     string
	maxRounds int
}

func (o *resolveOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.dir, "dir", "", "directory import paths are relative to (default: working directory)")
	cmd.Flags().StringVar(&o.cache, "cache", config.CacheFile, "import cache: file, memory or none")
	cmd.Flags().IntVar(&o.maxRounds, "max-rounds", 0, "maximum import nesting depth (0 = unlimited)")
}

// newResolver builds a resolver whose reads go through the selected cache.
func (c *CLI) newResolver(o resolveOpts, ttl time.Duration) (*resolve.Resolver, func() error, error) {
	reader, closer, err := newReader(o.dir, o.cache, ttl)
	if err != nil {
		return nil, nil, err
	}
	r := resolve.New(reader, resolve.WithLogger(c.Logger), resolve.WithMaxRounds(o.maxRounds))
	return r, closer, nil
}

func newReader(dir, kind string, ttl time.Duration) (resolve.Reader, func() error, error) {
	files := resolve.FileReader{Dir: dir}
	if kind == config.CacheNone {
		return files, func() error { return nil }, nil
	}
	store, err := newCache(kind, ttl)
	if err != nil {
		return nil, nil, err
	}
	r := &resolve.CachedReader{
		Files: files,
		Cache: store,
		Keyer: cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":"),
		TTL:   ttl,
	}
	return r, store.Close, nil
}

func newCache(kind string, ttl time.Duration) (cache.Cache, error) {
	switch kind {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheMemory:
		return cache.NewMemoryCache(0, ttl), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/fcss/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
