// Package cli implements the polypath command-line interface.
//
// # Commands
//
// The main commands are:
//   - render: Find every closed path on an n-gon and write it as SVG (the default)
//   - count: Print the number of distinct paths
//   - list: Print the canonical jump sequences as a table
//   - browse: Page through the paths interactively
//   - serve: Expose the pipeline over HTTP
//   - cache: Manage the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
//
// # Configuration
//
// Defaults are read from $XDG_CONFIG_HOME/polypath/config.toml (or --config)
// and overridden by flags.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/polypath/pkg/buildinfo"
	"github.com/matzehuels/polypath/pkg/cache"
	"github.com/matzehuels/polypath/pkg/errors"
	"github.com/matzehuels/polypath/pkg/observability"
	"github.com/matzehuels/polypath/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "polypath"

	// redisKeyPrefix scopes keys in a shared Redis instance.
	redisKeyPrefix = "polypath:"
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
	Config Config

	configPath string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level. At debug level, pipeline and
// cache events are logged as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Register()
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
// Run without a subcommand, it behaves like "render".
func (c *CLI) RootCommand() *cobra.Command {
	flags := newRenderFlags()

	root := &cobra.Command{
		Use:   "polypath [n]",
		Short: "Polypath draws every closed path through the corners of a regular polygon",
		Long: `Polypath enumerates every distinct closed path that visits all n vertices of a
regular n-gon exactly once, treating paths that differ only by rotation,
reversal or reflection as the same, and draws them as a grid of diagrams.

With no subcommand it renders the paths for n (default 7) to output{n}.svg.`,
		Version:      buildinfo.Version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			n := defaultSize
			if len(args) == 1 {
				var err error
				if n, err = errors.ParseSize(args[0]); err != nil {
					return err
				}
			}
			return c.runRender(cmd, n, flags)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/polypath/config.toml)")
	flags.register(root)

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.countCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file named by --config, or the default one if
// it exists.
func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(dir, configFileName)
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path)
	return nil
}

// sizeArg validates a single polygon size argument before any command runs.
func sizeArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	_, err := errors.ParseSize(args[0])
	return err
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, keyer, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

// newCache selects Redis when configured, the file cache otherwise.
// A missing cache directory disables caching rather than failing.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, cache.Keyer, error) {
	if noCache || !c.Config.cacheEnabled() {
		return cache.NewNullCache(), nil, nil
	}
	if r := c.Config.Redis; r.Addr != "" {
		rc, err := cache.DialRedis(ctx, r.Addr, r.Password, r.DB)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "connect to redis at %s", r.Addr)
		}
		c.Logger.Debug("using redis cache", "addr", r.Addr)
		return rc, redisKeyer(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return fc, nil, nil
}

// redisKeyer scopes keys so that a shared Redis reads "polypath:paths:<hash>".
func redisKeyer() cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), redisKeyPrefix)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/polypath/).
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

// configDir returns the config directory using XDG standard (~/.config/polypath/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
