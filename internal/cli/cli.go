package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/agptools/internal/config"
	"github.com/matzehuels/agptools/pkg/assemble"
	"github.com/matzehuels/agptools/pkg/buildinfo"
	"github.com/matzehuels/agptools/pkg/cache"
	"github.com/matzehuels/agptools/pkg/pipeline"
	"github.com/matzehuels/agptools/pkg/seqstore"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

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
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Defaults(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "agptools edits AGP genome layouts",
		Long: `agptools edits AGP files: split, join, flip, remove and rename objects,
translate component coordinates to object coordinates and build object
sequences from component FASTA.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/agptools/config.toml)")

	// Register all subcommands
	root.AddCommand(c.splitCommand())
	root.AddCommand(c.joinCommand())
	root.AddCommand(c.flipCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.renameCommand())
	root.AddCommand(c.composeCommand())
	root.AddCommand(c.transformCommand())
	root.AddCommand(c.assembleCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

// newCache picks the cache named by the config: Redis when a URL is set,
// otherwise a directory.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.Config.Cache
	if noCache || cfg.Disabled {
		return cache.NewNullCache(), nil
	}
	if cfg.RedisURL != "" {
		return cache.NewRedisCache(ctx, cfg.RedisURL, cfg.Prefix)
	}
	dir, err := c.Config.CacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newProvider opens the sequence source: a FASTA file when given,
// otherwise the configured Redis store. Redis slices are cached in c.
func (c *CLI) newProvider(ctx context.Context, fastaPath, redisURL string, slices cache.Cache) (assemble.SequenceProvider, func() error, error) {
	if fastaPath != "" {
		f, err := os.Open(fastaPath)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		mem, err := seqstore.LoadFASTA(f)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", fastaPath, err)
		}
		c.Logger.Debug("loaded sequences", "file", fastaPath, "count", mem.Len())
		return mem, func() error { return nil }, nil
	}

	if redisURL == "" {
		redisURL = c.Config.Store.RedisURL
	}
	if redisURL == "" {
		return nil, nil, fmt.Errorf("no sequence source: pass --fasta or --redis, or set store.redis_url")
	}
	store, err := seqstore.DialRedis(ctx, redisURL, c.Config.Store.Prefix)
	if err != nil {
		return nil, nil, err
	}
	return seqstore.Cached(store, slices, seqstore.SourceKeyer(store)), store.Close, nil
}
