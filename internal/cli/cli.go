package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ellipsegen/pkg/buildinfo"
	"github.com/matzehuels/ellipsegen/pkg/cache"
	"github.com/matzehuels/ellipsegen/pkg/errors"
	"github.com/matzehuels/ellipsegen/pkg/palette"
	"github.com/matzehuels/ellipsegen/pkg/pipeline"
	"github.com/matzehuels/ellipsegen/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "ellipsegen"

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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Ellipsegen generates gradient ellipse artwork",
		Long:         `Ellipsegen composes randomized, overlapping gradient ellipses into a single SVG artwork and exports it as SVG, PNG, JPEG, PDF or a reusable JSON descriptor set.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.composeCommand())
	root.AddCommand(c.palettesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// runnerOpts are the flags shared by every command that renders.
type runnerOpts struct {
	palettes   string // TOML file with extra palettes
	rasterizer string // oksvg or rsvg
	noCache    bool
}

// rasterOpts are the flags that size and encode raster output.
type rasterOpts struct {
	width       int
	height      int
	jpegQuality int
}

func defaultRasterOpts() rasterOpts {
	return rasterOpts{width: pipeline.DefaultWidth, height: pipeline.DefaultHeight}
}

// validate rejects explicit sizes the pipeline would otherwise treat as
// unset.
func (o rasterOpts) validate() error {
	return errors.ValidateSize(o.width, o.height)
}

func addRasterFlags(cmd *cobra.Command, opts *rasterOpts) {
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "raster width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "raster height in pixels")
	cmd.Flags().IntVar(&opts.jpegQuality, "jpeg-quality", 0, "jpeg quality 1-100 (default 92)")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(opts runnerOpts) (*pipeline.Runner, error) {
	reg, err := loadRegistry(opts.palettes)
	if err != nil {
		return nil, err
	}
	rz, err := render.ByName(opts.rasterizer)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(reg, newCache(opts.noCache, c.Logger), releaseKeyer(), rz, c.Logger), nil
}

// releaseKeyer scopes cache keys to the running version, so an upgraded
// renderer never serves artifacts written by an older build.
func releaseKeyer() cache.Keyer {
	return cache.NewScopedKeyer(nil, buildinfo.Version+":")
}

// newCache opens the file cache, falling back to no caching when the cache
// directory is unusable.
func newCache(noCache bool, logger *log.Logger) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		logger.Debug("cache disabled", "error", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Debug("cache disabled", "error", err)
		return cache.NewNullCache()
	}
	return fc
}

// loadRegistry returns the builtin palettes, extended by path when set.
func loadRegistry(path string) (*palette.Registry, error) {
	if path == "" {
		return palette.Builtin(), nil
	}
	return palette.LoadFile(path)
}

// addRunnerFlags registers the flags read by newRunner.
func addRunnerFlags(cmd *cobra.Command, opts *runnerOpts) {
	cmd.Flags().StringVar(&opts.palettes, "palettes", "", "TOML file with additional palettes")
	cmd.Flags().StringVar(&opts.rasterizer, "rasterizer", "oksvg", "raster backend: oksvg, rsvg")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
}
