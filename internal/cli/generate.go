package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ellipsegen/pkg/io"
	"github.com/matzehuels/ellipsegen/pkg/pipeline"
)

// generateOpts holds the flags of the generate command.
type generateOpts struct {
	runnerOpts
	rasterOpts
	palette    string
	background string
	count      int
	seed       uint64
	formats    string
	outputDir  string
}

func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{
		rasterOpts: defaultRasterOpts(),
		count:      pipeline.DefaultCount,
		outputDir:  ".",
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new artwork",
		Long: `Generate samples a fresh set of gradient ellipses and writes the artwork in
each requested format. Files are named ellipses-<unix millis>.<ext> and are
never overwritten.

Pass --seed to reproduce an earlier artwork; the seed of every run is printed.`,
		Example: `  ellipsegen generate
  ellipsegen generate -p ocean -n 20 -f svg,png
  ellipsegen generate --seed 42 -f pdf --width 3000 --height 2000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runGenerate(ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.palette, "palette", "p", "", "palette name (default: vivid)")
	cmd.Flags().StringVar(&opts.background, "background", "", "background color override (#rgb or #rrggbb)")
	cmd.Flags().IntVarP(&opts.count, "count", "n", opts.count, "number of ellipses")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatSVG, "output format(s): svg, png, jpeg, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", opts.outputDir, "directory to write files to")
	addRasterFlags(cmd, &opts.rasterOpts)
	addRunnerFlags(cmd, &opts.runnerOpts)

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, opts generateOpts) error {
	logger := loggerFromContext(ctx)
	if err := opts.rasterOpts.validate(); err != nil {
		return err
	}

	runner, err := c.newRunner(opts.runnerOpts)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Palette:     opts.palette,
		Background:  opts.background,
		Count:       pipeline.Count(opts.count),
		Seed:        opts.seed,
		Formats:     parseFormats(opts.formats),
		Width:       opts.width,
		Height:      opts.height,
		JPEGQuality: opts.jpegQuality,
		Logger:      logger,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	prog := newProgress(logger)
	var result *pipeline.Result
	if hasRaster(popts.Formats) {
		spinner := newSpinner(ctx, spinnerMessage(popts))
		spinner.Start()
		result, err = runner.Execute(ctx, popts)
		spinner.Stop()
	} else {
		result, err = runner.Execute(ctx, popts)
	}
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(opts.outputDir, popts.Formats, result.Artifacts, time.Now())
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d file(s)", len(paths)))

	printSuccess("Generated %s artwork", StyleHighlight.Render(result.Artwork.Palette))
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Ellipses, result.Artwork.Seed, result.CacheInfo.RenderHit)
	if opts.seed == 0 {
		printNextStep("Reproduce", fmt.Sprintf("%s generate -p %s -n %d --seed %d",
			appName, result.Artwork.Palette, result.Stats.Ellipses, result.Artwork.Seed))
	}
	return nil
}

// writeArtifacts exports each format in order. All files of one run share
// the same timestamp so they sort together.
func writeArtifacts(dir string, formats []string, artifacts map[string][]byte, now time.Time) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			return paths, fmt.Errorf("missing %s output", f)
		}
		path, err := io.Export(dir, f, data, now)
		if err != nil {
			return paths, fmt.Errorf("write %s: %w", f, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func spinnerMessage(opts pipeline.Options) string {
	return fmt.Sprintf("Rendering %s at %dx%d...", strings.Join(opts.Formats, ", "), opts.Width, opts.Height)
}

func hasRaster(formats []string) bool {
	for _, f := range formats {
		if pipeline.IsRaster(f) {
			return true
		}
	}
	return false
}

// parseFormats splits a comma-separated format list. An empty string
// selects svg.
func parseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return []string{pipeline.FormatSVG}
	}
	return out
}
