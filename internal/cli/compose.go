package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ellipsegen/pkg/io"
	"github.com/matzehuels/ellipsegen/pkg/pipeline"
)

type composeOpts struct {
	runnerOpts
	rasterOpts
	formats   string
	outputDir string
}

func (c *CLI) composeCommand() *cobra.Command {
	opts := composeOpts{
		rasterOpts: defaultRasterOpts(),
		outputDir:  ".",
	}

	cmd := &cobra.Command{
		Use:   "compose FILE.json",
		Short: "Re-render a saved descriptor set",
		Long: `Compose reads a descriptor set written by "generate -f json" and renders it
again. The SVG document is byte-identical to the original.`,
		Example: `  ellipsegen compose ellipses-1718035200123.json -f png --width 1920 --height 1080`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runCompose(ctx, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatSVG, "output format(s): svg, png, jpeg, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", opts.outputDir, "directory to write files to")
	addRasterFlags(cmd, &opts.rasterOpts)
	addRunnerFlags(cmd, &opts.runnerOpts)

	return cmd
}

func (c *CLI) runCompose(ctx context.Context, path string, opts composeOpts) error {
	logger := loggerFromContext(ctx)
	if err := opts.rasterOpts.validate(); err != nil {
		return err
	}

	a, err := io.ImportJSON(path)
	if err != nil {
		return err
	}
	logger.Debug("loaded descriptor set", "file", path, "palette", a.Palette, "ellipses", len(a.Ellipses))

	runner, err := c.newRunner(opts.runnerOpts)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
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
	art := pipeline.NewArtwork(a)

	spinner := newSpinner(ctx, spinnerMessage(popts))
	spinner.Start()
	artifacts, info, err := runner.RenderWithCacheInfo(ctx, art, popts)
	spinner.Stop()
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(opts.outputDir, popts.Formats, artifacts, time.Now())
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d file(s)", len(paths)))

	printSuccess("Composed %s", StyleHighlight.Render(path))
	for _, p := range paths {
		printFile(p)
	}
	printStats(len(a.Ellipses), a.Seed, info.RenderHit)
	return nil
}
