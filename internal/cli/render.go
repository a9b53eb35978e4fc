package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pondevelopment/harkje/pkg/chart"
	"github.com/pondevelopment/harkje/pkg/org"
	"github.com/pondevelopment/harkje/pkg/pipeline"
)

// renderCommand creates the render command for generating diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output       string
		formatsStr   string
		collapsed    string
		viewFile     string
		noCache      bool
		refresh      bool
		noConnectors bool
	)
	opts := c.pipelineOptions()

	cmd := &cobra.Command{
		Use:   "render [org file]",
		Short: "Render an org hierarchy to a card diagram",
		Long: `Render an org hierarchy to a card diagram.

The render command runs the complete pipeline: it loads the org file
(.json or .csv), computes the balanced card layout, and writes the
diagram in the requested formats.

Views:
  cards  positioned card diagram with elbow connectors (default)
  dot    Graphviz node-link diagram

Formats: svg (default), png, pdf, json (the raw layout).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			var err error
			opts.Collapsed, err = mergeCollapsed(collapsed, viewFile)
			if err != nil {
				return err
			}
			opts.Refresh = refresh
			if noConnectors {
				off := false
				opts.Connectors = &off
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")

	cmd.Flags().Float64VarP(&opts.AspectRatio, "aspect", "a", opts.AspectRatio, "target width/height ratio")
	cmd.Flags().StringVar(&collapsed, "collapsed", "", "comma-separated node ids to collapse")
	cmd.Flags().StringVar(&viewFile, "view-file", "", "view file produced by 'collapse'")
	cmd.Flags().StringVar(&opts.View, "view", pipeline.ViewCards, "view: cards (default), dot")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: simple (default), mono")
	cmd.Flags().BoolVar(&noConnectors, "no-connectors", false, "omit connector edges")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG resolution multiplier")

	return cmd
}

// runRender runs the full pipeline and writes all requested artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	root, err := org.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load org %s: %w", input, err)
	}
	ch := chart.FromTree(root)

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, ch, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := basePath(output, input)
	printSuccess("Render complete")
	for _, format := range opts.Formats {
		path := output
		if len(opts.Formats) > 1 || path == "" {
			path = base + "." + format
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(result.Stats.NodeCount, len(result.Layout.Cards), result.Cache.LayoutHit)

	return nil
}

// basePath derives the base output path from the output and input file
// paths. A format extension on the output path is stripped so multiple
// formats can share the base.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
