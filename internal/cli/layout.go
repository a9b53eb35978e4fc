package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pondevelopment/harkje/pkg/chart"
	"github.com/pondevelopment/harkje/pkg/org"
	"github.com/pondevelopment/harkje/pkg/pipeline"
)

// layoutCommand creates the layout command for computing card layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output    string
		noCache   bool
		refresh   bool
		collapsed string
		viewFile  string
	)
	opts := c.pipelineOptions()

	cmd := &cobra.Command{
		Use:   "layout [org file]",
		Short: "Compute a card layout from an org hierarchy",
		Long: `Compute a card layout from an org hierarchy.

The layout command takes an org file (.json or .csv) and computes card
positions using the balanced hybrid layout: each subtree is shaped as a
single row, a grid, or wrapped rows depending on its size and the
target aspect ratio. The output is a layout.json file that can be
rendered to SVG/PNG/PDF with the 'render' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			opts.Collapsed, err = mergeCollapsed(collapsed, viewFile)
			if err != nil {
				return err
			}
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")

	cmd.Flags().Float64VarP(&opts.AspectRatio, "aspect", "a", opts.AspectRatio, "target width/height ratio")
	cmd.Flags().StringVar(&collapsed, "collapsed", "", "comma-separated node ids to collapse")
	cmd.Flags().StringVar(&viewFile, "view-file", "", "view file produced by 'collapse'")
	cmd.Flags().Float64Var(&opts.CardWidth, "card-width", opts.CardWidth, "card width")
	cmd.Flags().Float64Var(&opts.CardHeight, "card-height", opts.CardHeight, "card height")

	return cmd
}

// runLayout loads the hierarchy, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	root, err := org.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load org %s: %w", input, err)
	}
	ch := chart.FromTree(root)

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	l, cacheHit, err := runner.Layout(ctx, ch, &opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := chart.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(root.Count(), len(l.Cards), cacheHit)
	printNewline()
	printNextStep("Render", "harkje render "+input)

	return nil
}
