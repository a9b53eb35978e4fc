package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pondevelopment/harkje/pkg/org"
	"github.com/pondevelopment/harkje/pkg/org/gen"
)

// generateCommand creates the generate command for producing sample
// org hierarchies.
func (c *CLI) generateCommand() *cobra.Command {
	opts := gen.DefaultOptions()
	var output string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a sample org hierarchy",
		Long: `Generate a deterministic sample org hierarchy for testing and demos.

The same seed always produces the same tree, including node ids, so
generated files are safe to use in golden tests and cache keys.

Output format is chosen by file extension: .json (nested tree) or .csv
(flat id/parent_id records).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "org.json", "output file (.json or .csv)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", opts.Seed, "random seed")
	cmd.Flags().IntVar(&opts.Depth, "depth", opts.Depth, "hierarchy depth")
	cmd.Flags().IntVar(&opts.MinReports, "min-reports", opts.MinReports, "minimum direct reports per manager")
	cmd.Flags().IntVar(&opts.MaxReports, "max-reports", opts.MaxReports, "maximum direct reports per manager")

	return cmd
}

func (c *CLI) runGenerate(opts gen.Options, output string) error {
	p := newProgress(c.Logger)

	root, err := gen.Generate(opts)
	if err != nil {
		return err
	}

	if err := org.WriteFile(root, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	p.done(fmt.Sprintf("Generated %d nodes", root.Count()))

	printSuccess("Hierarchy generated")
	printFile(output)
	printNewline()
	printNextStep("Render", "harkje render "+output)
	return nil
}
