package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pondevelopment/harkje/pkg/org"
)

// viewState is the on-disk format for a saved collapse selection.
type viewState struct {
	Collapsed []string `json:"collapsed"`
}

// collapseCommand creates the interactive collapse command.
func (c *CLI) collapseCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "collapse [org file]",
		Short: "Interactively choose subtrees to collapse",
		Long: `Interactively choose subtrees to collapse.

Opens a tree view of the hierarchy. Collapsed subtrees render as a
single card in layouts. The selection is saved as a view file that the
layout and render commands accept via --view-file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCollapse(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "view file (default: <input>.view.json)")

	return cmd
}

func (c *CLI) runCollapse(input, output string) error {
	root, err := org.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load org %s: %w", input, err)
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".view.json"
	}

	// Seed the picker with an existing selection so edits are additive.
	seed, _ := readViewState(outputPath)

	model := NewCollapseModel(root, seed)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("run picker: %w", err)
	}

	result, ok := final.(CollapseModel)
	if !ok || !result.Confirmed {
		printInfo("Cancelled, view file unchanged")
		return nil
	}

	ids := result.CollapsedIDs()
	if err := writeViewState(outputPath, viewState{Collapsed: ids}); err != nil {
		return fmt.Errorf("write view file %s: %w", outputPath, err)
	}

	printSuccess("Collapsed %d subtree(s)", len(ids))
	printFile(outputPath)
	printNewline()
	printNextStep("Render", fmt.Sprintf("harkje render %s --view-file %s", input, outputPath))
	return nil
}

// mergeCollapsed combines the --collapsed flag with ids from a view
// file, dropping duplicates.
func mergeCollapsed(flag, viewFile string) ([]string, error) {
	ids := parseCollapsed(flag)
	if viewFile != "" {
		fromFile, err := readViewState(viewFile)
		if err != nil {
			return nil, fmt.Errorf("read view file %s: %w", viewFile, err)
		}
		ids = append(ids, fromFile...)
	}
	seen := make(map[string]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

func readViewState(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var vs viewState
	if err := json.Unmarshal(data, &vs); err != nil {
		return nil, err
	}
	return vs.Collapsed, nil
}

func writeViewState(path string, vs viewState) error {
	data, err := json.MarshalIndent(vs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
