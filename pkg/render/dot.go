package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/pondevelopment/harkje/pkg/chart"
)

// ToDOT converts a chart to Graphviz DOT format for an alternative
// node-link view of the hierarchy. The resulting DOT string can be
// rendered with [RenderDOTSVG], [RenderDOTPNG], or [RenderDOTPDF].
func ToDOT(c chart.Chart) string {
	var buf bytes.Buffer
	buf.WriteString("digraph org {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, r := range c.Records {
		label := recordLabel(r.Name, r.Title)
		if label == "" {
			label = r.ID
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", r.ID, label)
	}

	buf.WriteString("\n")
	for _, r := range c.Records {
		if r.ParentID != "" {
			fmt.Fprintf(&buf, "  %q -> %q;\n", r.ParentID, r.ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOTSVG renders a DOT graph to SVG using Graphviz.
func RenderDOTSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderDOTPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image for high-DPI displays.
func RenderDOTPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderDOTSVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPNG(svg, scale)
}

// RenderDOTPDF renders a DOT graph as PDF via SVG conversion.
func RenderDOTPDF(dot string) ([]byte, error) {
	svg, err := RenderDOTSVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPDF(svg)
}

func recordLabel(name, title string) string {
	name = strings.TrimSpace(name)
	title = strings.TrimSpace(title)
	switch {
	case name == "":
		return title
	case title == "":
		return name
	default:
		return name + "\n" + title
	}
}
