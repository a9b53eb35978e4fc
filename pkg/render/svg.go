// Package render generates visual artifacts from computed layouts.
//
// The primary output is SVG, assembled directly from the layout's
// positioned cards and routed connectors. PNG and PDF are produced by
// converting the SVG with rsvg-convert; an alternative node-link view
// renders through Graphviz (see dot.go).
package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/pondevelopment/harkje/pkg/chart"
)

// defaultPadding is the whitespace added around the diagram bounds.
const defaultPadding = 24.0

// maxNameChars bounds card text length; longer values are truncated
// with an ellipsis. Card dimensions are fixed, content is not.
const (
	maxNameChars  = 22
	maxTitleChars = 26
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style      Style
	connectors bool
	padding    float64
}

// WithStyle sets the visual style (default Simple).
func WithStyle(s Style) SVGOption {
	return func(r *svgRenderer) { r.style = s }
}

// WithoutConnectors omits the connector edges.
func WithoutConnectors() SVGOption {
	return func(r *svgRenderer) { r.connectors = false }
}

// WithPadding sets the whitespace around the diagram bounds.
func WithPadding(p float64) SVGOption {
	return func(r *svgRenderer) { r.padding = p }
}

// RenderSVG renders the layout as an SVG card diagram. The viewBox is
// the layout's bounding rectangle plus padding, so the output is
// tight-cropped; viewers scale it to their viewport.
func RenderSVG(l chart.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{style: Simple{}, connectors: true, padding: defaultPadding}
	for _, opt := range opts {
		opt(&r)
	}

	minX := l.Bounds.MinX - r.padding
	minY := l.Bounds.MinY - r.padding
	width := l.Bounds.Width + 2*r.padding
	height := l.Bounds.Height + 2*r.padding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		minX, minY, width, height, width, height)
	fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#ffffff"/>`+"\n",
		minX, minY, width, height)

	if r.connectors {
		renderConnectors(&buf, l, r.style)
	}
	renderCards(&buf, l, r.style)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderConnectors draws one elbow polyline per edge. Both routes share
// the elbow shape; they differ in where the parent drop sits. The row
// midline and the channel midpoint both coincide with the parent card's
// horizontal center, which the layout engine guarantees.
func renderConnectors(buf *bytes.Buffer, l chart.Layout, style Style) {
	cards := make(map[string]chart.Card, len(l.Cards))
	for _, c := range l.Cards {
		cards[c.ID] = c
	}

	for _, e := range l.Edges {
		parent, pok := cards[e.From]
		child, cok := cards[e.To]
		if !pok || !cok {
			continue
		}
		px := parent.X
		pb := parent.Y + l.CardHeight
		cx := child.X
		ct := child.Y
		midY := (pb + ct) / 2

		fmt.Fprintf(buf,
			`  <polyline points="%.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="none" stroke="%s" stroke-width="1.5" class="edge edge-%s"/>`+"\n",
			px, pb, px, midY, cx, midY, cx, ct, style.Connector(), e.Route)
	}
}

// renderCards draws the card rectangles with name and title text.
func renderCards(buf *bytes.Buffer, l chart.Layout, style Style) {
	for _, c := range l.Cards {
		left := c.X - l.CardWidth/2
		fmt.Fprintf(buf,
			`  <rect id="card-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="6" fill="%s" stroke="%s" stroke-width="1.5" class="card card-%s"/>`+"\n",
			html.EscapeString(c.ID), left, c.Y, l.CardWidth, l.CardHeight,
			style.Fill(c.Department), style.Stroke(), c.Kind)

		name := truncate(c.Name, maxNameChars)
		title := truncate(c.Title, maxTitleChars)
		fmt.Fprintf(buf,
			`  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="13" font-weight="bold" fill="%s">%s</text>`+"\n",
			c.X, c.Y+l.CardHeight/2-4, style.Text(), html.EscapeString(name))
		if title != "" {
			fmt.Fprintf(buf,
				`  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="11" fill="%s">%s</text>`+"\n",
				c.X, c.Y+l.CardHeight/2+14, style.SubText(), html.EscapeString(title))
		}
	}
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
