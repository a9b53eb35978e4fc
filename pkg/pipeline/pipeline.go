// Package pipeline provides the core layout pipeline for harkje.
//
// This package implements the complete ingest → layout → render pipeline
// used by both the CLI and the HTTP API. Centralizing it here keeps
// behavior consistent across entry points and avoids duplicating cache
// logic.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Ingest: load and validate a hierarchy snapshot (chart)
//  2. Layout: run the balanced hybrid layout engine over the pruned tree
//  3. Render: generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    AspectRatio: 1.6,
//	    Formats:     []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, ch, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/pondevelopment/harkje/pkg/cache"
	"github.com/pondevelopment/harkje/pkg/errors"
	"github.com/pondevelopment/harkje/pkg/layout"
	"github.com/pondevelopment/harkje/pkg/render"
)

// Default values shared by CLI and API.
const (
	// DefaultAspectRatio biases layouts toward a modestly wide shape.
	DefaultAspectRatio = 1.6

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0
)

// DefaultStyle is the default visual style.
const DefaultStyle = render.StyleNameSimple

// View constants selecting the diagram flavor.
const (
	ViewCards = "cards" // positioned card diagram (the layout engine)
	ViewDot   = "dot"   // Graphviz node-link view
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidViews is the set of supported views.
var ValidViews = map[string]bool{
	ViewCards: true,
	ViewDot:   true,
}

// Options contains all configuration for the layout pipeline.
// The struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	AspectRatio float64  `json:"aspect_ratio,omitempty"`
	Collapsed   []string `json:"collapsed,omitempty"`
	CardWidth   float64  `json:"card_width,omitempty"`
	CardHeight  float64  `json:"card_height,omitempty"`
	GapX        float64  `json:"gap_x,omitempty"`
	GapY        float64  `json:"gap_y,omitempty"`
	GapGrid     float64  `json:"gap_grid,omitempty"`
	Channel     float64  `json:"channel,omitempty"`

	// Viewport dimensions, used only for auto-fit framing. They never
	// alter layout shape decisions.
	ViewportWidth  float64 `json:"viewport_width,omitempty"`
	ViewportHeight float64 `json:"viewport_height,omitempty"`

	// Render options
	View       string   `json:"view,omitempty"`
	Formats    []string `json:"formats,omitempty"`
	Style      string   `json:"style,omitempty"`
	Connectors *bool    `json:"connectors,omitempty"` // nil means true
	Scale      float64  `json:"scale,omitempty"`

	// Refresh bypasses the cache for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if _, ok := render.StyleByName(style); !ok {
		return fmt.Errorf("invalid style: %q (must be one of: simple, mono)", style)
	}
	return nil
}

// ValidateView checks that a view is valid.
func ValidateView(view string) error {
	if !ValidViews[view] {
		return fmt.Errorf("invalid view: %q (must be one of: cards, dot)", view)
	}
	return nil
}

// ValidateAndSetDefaults checks all fields and applies defaults for the
// full pipeline. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults applies layout defaults.
func (o *Options) SetLayoutDefaults() {
	if o.AspectRatio == 0 {
		o.AspectRatio = DefaultAspectRatio
	}
	card := layout.DefaultCard()
	if o.CardWidth == 0 {
		o.CardWidth = card.Width
	}
	if o.CardHeight == 0 {
		o.CardHeight = card.Height
	}
	if o.GapX == 0 {
		o.GapX = card.GapX
	}
	if o.GapY == 0 {
		o.GapY = card.GapY
	}
	if o.GapGrid == 0 {
		o.GapGrid = card.GapGrid
	}
	if o.Channel == 0 {
		o.Channel = card.Channel
	}
	// Sorted collapsed ids keep cache keys stable across callers.
	sort.Strings(o.Collapsed)
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
// This is the caller-side gate the layout engine relies on: a
// non-positive or non-finite aspect ratio is rejected here, never
// clamped inside the engine.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateAspectRatio(o.AspectRatio); err != nil {
		return err
	}
	if o.CardWidth <= 0 || o.CardHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "card dimensions must be positive")
	}
	return nil
}

// SetRenderDefaults applies render defaults.
func (o *Options) SetRenderDefaults() {
	if o.View == "" {
		o.View = ViewCards
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateView(o.View); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// Card assembles the engine card geometry from the options.
func (o *Options) Card() layout.Card {
	return layout.Card{
		Width:   o.CardWidth,
		Height:  o.CardHeight,
		GapX:    o.GapX,
		GapY:    o.GapY,
		GapGrid: o.GapGrid,
		Channel: o.Channel,
	}
}

// DrawConnectors reports whether connector edges should be rendered.
func (o *Options) DrawConnectors() bool {
	return o.Connectors == nil || *o.Connectors
}

// LayoutKeyOpts returns cache key options for layout computation.
// Collapsed is sorted by the runner before key generation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		AspectRatio: o.AspectRatio,
		Collapsed:   o.Collapsed,
		CardWidth:   o.CardWidth,
		CardHeight:  o.CardHeight,
		GapX:        o.GapX,
		GapY:        o.GapY,
		GapGrid:     o.GapGrid,
		Channel:     o.Channel,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Style:      o.Style,
		View:       o.View,
		Connectors: o.DrawConnectors(),
	}
}
