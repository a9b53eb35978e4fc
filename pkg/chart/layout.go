package chart

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/pondevelopment/harkje/pkg/layout"
	"github.com/pondevelopment/harkje/pkg/org"
)

// Layout kind names. These mirror layout.Kind for serialization.
const (
	KindLeaf = "leaf"
	KindRow  = "row"
	KindGrid = "grid"
	KindWrap = "wrap"
)

// Connector route names. These mirror layout.Route for serialization.
const (
	RouteMidline = "midline"
	RouteChannel = "channel"
)

// Layout is the serialization format for one positioned card diagram.
// It captures everything downstream consumers need: per-node geometry,
// the connector edge list with routing, the bounding rectangle for
// auto-fit and tight-crop export, and the inputs that shaped the pass.
type Layout struct {
	AspectRatio float64  `json:"aspect_ratio" bson:"aspect_ratio"`
	Collapsed   []string `json:"collapsed,omitempty" bson:"collapsed,omitempty"`

	// CardWidth/CardHeight are the fixed card dimensions every node is
	// drawn with; per-card Width/Height below are subtree footprints.
	CardWidth  float64 `json:"card_width" bson:"card_width"`
	CardHeight float64 `json:"card_height" bson:"card_height"`

	Cards  []Card `json:"cards" bson:"cards"`
	Edges  []Edge `json:"edges,omitempty" bson:"edges,omitempty"`
	Bounds Rect   `json:"bounds" bson:"bounds"`
}

// Card is one positioned node. X is the horizontal center of the card,
// Y its top edge; Width and Height describe the node's subtree footprint.
type Card struct {
	ID         string  `json:"id" bson:"id"`
	Name       string  `json:"name,omitempty" bson:"name,omitempty"`
	Title      string  `json:"title,omitempty" bson:"title,omitempty"`
	Department string  `json:"department,omitempty" bson:"department,omitempty"`
	X          float64 `json:"x" bson:"x"`
	Y          float64 `json:"y" bson:"y"`
	Width      float64 `json:"width" bson:"width"`
	Height     float64 `json:"height" bson:"height"`
	Kind       string  `json:"kind" bson:"kind"`
}

// Edge is one parent→child connector with its routing rule.
type Edge struct {
	From  string `json:"from" bson:"from"`
	To    string `json:"to" bson:"to"`
	Route string `json:"route" bson:"route"`
}

// Rect is the bounding rectangle of a positioned diagram.
type Rect struct {
	MinX   float64 `json:"min_x" bson:"min_x"`
	MinY   float64 `json:"min_y" bson:"min_y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Export converts an engine result into the serialization format. Cards
// follow the result's pre-order; Collapsed is sorted for stable output.
func Export(root *org.Node, res *layout.Result, card layout.Card, aspectRatio float64, collapsed []string) Layout {
	index := make(map[string]*org.Node, len(res.Order))
	root.Walk(func(n *org.Node) { index[n.ID] = n })

	l := Layout{
		AspectRatio: aspectRatio,
		CardWidth:   card.Width,
		CardHeight:  card.Height,
		Cards:       make([]Card, 0, len(res.Order)),
		Edges:       make([]Edge, 0, len(res.Edges)),
		Bounds: Rect{
			MinX:   res.Bounds.MinX,
			MinY:   res.Bounds.MinY,
			Width:  res.Bounds.Width,
			Height: res.Bounds.Height,
		},
	}

	if len(collapsed) > 0 {
		l.Collapsed = slices.Clone(collapsed)
		slices.Sort(l.Collapsed)
	}

	for _, id := range res.Order {
		r := res.Records[id]
		n := index[id]
		l.Cards = append(l.Cards, Card{
			ID:         id,
			Name:       n.Name,
			Title:      n.Title,
			Department: n.Department,
			X:          r.X,
			Y:          r.Y,
			Width:      r.Width,
			Height:     r.Height,
			Kind:       r.Kind.String(),
		})
	}

	for _, e := range res.Edges {
		l.Edges = append(l.Edges, Edge{From: e.From, To: e.To, Route: e.Route.String()})
	}

	return l
}

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout. A layout with
// no cards is rejected as malformed.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if len(l.Cards) == 0 {
		return Layout{}, fmt.Errorf("layout must contain cards")
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
