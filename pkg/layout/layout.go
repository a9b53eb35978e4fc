// Package layout implements the balanced hybrid tree-layout engine.
//
// Given a rooted hierarchy, a target aspect-ratio preference and a set
// of collapsed node ids, the engine computes exact, overlap-free 2D
// coordinates and a layout classification for every visible node. It is
// purely algorithmic: no iterative optimization, no backtracking.
//
// A pass runs three stages:
//
//  1. SubtreeSizer (post-order): each node's footprint and Kind from
//     its already-sized children
//  2. NodePositioner (pre-order): absolute coordinates honoring each
//     node's Kind, symmetric around the reserved connector channel
//  3. BoundsAggregator: bounding rectangle over all positioned cards
//
// The engine is a pure function of (tree, collapsed set, aspect ratio):
// each Build consumes one immutable snapshot and produces one immutable
// [Result], with no state carried between passes. Input validation is
// the caller's job: the hierarchy must satisfy the pkg/org invariants
// and the aspect ratio must be positive and finite before Build is
// invoked; the passes themselves have no recovery path for bad input.
package layout

import "github.com/pondevelopment/harkje/pkg/org"

// Heuristic thresholds for layout classification. These are fixed tuning
// constants: grids need more than three all-leaf children, wraps need at
// least three children and a linear row half again wider than the target
// shape allows.
const (
	gridMinChildren = 4
	wrapMinChildren = 3
	wrapRatioFactor = 1.5
)

// Engine computes layouts for one (card geometry, aspect ratio,
// collapsed set) configuration. Engines are cheap; build a fresh one
// whenever any of those inputs change.
type Engine struct {
	card      Card
	ratio     float64
	collapsed map[string]bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithCard overrides the default card geometry.
func WithCard(c Card) Option {
	return func(e *Engine) { e.card = c }
}

// WithCollapsed marks node ids whose children are excluded from the
// pass. A collapsed node still participates as a leaf-sized card.
func WithCollapsed(ids ...string) Option {
	return func(e *Engine) {
		for _, id := range ids {
			e.collapsed[id] = true
		}
	}
}

// New creates an engine targeting the given aspect ratio. The ratio
// must be positive and finite; see the package documentation for the
// input contract.
func New(aspectRatio float64, opts ...Option) *Engine {
	e := &Engine{
		card:      DefaultCard(),
		ratio:     aspectRatio,
		collapsed: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Card returns the card geometry the engine lays out with.
func (e *Engine) Card() Card { return e.card }

// Build runs one full sizing → positioning → bounds pass over the
// hierarchy, anchoring the root's card center at (x0, y0). The source
// tree is never mutated; all derived state lives in the returned Result.
func (e *Engine) Build(root *org.Node, x0, y0 float64) *Result {
	res := &Result{Records: make(map[string]*Record)}

	index := make(map[string]*org.Node)
	e.index(root, index)

	e.size(root, res.Records)
	e.place(root, index, res, x0, y0)
	res.Bounds = e.bounds(res)

	return res
}

// visibleChildren applies the collapse filter: a collapsed node exposes
// no children to the pass.
func (e *Engine) visibleChildren(n *org.Node) []*org.Node {
	if e.collapsed[n.ID] {
		return nil
	}
	return n.Children
}

// index maps visible node ids to their tree nodes for row lookups
// during positioning.
func (e *Engine) index(n *org.Node, idx map[string]*org.Node) {
	idx[n.ID] = n
	for _, c := range e.visibleChildren(n) {
		e.index(c, idx)
	}
}
