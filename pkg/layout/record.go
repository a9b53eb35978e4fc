package layout

// Kind classifies how a parent arranges its visible children.
type Kind int

const (
	// KindLeaf marks a node with no visible children. Collapsed nodes
	// are leaves regardless of their hidden subtree.
	KindLeaf Kind = iota
	// KindRow places all children on a single horizontal line centered
	// under the parent.
	KindRow
	// KindGrid arranges an all-leaf sibling set into a near-square
	// block of rows.
	KindGrid
	// KindWrap greedily packs mixed-depth children into multiple rows
	// sized toward the target aspect ratio.
	KindWrap
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindRow:
		return "row"
	case KindGrid:
		return "grid"
	case KindWrap:
		return "wrap"
	default:
		return "unknown"
	}
}

// Record holds the per-node layout state produced by one pass. Width
// and Height describe the full subtree footprint; X is the horizontal
// center of the node's own card and Y its top edge. Rows is populated
// only for Grid and Wrap parents and lists child ids in placement order.
//
// Records live in an external map keyed by node id, never on the source
// tree, so passes cannot mutate their input and can run in isolation.
type Record struct {
	Width  float64
	Height float64
	Kind   Kind
	Rows   [][]string
	X      float64
	Y      float64
}

// Route describes how a parent→child connector is drawn.
type Route int

const (
	// RouteMidline routes the edge through the vertical midline of a
	// row parent's child band.
	RouteMidline Route = iota
	// RouteChannel routes the edge through the reserved central channel
	// of a grid or wrap parent.
	RouteChannel
)

// String returns the lowercase name of the route.
func (r Route) String() string {
	if r == RouteChannel {
		return "channel"
	}
	return "midline"
}

// Edge is one parent→child connector in placement order.
type Edge struct {
	From  string
	To    string
	Route Route
}

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	MinX   float64
	MinY   float64
	Width  float64
	Height float64
}

// Transform maps layout coordinates into a viewport: scale first, then
// translate.
type Transform struct {
	Scale float64
	TX    float64
	TY    float64
}

// Fit computes the uniform-scale transform that centers the rectangle
// inside a viewport of the given dimensions. Viewport dimensions affect
// only this framing, never layout shape decisions. A degenerate
// rectangle or viewport yields the identity transform.
func (r Rect) Fit(viewportWidth, viewportHeight float64) Transform {
	if r.Width <= 0 || r.Height <= 0 || viewportWidth <= 0 || viewportHeight <= 0 {
		return Transform{Scale: 1}
	}
	scale := viewportWidth / r.Width
	if s := viewportHeight / r.Height; s < scale {
		scale = s
	}
	return Transform{
		Scale: scale,
		TX:    (viewportWidth-r.Width*scale)/2 - r.MinX*scale,
		TY:    (viewportHeight-r.Height*scale)/2 - r.MinY*scale,
	}
}

// Result is the immutable output of one full layout pass. Order lists
// visible node ids in pre-order and fixes the deterministic iteration
// sequence for consumers.
type Result struct {
	Records map[string]*Record
	Order   []string
	Edges   []Edge
	Bounds  Rect
}
