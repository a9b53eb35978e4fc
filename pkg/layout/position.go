package layout

import "github.com/pondevelopment/harkje/pkg/org"

// place assigns absolute coordinates to n's card and recurses into its
// visible children, top-down. x is the card's horizontal center, y its
// top edge. Visit order (and therefore Order and Edges) is pre-order
// and fully determined by the input, which makes repeated passes over
// identical input bit-identical.
func (e *Engine) place(n *org.Node, index map[string]*org.Node, res *Result, x, y float64) {
	r := res.Records[n.ID]
	r.X, r.Y = x, y
	res.Order = append(res.Order, n.ID)

	kids := e.visibleChildren(n)
	if len(kids) == 0 {
		return
	}

	route := RouteMidline
	if r.Kind == KindGrid || r.Kind == KindWrap {
		route = RouteChannel
	}
	for _, c := range kids {
		res.Edges = append(res.Edges, Edge{From: n.ID, To: c.ID, Route: route})
	}

	switch r.Kind {
	case KindRow:
		e.placeRow(kids, index, res, x, y)
	case KindGrid, KindWrap:
		e.placeBlock(r, index, res, x, y)
	}
}

// placeRow centers the children's combined span under the parent. All
// children share one y; each is centered within its own width slot.
func (e *Engine) placeRow(kids []*org.Node, index map[string]*org.Node, res *Result, parentX, parentY float64) {
	total := 0.0
	for _, c := range kids {
		total += res.Records[c.ID].Width
	}
	total += float64(len(kids)-1) * e.card.GapX

	childY := parentY + e.card.Height + e.card.GapY
	running := parentX - total/2
	for _, c := range kids {
		w := res.Records[c.ID].Width
		e.place(c, index, res, running+w/2, childY)
		running += w + e.card.GapX
	}
}

// placeBlock lays out grid/wrap rows around the reserved channel. Each
// split row packs its left half leftward from parentX − C/2 (rightmost
// to leftmost so sibling order still reads left to right) and its right
// half rightward from parentX + C/2. A lone final-row child sits
// directly on the channel axis.
func (e *Engine) placeBlock(r *Record, index map[string]*org.Node, res *Result, parentX, parentY float64) {
	gap := e.card.rowGap(r.Kind)
	currentY := parentY + e.card.Height + e.card.GapY

	for i, row := range r.Rows {
		if i == len(r.Rows)-1 && len(row) == 1 {
			e.place(index[row[0]], index, res, parentX, currentY)
		} else {
			left, right := splitRow(row)

			cursor := parentX - e.card.Channel/2
			for j := len(left) - 1; j >= 0; j-- {
				w := res.Records[left[j]].Width
				e.place(index[left[j]], index, res, cursor-w/2, currentY)
				cursor -= w + gap
			}

			cursor = parentX + e.card.Channel/2
			for _, id := range right {
				w := res.Records[id].Width
				e.place(index[id], index, res, cursor+w/2, currentY)
				cursor += w + gap
			}
		}
		currentY += rowMaxHeight(row, res.Records) + gap
	}
}
