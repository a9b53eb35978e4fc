package layout

import (
	"math"

	"github.com/pondevelopment/harkje/pkg/org"
)

// size computes the footprint, kind and row partition for n and all
// visible descendants, bottom-up. Children are fully sized before their
// parent's classification is decided.
func (e *Engine) size(n *org.Node, recs map[string]*Record) *Record {
	kids := e.visibleChildren(n)

	if len(kids) == 0 {
		r := &Record{Width: e.card.Width, Height: e.card.Height, Kind: KindLeaf}
		recs[n.ID] = r
		return r
	}

	childRecs := make([]*Record, len(kids))
	for i, c := range kids {
		childRecs[i] = e.size(c, recs)
	}

	r := &Record{Kind: e.classify(kids, childRecs)}
	switch r.Kind {
	case KindGrid:
		r.Rows = e.gridRows(kids)
	case KindWrap:
		r.Rows = e.wrapRows(kids, childRecs)
	}

	e.footprint(r, childRecs, recs)
	recs[n.ID] = r
	return r
}

// classify picks the layout kind for a parent from its sized children.
func (e *Engine) classify(kids []*org.Node, childRecs []*Record) Kind {
	if len(kids) >= gridMinChildren && allLeaves(childRecs) {
		return KindGrid
	}

	linear := linearWidth(childRecs, e.card.GapX)
	shape := linear / (e.card.Height + e.card.GapY + maxHeight(childRecs))
	if shape > e.ratio*wrapRatioFactor && len(kids) >= wrapMinChildren {
		return KindWrap
	}
	return KindRow
}

// gridRows partitions an all-leaf sibling set into consecutive rows of
// cols = ceil(sqrt(count × W/H)) children; the final row may be shorter.
func (e *Engine) gridRows(kids []*org.Node) [][]string {
	count := len(kids)
	cols := int(math.Ceil(math.Sqrt(float64(count) * e.card.Width / e.card.Height)))
	if cols < 1 {
		cols = 1
	}

	var rows [][]string
	for start := 0; start < count; start += cols {
		end := start + cols
		if end > count {
			end = count
		}
		row := make([]string, 0, end-start)
		for _, k := range kids[start:end] {
			row = append(row, k.ID)
		}
		rows = append(rows, row)
	}
	return rows
}

// wrapRows greedily accumulates children into rows no wider than the
// ideal row width derived from the target aspect ratio. The first child
// of an empty row is never rejected, so every row is non-empty and the
// packing terminates after one scan.
func (e *Engine) wrapRows(kids []*org.Node, childRecs []*Record) [][]string {
	linear := linearWidth(childRecs, e.card.GapX)
	ideal := math.Sqrt(linear * maxHeight(childRecs) * e.ratio)

	var rows [][]string
	var row []string
	rowWidth := 0.0
	for i, k := range kids {
		w := childRecs[i].Width
		if len(row) > 0 && rowWidth+e.card.GapX+w > ideal {
			rows = append(rows, row)
			row = nil
			rowWidth = 0
		}
		if len(row) > 0 {
			rowWidth += e.card.GapX
		}
		row = append(row, k.ID)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

// footprint aggregates the subtree footprint of r from its children.
func (e *Engine) footprint(r *Record, childRecs []*Record, recs map[string]*Record) {
	switch r.Kind {
	case KindRow:
		r.Width = linearWidth(childRecs, e.card.GapX)
		r.Height = e.card.Height + e.card.GapY + maxHeight(childRecs)

	case KindGrid, KindWrap:
		gap := e.card.rowGap(r.Kind)
		var width, blockHeight float64
		for i, row := range r.Rows {
			width = math.Max(width, e.rowWidth(r, row, i, recs))
			blockHeight += rowMaxHeight(row, recs)
		}
		r.Width = width
		r.Height = e.card.Height + e.card.GapY + blockHeight + float64(len(r.Rows)-1)*gap
	}
}

// rowWidth computes the packed width of one block row. Every row except
// a lone final child is split into left/right halves around the channel
// so the parent's connector stays centered; the row is as wide as twice
// its wider half plus half the channel on each side.
func (e *Engine) rowWidth(r *Record, row []string, rowIdx int, recs map[string]*Record) float64 {
	if rowIdx == len(r.Rows)-1 && len(row) == 1 {
		return recs[row[0]].Width
	}
	gap := e.card.rowGap(r.Kind)
	left, right := splitRow(row)
	lw := packedWidth(left, gap, recs)
	rw := packedWidth(right, gap, recs)
	return 2 * math.Max(lw+e.card.Channel/2, rw+e.card.Channel/2)
}

// splitRow divides a row into a left half of ceil(n/2) children and a
// right half with the remainder.
func splitRow(row []string) (left, right []string) {
	mid := (len(row) + 1) / 2
	return row[:mid], row[mid:]
}

// packedWidth sums the widths of ids plus gaps between them.
func packedWidth(ids []string, gap float64, recs map[string]*Record) float64 {
	if len(ids) == 0 {
		return 0
	}
	total := float64(len(ids)-1) * gap
	for _, id := range ids {
		total += recs[id].Width
	}
	return total
}

// rowMaxHeight returns the tallest footprint among the row's children.
func rowMaxHeight(ids []string, recs map[string]*Record) float64 {
	max := 0.0
	for _, id := range ids {
		if h := recs[id].Height; h > max {
			max = h
		}
	}
	return max
}

func allLeaves(recs []*Record) bool {
	for _, r := range recs {
		if r.Kind != KindLeaf {
			return false
		}
	}
	return true
}

func linearWidth(recs []*Record, gap float64) float64 {
	total := float64(len(recs)-1) * gap
	for _, r := range recs {
		total += r.Width
	}
	return total
}

func maxHeight(recs []*Record) float64 {
	max := 0.0
	for _, r := range recs {
		if r.Height > max {
			max = r.Height
		}
	}
	return max
}
