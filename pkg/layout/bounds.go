package layout

// bounds folds the card rectangles of all positioned nodes into the
// tree's bounding rectangle. Cards are W wide centered on X with their
// top edge at Y; subtree footprints never extend past their cards'
// union, so scanning cards is sufficient.
func (e *Engine) bounds(res *Result) Rect {
	if len(res.Order) == 0 {
		return Rect{}
	}

	first := res.Records[res.Order[0]]
	minX := first.X - e.card.Width/2
	maxX := first.X + e.card.Width/2
	minY := first.Y
	maxY := first.Y + e.card.Height

	for _, id := range res.Order[1:] {
		r := res.Records[id]
		if l := r.X - e.card.Width/2; l < minX {
			minX = l
		}
		if right := r.X + e.card.Width/2; right > maxX {
			maxX = right
		}
		if r.Y < minY {
			minY = r.Y
		}
		if b := r.Y + e.card.Height; b > maxY {
			maxY = b
		}
	}

	return Rect{MinX: minX, MinY: minY, Width: maxX - minX, Height: maxY - minY}
}
