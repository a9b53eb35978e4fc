package layout

// Card holds the fixed geometry shared by every node in a pass. All
// cards have identical dimensions regardless of content; gaps and the
// connector channel are the only other quantities the engine measures in.
type Card struct {
	Width   float64 // card width (W)
	Height  float64 // card height (H)
	GapX    float64 // horizontal gap between siblings in a row (Gh)
	GapY    float64 // vertical gap between a parent and its child level (Gv)
	GapGrid float64 // gap between items and rows inside a grid block (Gg)
	Channel float64 // reserved connector channel width at a block center (C)
}

// DefaultCard returns the standard card geometry.
func DefaultCard() Card {
	return Card{
		Width:   180,
		Height:  72,
		GapX:    24,
		GapY:    48,
		GapGrid: 16,
		Channel: 36,
	}
}

// rowGap returns the gap used both between items within a split row and
// between consecutive rows of a multi-row block. Grid blocks pack with
// the tighter grid gap, wrap blocks reuse the sibling gap.
func (c Card) rowGap(k Kind) float64 {
	if k == KindGrid {
		return c.GapGrid
	}
	return c.GapX
}
