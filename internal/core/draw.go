package core

import "image"

// DrawKind classifies a draw item so the rasterizer can pick a glyph.
type DrawKind int

const (
	DrawBackground DrawKind = iota
	DrawBrick
	DrawPaddle
	DrawBall
	DrawDrop
	DrawBullet
	DrawLaser
	DrawText
	DrawPanel
)

// DrawItem is one entry of the back-to-front draw list emitted each frame.
// Rect is in playfield pixels, except for DrawText and DrawPanel items which
// are laid out relative to the playfield as well.
type DrawItem struct {
	Kind     DrawKind
	Rect     Rect
	Color    Color
	Label    string
	Image    image.Image // optional sprite or background
	Gradient [2]Color    // top/bottom colors for a background without image
	Selected bool        // highlighted overlay entry
	Centered bool        // text: Rect.X is the horizontal center
}

// DrawList is an ordered list of draw items, back to front.
type DrawList []DrawItem

// Add appends an item.
func (l *DrawList) Add(item DrawItem) {
	*l = append(*l, item)
}

// Count returns how many items of the given kind are in the list.
func (l DrawList) Count(kind DrawKind) int {
	n := 0
	for _, it := range l {
		if it.Kind == kind {
			n++
		}
	}
	return n
}
