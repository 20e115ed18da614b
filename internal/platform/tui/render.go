package tui

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-arkanoid/internal/assets"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// Glyphs used by the rasterizer.
const (
	glyphBall   = '●'
	glyphBullet = '╿'
	glyphLaser  = '┃'
	glyphSeam   = '▕'
)

const maxScaledCache = 32

type scaledKey struct {
	img  image.Image
	w, h int
}

// Rasterizer maps a draw list in playfield pixels onto a cell screen.
type Rasterizer struct {
	width, height float64
	scaled        map[scaledKey]image.Image
}

// NewRasterizer creates a rasterizer for a playfield of the given size.
func NewRasterizer(width, height float64) *Rasterizer {
	return &Rasterizer{
		width:  width,
		height: height,
		scaled: make(map[scaledKey]image.Image),
	}
}

// Draw paints the list onto s, back to front.
func (r *Rasterizer) Draw(dl core.DrawList, s *core.Screen) {
	s.Clear()
	if s.Width() == 0 || s.Height() == 0 {
		return
	}
	for _, it := range dl {
		switch it.Kind {
		case core.DrawBackground:
			r.drawBackground(it, s)
		case core.DrawBrick:
			r.drawBrick(it, s)
		case core.DrawPaddle:
			r.drawFilled(it, s)
		case core.DrawDrop:
			r.drawFilled(it, s)
			r.drawLabel(it, s, core.ColorBlack)
		case core.DrawBall:
			cx, cy := it.Rect.Center()
			x, y := r.cellAt(s, cx, cy)
			s.Paint(x, y, glyphBall, it.Color)
		case core.DrawBullet:
			cx, cy := it.Rect.Center()
			x, y := r.cellAt(s, cx, cy)
			s.Paint(x, y, glyphBullet, it.Color)
		case core.DrawLaser:
			r.drawLaser(it, s)
		case core.DrawPanel:
			x0, y0, x1, y1 := r.span(it.Rect, s)
			s.FillRect(x0, y0, x1-x0, y1-y0, core.Cell{Rune: ' ', BG: it.Color})
			s.DrawBox(x0, y0, x1-x0, y1-y0, core.ColorGray)
		case core.DrawText:
			r.drawText(it, s)
		}
	}
}

// scale returns the playfield-to-cell factors.
func (r *Rasterizer) scale(s *core.Screen) (sx, sy float64) {
	return r.width / float64(s.Width()), r.height / float64(s.Height())
}

// cellAt maps a playfield point to the cell containing it.
func (r *Rasterizer) cellAt(s *core.Screen, px, py float64) (int, int) {
	sx, sy := r.scale(s)
	return int(math.Floor(px / sx)), int(math.Floor(py / sy))
}

// span maps a rect to the half-open cell range it covers, at least one cell.
func (r *Rasterizer) span(rect core.Rect, s *core.Screen) (x0, y0, x1, y1 int) {
	sx, sy := r.scale(s)
	x0 = int(math.Floor(rect.X / sx))
	y0 = int(math.Floor(rect.Y / sy))
	x1 = int(math.Ceil(rect.Right() / sx))
	y1 = int(math.Ceil(rect.Bottom() / sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

func (r *Rasterizer) drawBackground(it core.DrawItem, s *core.Screen) {
	w, h := s.Width(), s.Height()
	if it.Image != nil {
		img := r.scaledImage(it.Image, w, h)
		b := img.Bounds()
		for y := range h {
			for x := range w {
				s.SetBG(x, y, toColor(img.At(b.Min.X+x, b.Min.Y+y)))
			}
		}
		return
	}
	for y := range h {
		t := 0.0
		if h > 1 {
			t = float64(y) / float64(h-1)
		}
		c := it.Gradient[0].Lerp(it.Gradient[1], t)
		for x := range w {
			s.SetBG(x, y, c)
		}
	}
}

func (r *Rasterizer) drawBrick(it core.DrawItem, s *core.Screen) {
	x0, y0, x1, y1 := r.span(it.Rect, s)
	seam := it.Color.Lerp(core.ColorBlack, 0.5)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.SetCell(x, y, core.Cell{Rune: ' ', BG: it.Color})
		}
		if x1-x0 > 1 {
			s.SetCell(x1-1, y, core.Cell{Rune: glyphSeam, FG: seam, BG: it.Color})
		}
	}
	r.drawLabel(it, s, core.ColorBlack)
}

// drawFilled paints a rect with its sprite if present, else a flat color.
func (r *Rasterizer) drawFilled(it core.DrawItem, s *core.Screen) {
	x0, y0, x1, y1 := r.span(it.Rect, s)
	if it.Image == nil {
		s.FillRect(x0, y0, x1-x0, y1-y0, core.Cell{Rune: ' ', BG: it.Color})
		return
	}
	img := r.scaledImage(it.Image, x1-x0, y1-y0)
	b := img.Bounds()
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			px := img.At(b.Min.X+x-x0, b.Min.Y+y-y0)
			if _, _, _, a := px.RGBA(); a == 0 {
				s.SetCell(x, y, core.Cell{Rune: ' ', BG: it.Color})
				continue
			}
			s.SetCell(x, y, core.Cell{Rune: ' ', BG: toColor(px)})
		}
	}
}

func (r *Rasterizer) drawLabel(it core.DrawItem, s *core.Screen, fg core.Color) {
	if it.Label == "" {
		return
	}
	x0, y0, x1, y1 := r.span(it.Rect, s)
	label := []rune(it.Label)
	x := x0 + (x1-x0-len(label))/2
	y := y0 + (y1-y0-1)/2
	for i, ch := range label {
		s.Paint(x+i, y, ch, fg)
	}
}

func (r *Rasterizer) drawLaser(it core.DrawItem, s *core.Screen) {
	cx, cy := it.Rect.Center()
	x, _ := r.cellAt(s, cx, cy)
	_, y0, _, y1 := r.span(it.Rect, s)
	for y := y0; y < y1; y++ {
		s.Paint(x, y, glyphLaser, it.Color)
	}
}

func (r *Rasterizer) drawText(it core.DrawItem, s *core.Screen) {
	label := it.Label
	fg := it.Color
	if it.Selected {
		label = "> " + label + " <"
		fg = core.ColorYellow
	}
	x, y := r.cellAt(s, it.Rect.X, it.Rect.Y)
	if it.Centered {
		x -= len([]rune(label)) / 2
	}
	s.DrawTextColored(x, y, label, fg)
}

// scaledImage resamples img to w×h cells, cached per source and size.
func (r *Rasterizer) scaledImage(img image.Image, w, h int) image.Image {
	k := scaledKey{img: img, w: w, h: h}
	if out, ok := r.scaled[k]; ok {
		return out
	}
	if len(r.scaled) >= maxScaledCache {
		clear(r.scaled)
	}
	out := assets.Scale(img, w, h)
	r.scaled[k] = out
	return out
}

func toColor(c color.Color) core.Color {
	cr, cg, cb, _ := c.RGBA()
	return core.RGB(uint8(cr>>8), uint8(cg>>8), uint8(cb>>8)) //#nosec G115 -- 16-bit channels shifted to 8 bits
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	styles := make(map[[2]core.Color]lipgloss.Style)
	styleFor := func(fg, bg core.Color) lipgloss.Style {
		k := [2]core.Color{fg, bg}
		if st, ok := styles[k]; ok {
			return st
		}
		st := lipgloss.NewStyle()
		if fg.Valid {
			st = st.Foreground(lipgloss.Color(fg.Hex()))
		}
		if bg.Valid {
			st = st.Background(lipgloss.Color(bg.Hex()))
		}
		styles[k] = st
		return st
	}

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.FG != start.FG || cell.BG != start.BG {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if !start.FG.Valid && !start.BG.Valid {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(start.FG, start.BG).Render(run.String()))
		}
	}
	return sb.String()
}
