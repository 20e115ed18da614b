package core

import "fmt"

// Color is a 24-bit RGB color for a screen cell or draw item.
// The zero value means "terminal default".
type Color struct {
	R, G, B uint8
	Valid   bool
}

// RGB builds a valid color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Valid: true}
}

// Hex returns the color as "#rrggbb", or "" for the default color.
func (c Color) Hex() string {
	if !c.Valid {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Lerp blends two colors; t=0 yields c, t=1 yields other.
func (c Color) Lerp(other Color, t float64) Color {
	t = ClampF(t, 0, 1)
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t)
	}
	return RGB(mix(c.R, other.R), mix(c.G, other.G), mix(c.B, other.B))
}

// Palette colors used by HUD and overlays.
var (
	ColorDefault = Color{}
	ColorWhite   = RGB(235, 235, 235)
	ColorGray    = RGB(140, 140, 150)
	ColorBlack   = RGB(0, 0, 0)
	ColorRed     = RGB(220, 60, 60)
	ColorYellow  = RGB(255, 210, 0)
	ColorCyan    = RGB(50, 200, 255)
)
