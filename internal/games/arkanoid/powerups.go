package arkanoid

import "github.com/vovakirdan/tui-arkanoid/internal/core"

// PowerUp is the closed set of pickups a brick can carry.
type PowerUp int

const (
	PowerUpNone PowerUp = iota
	PowerUpExpand
	PowerUpBonusBalls
	PowerUpLaser
	PowerUpGun
	PowerUpHeart
)

// autoPowerUps is the order used when a cell gets a hashed power-up.
var autoPowerUps = [...]PowerUp{PowerUpExpand, PowerUpBonusBalls, PowerUpLaser, PowerUpGun, PowerUpHeart}

// mapLetters assigns forced power-ups in level files.
var mapLetters = map[rune]PowerUp{
	'E': PowerUpExpand,
	'B': PowerUpBonusBalls,
	'L': PowerUpLaser,
	'Z': PowerUpLaser,
	'G': PowerUpGun,
	'H': PowerUpHeart,
}

// powerUpStyle is how a power-up looks on a brick and as a falling drop.
type powerUpStyle struct {
	Name   string
	Letter string
	Brick  core.Color
	Drop   core.Color
}

// powerUpStyles is the single render table for power-ups.
var powerUpStyles = map[PowerUp]powerUpStyle{
	PowerUpExpand:     {Name: "Expand", Letter: "E", Brick: core.RGB(160, 90, 220), Drop: core.RGB(50, 200, 255)},
	PowerUpBonusBalls: {Name: "Bonus Balls", Letter: "B", Brick: core.RGB(255, 160, 60), Drop: core.RGB(255, 200, 50)},
	PowerUpLaser:      {Name: "Laser", Letter: "L", Brick: core.RGB(80, 220, 120), Drop: core.RGB(120, 255, 120)},
	PowerUpGun:        {Name: "Gun", Letter: "G", Brick: core.RGB(255, 210, 0), Drop: core.RGB(255, 100, 140)},
	PowerUpHeart:      {Name: "Heart", Letter: "H", Brick: core.RGB(220, 60, 60), Drop: core.RGB(255, 80, 90)},
}

// Plain brick colors.
var (
	colorNormalBrick      = core.RGB(120, 170, 255)
	colorHardBrick        = core.RGB(40, 180, 90)
	colorUnbreakableBrick = core.RGB(130, 130, 140)
)

// String returns the display name of the power-up.
func (p PowerUp) String() string {
	if s, ok := powerUpStyles[p]; ok {
		return s.Name
	}
	if p == PowerUpNone {
		return "None"
	}
	return "Unknown"
}

// Letter returns the one-letter label, or "" for none.
func (p PowerUp) Letter() string {
	return powerUpStyles[p].Letter
}

// Valid reports whether p is one of the five real power-ups.
func (p PowerUp) Valid() bool {
	_, ok := powerUpStyles[p]
	return ok
}

// brickColor picks the fill color of a brick.
func brickColor(b *Brick) core.Color {
	if b.IsUnbreakable() {
		return colorUnbreakableBrick
	}
	if s, ok := powerUpStyles[b.PowerUp()]; ok {
		return s.Brick
	}
	if b.Kind() == BrickHard {
		return colorHardBrick
	}
	return colorNormalBrick
}

// Drop is a falling pickup. X, Y is its center.
type Drop struct {
	Kind PowerUp
	X, Y float64
	VY   float64
	Size float64
}

// Rect returns the drop's bounding box.
func (d Drop) Rect() core.Rect {
	return core.CenteredRect(d.X, d.Y, d.Size, d.Size)
}

// DropManager owns the falling pickups.
type DropManager struct {
	drops []Drop
	size  float64
	speed float64
}

// NewDropManager creates a manager whose drops have the given size and
// descent speed.
func NewDropManager(size, speed float64) *DropManager {
	return &DropManager{size: size, speed: speed}
}

// Spawn adds a drop centered at (x, y).
func (m *DropManager) Spawn(kind PowerUp, x, y float64) {
	m.drops = append(m.drops, Drop{Kind: kind, X: x, Y: y, VY: m.speed, Size: m.size})
}

// Update moves every drop, discards the ones below bottom and returns the
// kinds the paddle collected this tick, in spawn order.
func (m *DropManager) Update(paddle core.Rect, bottom float64) []PowerUp {
	var collected []PowerUp
	kept := m.drops[:0]
	for _, d := range m.drops {
		d.Y += d.VY
		switch {
		case d.Y > bottom:
			// fell off
		case d.Rect().Intersects(paddle):
			collected = append(collected, d.Kind)
		default:
			kept = append(kept, d)
		}
	}
	m.drops = kept
	return collected
}

// Drops returns the active drops. The slice is only valid until the next
// Update or Spawn.
func (m *DropManager) Drops() []Drop {
	return m.drops
}

// Clear removes every drop.
func (m *DropManager) Clear() {
	m.drops = m.drops[:0]
}
