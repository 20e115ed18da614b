// Package arkanoid implements the brick-breaker gameplay core: entities,
// level model, collision engine, power-ups and the game state machine.
package arkanoid

import (
	"math"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// Ball is a moving circle. Boundary handling lives in the physics functions.
type Ball struct {
	X, Y   float64 // Center
	R      float64
	VX, VY float64
}

// Update advances the ball by its velocity.
func (b *Ball) Update() {
	b.X += b.VX
	b.Y += b.VY
}

// Rect returns the ball's bounding box.
func (b *Ball) Rect() core.Rect {
	return core.NewRect(b.X-b.R, b.Y-b.R, 2*b.R, 2*b.R)
}

// Paddle is the player's bat. X, Y is the top-left corner.
type Paddle struct {
	X, Y  float64
	W, H  float64
	Speed float64 // pixels per tick
	Inset float64 // gap kept from each side wall
}

// Move shifts the paddle by dir*Speed and keeps it inside the walls.
func (p *Paddle) Move(dir int, screenW float64) {
	p.X += float64(dir) * p.Speed
	p.Clamp(screenW)
}

// Clamp pulls the paddle back between the insets.
func (p *Paddle) Clamp(screenW float64) {
	p.X = core.ClampF(p.X, p.Inset, screenW-p.Inset-p.W)
}

// CenterX returns the horizontal center.
func (p *Paddle) CenterX() float64 {
	return p.X + p.W/2
}

// Rect returns the paddle's bounding box.
func (p *Paddle) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// BrickKind is the class of a brick.
type BrickKind int

const (
	BrickNormal      BrickKind = iota // 1 hit
	BrickHard                         // 2 hits
	BrickUnbreakable                  // never destroyed
)

// unbreakableHP stands in for infinite hit points.
const unbreakableHP = math.MaxInt

// String returns the name of the brick class.
func (k BrickKind) String() string {
	switch k {
	case BrickNormal:
		return "normal"
	case BrickHard:
		return "hard"
	case BrickUnbreakable:
		return "unbreakable"
	default:
		return "?"
	}
}

// Brick is one cell of a level. Position, class and power-up never change;
// only the hit points do.
type Brick struct {
	rect    core.Rect
	kind    BrickKind
	hp      int
	powerUp PowerUp
}

// NewBrick creates a brick of the given class. Unbreakable bricks never
// carry a power-up.
func NewBrick(kind BrickKind, rect core.Rect, pu PowerUp) *Brick {
	b := &Brick{rect: rect, kind: kind, powerUp: pu}
	switch kind {
	case BrickHard:
		b.hp = 2
	case BrickUnbreakable:
		b.hp = unbreakableHP
		b.powerUp = PowerUpNone
	default:
		b.kind = BrickNormal
		b.hp = 1
	}
	return b
}

// OnHit applies one hit and reports whether the brick is now destroyed.
func (b *Brick) OnHit() bool {
	if b.kind == BrickUnbreakable {
		return false
	}
	if b.hp > 1 {
		b.hp--
		return false
	}
	b.hp = 0
	return true
}

// Rect returns the brick's bounding box.
func (b *Brick) Rect() core.Rect { return b.rect }

// Kind returns the brick class.
func (b *Brick) Kind() BrickKind { return b.kind }

// HP returns the remaining hit points.
func (b *Brick) HP() int { return b.hp }

// PowerUp returns the embedded power-up, or PowerUpNone.
func (b *Brick) PowerUp() PowerUp { return b.powerUp }

// IsUnbreakable reports whether the brick can never be destroyed.
func (b *Brick) IsUnbreakable() bool { return b.kind == BrickUnbreakable }

// IsDestroyed reports whether the brick has no hit points left.
func (b *Brick) IsDestroyed() bool { return b.hp <= 0 }
