package arkanoid

import (
	"math"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// BounceModel maps a paddle offset to an outgoing ball velocity.
type BounceModel struct {
	Speed  float64 // speed after the bounce
	MaxVX  float64 // |vx| at the paddle edge
	MinArg float64 // floor of speed²-vx² under the square root
}

// Velocity returns the velocity for a normalized offset t in [-1, 1].
// vx grows linearly with t and vy always points up.
func (m BounceModel) Velocity(t float64) (vx, vy float64) {
	t = core.ClampF(t, -1, 1)
	vx = t * m.MaxVX
	vy = -math.Sqrt(math.Max(m.MinArg, m.Speed*m.Speed-vx*vx))
	return vx, vy
}

// Offset returns where x falls on the paddle: -1 at the left edge, 0 at the
// center, +1 at the right edge. Values are clamped.
func Offset(x float64, paddle core.Rect) float64 {
	half := paddle.W / 2
	if half <= 0 {
		return 0
	}
	cx, _ := paddle.Center()
	return core.ClampF((x-cx)/half, -1, 1)
}

// ReflectWalls bounces the ball off the left, right and top walls. The
// bottom is open.
func ReflectWalls(b *Ball, width float64) {
	if b.X-b.R < 0 {
		b.X = b.R
		b.VX = -b.VX
	}
	if b.X+b.R > width {
		b.X = width - b.R
		b.VX = -b.VX
	}
	if b.Y-b.R < 0 {
		b.Y = b.R
		b.VY = -b.VY
	}
}

// BouncePaddle reflects a descending ball that overlaps the paddle and
// reports whether it did.
func BouncePaddle(b *Ball, paddle core.Rect, m BounceModel) bool {
	if b.VY <= 0 || !b.Rect().Intersects(paddle) {
		return false
	}
	b.Y = paddle.Y - b.R - 1
	b.VX, b.VY = m.Velocity(Offset(b.X, paddle))
	return true
}

// Lost reports whether the ball has left through the bottom.
func Lost(b *Ball, height float64) bool {
	return b.Y-b.R > height
}

// Axis is the velocity component a collision inverts.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// PenetrationAxis picks the axis with the smaller overlap between the ball
// box and the brick box. Ties go to the vertical axis.
func PenetrationAxis(ball, brick core.Rect) Axis {
	fromLeft := ball.Right() - brick.X
	fromRight := brick.Right() - ball.X
	fromTop := ball.Bottom() - brick.Y
	fromBottom := brick.Bottom() - ball.Y

	overlapX := math.Min(fromLeft, fromRight)
	overlapY := math.Min(fromTop, fromBottom)
	if overlapX < overlapY {
		return AxisHorizontal
	}
	return AxisVertical
}

// CollideBricks resolves the first brick, in scan order, that overlaps the
// ball. It reflects the ball, applies the hit and returns its outcome.
func CollideBricks(b *Ball, lvl *Level) (BrickHit, bool) {
	box := b.Rect()
	i, ok := lvl.FirstIntersecting(box)
	if !ok {
		return BrickHit{}, false
	}
	if PenetrationAxis(box, lvl.Brick(i).Rect()) == AxisHorizontal {
		b.VX = -b.VX
	} else {
		b.VY = -b.VY
	}
	return lvl.Hit(i)
}
