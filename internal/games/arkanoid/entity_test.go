package arkanoid

import (
	"testing"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

func TestBrickOnHit(t *testing.T) {
	tests := []struct {
		name      string
		kind      BrickKind
		destroyAt int // hit number that destroys the brick, 0 = never
	}{
		{"normal", BrickNormal, 1},
		{"hard", BrickHard, 2},
		{"unbreakable", BrickUnbreakable, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBrick(tc.kind, core.NewRect(0, 0, 10, 10), PowerUpNone)
			for hit := 1; hit <= 50; hit++ {
				destroyed := b.OnHit()
				want := hit == tc.destroyAt
				if destroyed != want {
					t.Fatalf("hit %d: OnHit() = %v, expected %v", hit, destroyed, want)
				}
				if destroyed {
					if !b.IsDestroyed() || b.HP() != 0 {
						t.Errorf("destroyed brick has HP %d", b.HP())
					}
					return
				}
			}
			if tc.destroyAt != 0 {
				t.Fatal("brick never destroyed")
			}
			if b.IsDestroyed() {
				t.Error("unbreakable brick reports destroyed")
			}
		})
	}
}

func TestUnbreakableCarriesNoPowerUp(t *testing.T) {
	b := NewBrick(BrickUnbreakable, core.NewRect(0, 0, 10, 10), PowerUpGun)
	if b.PowerUp() != PowerUpNone {
		t.Errorf("PowerUp() = %v, expected None", b.PowerUp())
	}
	if !b.IsUnbreakable() {
		t.Error("IsUnbreakable() = false")
	}

	h := NewBrick(BrickHard, core.NewRect(0, 0, 10, 10), PowerUpGun)
	if h.PowerUp() != PowerUpGun {
		t.Errorf("hard brick PowerUp() = %v, expected Gun", h.PowerUp())
	}
}

func TestPaddleMoveClamp(t *testing.T) {
	p := Paddle{X: 350, Y: 560, W: 100, H: 12, Speed: 6, Inset: 10}

	p.Move(1, 800)
	if p.X != 356 {
		t.Errorf("X = %v, expected 356", p.X)
	}

	for range 200 {
		p.Move(1, 800)
	}
	if p.X != 690 {
		t.Errorf("X = %v after pushing right, expected 690", p.X)
	}

	for range 200 {
		p.Move(-1, 800)
	}
	if p.X != 10 {
		t.Errorf("X = %v after pushing left, expected 10", p.X)
	}
}

func TestBallUpdate(t *testing.T) {
	b := Ball{X: 10, Y: 20, R: 8, VX: 3, VY: -4}
	b.Update()
	if b.X != 13 || b.Y != 16 {
		t.Errorf("position = (%v, %v), expected (13, 16)", b.X, b.Y)
	}
	r := b.Rect()
	if r.X != 5 || r.Y != 8 || r.W != 16 || r.H != 16 {
		t.Errorf("Rect() = %+v", r)
	}
}
