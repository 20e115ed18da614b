package arkanoid

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

func TestPowerUpTables(t *testing.T) {
	for _, p := range autoPowerUps {
		if !p.Valid() {
			t.Errorf("%v should be valid", p)
		}
		if _, ok := powerUpEffects[p]; !ok {
			t.Errorf("%v has no effect", p)
		}
		if p.Letter() == "" || p.String() == "Unknown" {
			t.Errorf("%v has no style", p)
		}
	}
	if PowerUpNone.Valid() || PowerUp(42).Valid() {
		t.Error("None and out-of-range kinds are not valid")
	}
	if PowerUp(42).String() != "Unknown" {
		t.Errorf("String() = %q", PowerUp(42).String())
	}
}

func TestBrickColor(t *testing.T) {
	r := core.NewRect(0, 0, 10, 10)
	tests := []struct {
		name     string
		brick    *Brick
		expected core.Color
	}{
		{"normal", NewBrick(BrickNormal, r, PowerUpNone), colorNormalBrick},
		{"hard", NewBrick(BrickHard, r, PowerUpNone), colorHardBrick},
		{"unbreakable", NewBrick(BrickUnbreakable, r, PowerUpHeart), colorUnbreakableBrick},
		{"power-up wins over class", NewBrick(BrickHard, r, PowerUpGun), powerUpStyles[PowerUpGun].Brick},
	}
	for _, tc := range tests {
		if got := brickColor(tc.brick); got != tc.expected {
			t.Errorf("%s: brickColor() = %v, expected %v", tc.name, got, tc.expected)
		}
	}
}

func TestDropManager(t *testing.T) {
	m := NewDropManager(18, 2)
	paddle := core.NewRect(350, 560, 100, 12)

	m.Spawn(PowerUpGun, 400, 552)   // reaches the paddle
	m.Spawn(PowerUpHeart, 100, 599) // falls past the bottom
	m.Spawn(PowerUpLaser, 400, 100) // still falling

	got := m.Update(paddle, 600)
	if len(got) != 1 || got[0] != PowerUpGun {
		t.Fatalf("Update() = %v, expected [Gun]", got)
	}
	drops := m.Drops()
	if len(drops) != 2 {
		t.Fatalf("len(Drops()) = %d, expected 2", len(drops))
	}

	got = m.Update(paddle, 600)
	if len(got) != 0 {
		t.Errorf("Update() = %v, expected nothing", got)
	}
	drops = m.Drops()
	if len(drops) != 1 || drops[0].Kind != PowerUpLaser || drops[0].Y != 104 {
		t.Errorf("Drops() = %+v, expected the laser at y=104", drops)
	}

	m.Clear()
	if len(m.Drops()) != 0 {
		t.Error("Clear() should remove every drop")
	}
}

func testProjectiles() *ProjectileManager {
	return NewProjectileManager(config.DefaultArkanoidConfig().PowerUps)
}

func TestGunCadence(t *testing.T) {
	pm := testProjectiles()
	paddle := core.NewRect(350, 560, 100, 12)

	pm.EnableGun(0, 5*time.Second)
	pm.Update(0, paddle, nil)
	if n := len(pm.Bullets()); n != 2 {
		t.Fatalf("bullets after first tick = %d, expected 2", n)
	}
	b := pm.Bullets()
	if b[0].X != 356 || b[1].X != 444 {
		t.Errorf("muzzles at %v and %v, expected 356 and 444", b[0].X, b[1].X)
	}
	if b[0].Y != 548 {
		t.Errorf("bullet y = %v, expected 548 after one move", b[0].Y)
	}

	pm.Update(100*time.Millisecond, paddle, nil)
	if n := len(pm.Bullets()); n != 2 {
		t.Errorf("bullets before cadence = %d, expected 2", n)
	}
	pm.Update(200*time.Millisecond, paddle, nil)
	if n := len(pm.Bullets()); n != 4 {
		t.Errorf("bullets after cadence = %d, expected 4", n)
	}

	// Extending keeps the cadence.
	pm.EnableGun(250*time.Millisecond, 5*time.Second)
	if got := pm.GunRemaining(250 * time.Millisecond); got != 9750*time.Millisecond {
		t.Errorf("GunRemaining() = %v, expected 9.75s", got)
	}
	pm.Update(300*time.Millisecond, paddle, nil)
	if n := len(pm.Bullets()); n != 4 {
		t.Errorf("bullets at 300ms = %d, expected 4", n)
	}

	if pm.GunActive(10 * time.Second) {
		t.Error("gun should be off after 10s")
	}
}

func TestBulletsLeaveTheTop(t *testing.T) {
	pm := testProjectiles()
	pm.bullets = []Bullet{{X: 10, Y: -5, VY: -12}}
	pm.Update(0, core.NewRect(0, 0, 0, 0), nil)
	if len(pm.Bullets()) != 0 {
		t.Error("bullet above y=-20 should be removed")
	}
}

func TestBulletHits(t *testing.T) {
	lvl := levelFrom(
		NewBrick(BrickUnbreakable, core.NewRect(0, 80, 40, 20), PowerUpNone),
		NewBrick(BrickNormal, core.NewRect(100, 80, 40, 20), PowerUpExpand),
	)
	pm := testProjectiles()
	pm.bullets = []Bullet{
		{X: 20, Y: 110, VY: -12},
		{X: 120, Y: 110, VY: -12},
		{X: 300, Y: 110, VY: -12},
	}

	hits := pm.Update(0, core.NewRect(0, 0, 0, 0), lvl)
	if len(hits) != 1 || hits[0].Index != 1 || !hits[0].Destroyed || hits[0].PowerUp != PowerUpExpand {
		t.Fatalf("hits = %+v, expected the normal brick destroyed", hits)
	}
	if lvl.Brick(0) == nil || lvl.Brick(0).HP() != unbreakableHP {
		t.Error("unbreakable brick should absorb the bullet untouched")
	}
	if n := len(pm.Bullets()); n != 1 {
		t.Errorf("bullets left = %d, expected only the one that missed", n)
	}
}

func TestFireLaser(t *testing.T) {
	lvl := levelFrom(
		NewBrick(BrickNormal, core.NewRect(390, 60, 40, 20), PowerUpNone),
		NewBrick(BrickHard, core.NewRect(370, 90, 40, 20), PowerUpNone),
		NewBrick(BrickUnbreakable, core.NewRect(380, 120, 40, 20), PowerUpNone),
		NewBrick(BrickNormal, core.NewRect(100, 60, 40, 20), PowerUpNone),
	)
	pm := testProjectiles()

	hits := pm.FireLaser(time.Second, 400, lvl)
	if len(hits) != 2 {
		t.Fatalf("len(hits) = %d, expected 2", len(hits))
	}
	if !hits[0].Destroyed || hits[1].Destroyed {
		t.Errorf("hits = %+v, expected normal destroyed and hard damaged", hits)
	}
	if lvl.Brick(0) != nil || lvl.Brick(1).HP() != 1 || lvl.Brick(2) == nil || lvl.Brick(3) == nil {
		t.Error("laser should only touch breakable bricks in its column")
	}

	if len(pm.Rays()) != 1 {
		t.Fatal("laser should leave a ray")
	}
	pm.Update(time.Second+100*time.Millisecond, core.NewRect(0, 0, 0, 0), lvl)
	if len(pm.Rays()) != 1 {
		t.Error("ray should still be visible at 100ms")
	}
	pm.Update(time.Second+120*time.Millisecond, core.NewRect(0, 0, 0, 0), lvl)
	if len(pm.Rays()) != 0 {
		t.Error("ray should expire after 120ms")
	}
}
