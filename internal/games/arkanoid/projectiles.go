package arkanoid

import (
	"time"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// bulletExit is how far above the playfield a bullet may travel.
const bulletExit = -20

// Bullet is an auto-gun shot. X, Y is the tip.
type Bullet struct {
	X, Y float64
	VY   float64
}

// Rect returns the bullet's bounding box.
func (b Bullet) Rect() core.Rect {
	return core.NewRect(b.X-2, b.Y-8, 4, 8)
}

// LaserRay is the visual trace of a laser sweep.
type LaserRay struct {
	X     float64
	Until time.Duration
}

// ProjectileManager owns bullets, the auto-gun timer and laser rays. All
// times are on the game clock.
type ProjectileManager struct {
	cfg      config.PowerUpConfig
	bullets  []Bullet
	rays     []LaserRay
	gunUntil time.Duration
	nextShot time.Duration
}

// NewProjectileManager creates an idle manager.
func NewProjectileManager(cfg config.PowerUpConfig) *ProjectileManager {
	return &ProjectileManager{cfg: cfg}
}

// EnableGun turns on auto-fire for d more. Repeated calls add up and keep
// the cadence.
func (pm *ProjectileManager) EnableGun(now, d time.Duration) {
	if pm.gunUntil < now {
		pm.gunUntil = now
		pm.nextShot = now
	}
	pm.gunUntil += d
}

// GunActive reports whether auto-fire is on.
func (pm *ProjectileManager) GunActive(now time.Duration) bool {
	return now < pm.gunUntil
}

// GunRemaining returns how long auto-fire stays on.
func (pm *ProjectileManager) GunRemaining(now time.Duration) time.Duration {
	if !pm.GunActive(now) {
		return 0
	}
	return pm.gunUntil - now
}

// Update fires due bullets, moves all bullets, resolves their brick hits
// and drops expired rays. It returns the hits on breakable bricks.
func (pm *ProjectileManager) Update(now time.Duration, paddle core.Rect, lvl *Level) []BrickHit {
	if pm.GunActive(now) && now >= pm.nextShot {
		pm.bullets = append(pm.bullets,
			Bullet{X: paddle.X + pm.cfg.MuzzleInset, Y: paddle.Y, VY: -pm.cfg.BulletSpeed},
			Bullet{X: paddle.Right() - pm.cfg.MuzzleInset, Y: paddle.Y, VY: -pm.cfg.BulletSpeed},
		)
		pm.nextShot = now + pm.cfg.GunCadence
	}

	var hits []BrickHit
	kept := pm.bullets[:0]
	for _, b := range pm.bullets {
		b.Y += b.VY
		if b.Y < bulletExit {
			continue
		}
		if lvl != nil {
			if i, ok := lvl.FirstIntersecting(b.Rect()); ok {
				// Unbreakable bricks absorb the bullet.
				if h, ok := lvl.Hit(i); ok && !h.Unbreakable {
					hits = append(hits, h)
				}
				continue
			}
		}
		kept = append(kept, b)
	}
	pm.bullets = kept

	rays := pm.rays[:0]
	for _, r := range pm.rays {
		if now < r.Until {
			rays = append(rays, r)
		}
	}
	pm.rays = rays
	return hits
}

// FireLaser sweeps the column centered on x, hitting every breakable brick
// in it once, and leaves a short-lived ray.
func (pm *ProjectileManager) FireLaser(now time.Duration, x float64, lvl *Level) []BrickHit {
	pm.rays = append(pm.rays, LaserRay{X: x, Until: now + pm.cfg.LaserLifetime})
	if lvl == nil {
		return nil
	}
	var hits []BrickHit
	for _, i := range lvl.Column(x-pm.cfg.LaserHalfWidth, x+pm.cfg.LaserHalfWidth) {
		if b := lvl.Brick(i); b == nil || b.IsUnbreakable() {
			continue
		}
		if h, ok := lvl.Hit(i); ok {
			hits = append(hits, h)
		}
	}
	return hits
}

// Bullets returns the live bullets.
func (pm *ProjectileManager) Bullets() []Bullet { return pm.bullets }

// Rays returns the visible laser rays.
func (pm *ProjectileManager) Rays() []LaserRay { return pm.rays }

// Reset clears projectiles and turns the gun off.
func (pm *ProjectileManager) Reset() {
	pm.bullets = pm.bullets[:0]
	pm.rays = pm.rays[:0]
	pm.gunUntil = 0
	pm.nextShot = 0
}
