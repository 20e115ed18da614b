package arkanoid

import "github.com/vovakirdan/tui-arkanoid/internal/core"

// powerUpEffects is the single dispatch table for collected power-ups.
var powerUpEffects = map[PowerUp]func(*Game){
	PowerUpExpand:     (*Game).expandPaddle,
	PowerUpBonusBalls: (*Game).splitBalls,
	PowerUpLaser:      (*Game).fireLaser,
	PowerUpGun:        (*Game).enableGun,
	PowerUpHeart:      (*Game).addLife,
}

// expandPaddle widens the paddle. Only the first activation records the
// original width; later ones extend the timer.
func (g *Game) expandPaddle() {
	if !g.expanded {
		g.baseWidth = g.paddle.W
		g.paddle.W = g.baseWidth * g.cfg.PowerUps.ExpandFactor
		g.expanded = true
		g.paddle.Clamp(g.cfg.Playfield.Width)
	}
	g.expandUntil = max(g.expandUntil, g.now) + g.cfg.PowerUps.ExpandDuration
}

// expireEffects ends timed effects whose deadline has passed.
func (g *Game) expireEffects() {
	if g.expanded && g.now >= g.expandUntil {
		g.cancelExpand()
	}
}

func (g *Game) cancelExpand() {
	if g.expanded {
		g.paddle.W = g.baseWidth
		g.paddle.Clamp(g.cfg.Playfield.Width)
	}
	g.expanded = false
	g.expandUntil = 0
}

// splitBalls turns every ball in play into three.
func (g *Game) splitBalls() {
	if g.state != StatePlaying || len(g.balls) == 0 {
		return
	}
	spread, lift := g.cfg.PowerUps.BonusSpread, g.cfg.PowerUps.BonusLift
	n := len(g.balls)
	for _, b := range g.balls[:n] {
		g.balls = append(g.balls,
			&Ball{X: b.X, Y: b.Y, R: b.R, VX: b.VX - spread, VY: b.VY - lift},
			&Ball{X: b.X, Y: b.Y, R: b.R, VX: b.VX + spread, VY: b.VY - lift},
		)
	}
}

func (g *Game) fireLaser() {
	for _, h := range g.shots.FireLaser(g.now, g.paddle.CenterX(), g.level) {
		g.applyHit(h)
	}
}

func (g *Game) enableGun() {
	g.shots.EnableGun(g.now, g.cfg.PowerUps.GunDuration)
}

func (g *Game) addLife() {
	g.lives = core.Min(g.lives+1, g.cfg.Gameplay.MaxLives)
}
