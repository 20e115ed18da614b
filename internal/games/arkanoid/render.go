package arkanoid

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// Fixed render colors.
var (
	bgTop         = core.RGB(10, 10, 20)
	bgBottom      = core.ColorBlack
	colorPaddle   = core.RGB(200, 200, 210)
	colorBall     = core.ColorWhite
	colorBullet   = core.ColorYellow
	colorLaser    = core.RGB(120, 255, 120)
	colorHUD      = core.ColorWhite
	colorOverlay  = core.RGB(20, 20, 30)
	colorTitle    = core.ColorCyan
	colorGameOver = core.ColorRed
	colorWin      = core.ColorYellow
)

// DrawList returns the frame back to front: background, bricks, drops,
// laser rays, bullets, paddle, balls, HUD, overlay.
func (g *Game) DrawList() core.DrawList {
	w, h := g.cfg.Playfield.Width, g.cfg.Playfield.Height
	var dl core.DrawList

	bg := core.DrawItem{Kind: core.DrawBackground, Rect: core.NewRect(0, 0, w, h)}
	if g.level != nil && g.level.Background != nil {
		bg.Image = g.level.Background
	} else {
		bg.Gradient = [2]core.Color{bgTop, bgBottom}
	}
	dl.Add(bg)

	if g.state == StateMenu || g.level == nil {
		g.drawTitle(&dl)
		return dl
	}

	for i := range g.level.Len() {
		b := g.level.Brick(i)
		if b == nil {
			continue
		}
		dl.Add(core.DrawItem{
			Kind:  core.DrawBrick,
			Rect:  b.Rect(),
			Color: brickColor(b),
			Label: b.PowerUp().Letter(),
		})
	}

	for _, d := range g.drops.Drops() {
		dl.Add(core.DrawItem{
			Kind:  core.DrawDrop,
			Rect:  d.Rect(),
			Color: powerUpStyles[d.Kind].Drop,
			Label: d.Kind.Letter(),
		})
	}

	hw := g.cfg.PowerUps.LaserHalfWidth
	for _, r := range g.shots.Rays() {
		dl.Add(core.DrawItem{
			Kind:  core.DrawLaser,
			Rect:  core.NewRect(r.X-hw, 0, 2*hw, g.paddle.Y),
			Color: colorLaser,
		})
	}

	for _, b := range g.shots.Bullets() {
		dl.Add(core.DrawItem{Kind: core.DrawBullet, Rect: b.Rect(), Color: colorBullet})
	}

	dl.Add(core.DrawItem{
		Kind:  core.DrawPaddle,
		Rect:  g.paddle.Rect(),
		Color: colorPaddle,
		Image: g.skinImage,
	})

	for _, b := range g.balls {
		dl.Add(core.DrawItem{Kind: core.DrawBall, Rect: b.Rect(), Color: colorBall})
	}

	g.drawHUD(&dl)
	g.drawOverlay(&dl)
	return dl
}

func text(x, y float64, s string, c core.Color) core.DrawItem {
	return core.DrawItem{Kind: core.DrawText, Rect: core.NewRect(x, y, 0, 0), Label: s, Color: c}
}

// centered returns a text item horizontally centered on the playfield.
func (g *Game) centered(y float64, s string, c core.Color) core.DrawItem {
	it := text(g.cfg.Playfield.Width/2, y, s, c)
	it.Centered = true
	return it
}

func (g *Game) drawHUD(dl *core.DrawList) {
	dl.Add(text(12, 8, fmt.Sprintf("Score: %d", g.score), colorHUD))
	dl.Add(text(180, 8, "Lives: "+strings.Repeat("♥", max(0, g.lives)), core.ColorRed))
	dl.Add(text(380, 8, fmt.Sprintf("Level: %d/%d", g.levelIndex+1, g.cfg.Gameplay.Levels), colorHUD))

	var effects []string
	if d := g.ExpandRemaining(); d > 0 {
		effects = append(effects, fmt.Sprintf("Expand %s", seconds(d)))
	}
	if d := g.shots.GunRemaining(g.now); d > 0 {
		effects = append(effects, fmt.Sprintf("Gun %s", seconds(d)))
	}
	if len(effects) > 0 {
		dl.Add(text(560, 8, strings.Join(effects, "  "), core.ColorCyan))
	}
	if !g.musicEnabled {
		dl.Add(text(g.cfg.Playfield.Width-60, 8, "♪ off", core.ColorGray))
	}
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func (g *Game) drawTitle(dl *core.DrawList) {
	h := g.cfg.Playfield.Height
	dl.Add(g.centered(h/3, "ARKANOID", colorTitle))
	dl.Add(g.centered(h/2, "Press Enter to start", colorHUD))
}

func (g *Game) panel(dl *core.DrawList) {
	w, h := g.cfg.Playfield.Width, g.cfg.Playfield.Height
	dl.Add(core.DrawItem{
		Kind:  core.DrawPanel,
		Rect:  core.CenteredRect(w/2, h/2, w/2, h/3),
		Color: colorOverlay,
	})
}

func (g *Game) drawOverlay(dl *core.DrawList) {
	h := g.cfg.Playfield.Height
	switch g.state {
	case StateServing:
		dl.Add(g.centered(h*2/3, "Space to launch", core.ColorGray))

	case StatePaused:
		g.panel(dl)
		dl.Add(g.centered(h/2-40, "PAUSED", colorTitle))
		dl.Add(g.centered(h/2, "P resume   Esc settings   H home", colorHUD))

	case StateSettings:
		g.panel(dl)
		dl.Add(g.centered(h/2-60, "SETTINGS", colorTitle))
		music := "Music: Off"
		if g.musicEnabled {
			music = "Music: On"
		}
		for i, label := range []string{music, "Main Menu", "Back"} {
			it := g.centered(h/2-20+float64(i)*28, label, colorHUD)
			it.Selected = i == g.settingsCursor
			dl.Add(it)
		}

	case StateGameOver:
		g.panel(dl)
		dl.Add(g.centered(h/2-40, "GAME OVER", colorGameOver))
		dl.Add(g.centered(h/2, fmt.Sprintf("Score: %d", g.score), colorHUD))
		dl.Add(g.centered(h/2+30, "R restart   T retry level   H home", colorHUD))

	case StateWin:
		g.panel(dl)
		dl.Add(g.centered(h/2-40, "YOU WIN!", colorWin))
		dl.Add(g.centered(h/2, fmt.Sprintf("Score: %d", g.score), colorHUD))
		dl.Add(g.centered(h/2+30, "R restart   T retry level   H home", colorHUD))
	}
}

// ExpandRemaining returns how long the paddle stays wide.
func (g *Game) ExpandRemaining() time.Duration {
	if !g.expanded {
		return 0
	}
	return g.expandUntil - g.now
}
