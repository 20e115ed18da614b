package arkanoid

import (
	"image"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

func TestNewGameStartsOnMenu(t *testing.T) {
	g, au := newTestGame()
	if g.State() != StateMenu {
		t.Fatalf("State() = %v, expected menu", g.State())
	}
	if len(au.tracks) != 0 {
		t.Error("menu should not start music")
	}

	g.Step(input(core.ActionConfirm))
	if g.State() != StateServing {
		t.Fatalf("State() = %v, expected serving", g.State())
	}
	if g.Lives() != 3 || g.Score() != 0 || g.LevelIndex() != 0 || g.BallCount() != 1 {
		t.Errorf("lives=%d score=%d level=%d balls=%d", g.Lives(), g.Score(), g.LevelIndex(), g.BallCount())
	}
	if len(au.tracks) != 1 || au.tracks[0].path != "sounds/level1.wav" {
		t.Errorf("tracks = %+v, expected level1 music", au.tracks)
	}
}

func TestServingBallSwaysOnPaddle(t *testing.T) {
	g, _ := newTestGame()
	g.StartNewGame()

	for range 20 {
		g.Step(input())
		b := g.balls[0]
		p := g.Paddle()
		if b.Y != p.Y-b.R-1 {
			t.Fatalf("ball y = %v, expected resting on the paddle", b.Y)
		}
		if off := b.X - p.CenterX(); off < -30 || off > 30 {
			t.Fatalf("sway offset = %v, expected within amplitude", off)
		}
	}
	if g.Now() != 0 {
		t.Errorf("clock = %v, expected frozen while serving", g.Now())
	}
}

func TestLaunchUsesBounceAngle(t *testing.T) {
	g, _ := newTestGame()
	g.StartNewGame()

	g.swayPhase = 0
	g.placeServingBall()
	g.launch()
	b := g.balls[0]
	if g.State() != StatePlaying {
		t.Fatalf("State() = %v, expected playing", g.State())
	}
	if b.VX != 0 || b.VY >= 0 {
		t.Errorf("velocity = (%v, %v), expected straight up", b.VX, b.VY)
	}

	g.StartNewGame()
	g.swayPhase = 0
	g.balls[0].X = g.Paddle().X + g.Paddle().W
	g.launch()
	if g.balls[0].VX != 5 {
		t.Errorf("edge launch vx = %v, expected 5", g.balls[0].VX)
	}
}

func TestLaunchFromInput(t *testing.T) {
	g, _ := newTestGame()
	g.StartNewGame()
	g.Step(input(core.ActionLaunch))
	if g.State() != StatePlaying {
		t.Fatalf("State() = %v, expected playing", g.State())
	}
	g.Step(input())
	if g.Now() != g.Config().TickDuration() {
		t.Errorf("clock = %v, expected one tick", g.Now())
	}
}

func TestLastBallLostEndsGame(t *testing.T) {
	g, au := newTestGame()
	b := playing(g)
	g.lives = 1
	b.Y = g.Config().Playfield.Height + 100
	b.VY = 4

	res := g.Step(input())
	if g.State() != StateGameOver || !res.State.GameOver {
		t.Fatalf("State() = %v, expected gameover", g.State())
	}
	if g.Lives() != 0 {
		t.Errorf("Lives() = %d, expected 0", g.Lives())
	}
	if len(au.tracks) != 1 || au.tracks[0].stops != 1 {
		t.Fatalf("music stops = %+v, expected exactly one", au.tracks)
	}

	g.Step(input())
	g.Step(input(core.ActionHome))
	if au.tracks[0].stops != 1 {
		t.Errorf("stops = %d after leaving, expected still 1", au.tracks[0].stops)
	}
	if g.State() != StateMenu {
		t.Errorf("State() = %v, expected menu", g.State())
	}
}

func TestBallLostWithLivesLeft(t *testing.T) {
	g, au := newTestGame()
	b := playing(g)
	b.Y = 700

	g.Step(input())
	if g.State() != StateServing {
		t.Fatalf("State() = %v, expected serving", g.State())
	}
	if g.Lives() != 2 || g.BallCount() != 1 {
		t.Errorf("lives=%d balls=%d, expected 2 and 1", g.Lives(), g.BallCount())
	}
	if au.tracks[0].stops != 0 {
		t.Error("music should keep playing")
	}
}

func TestExtraBallsDoNotCostLives(t *testing.T) {
	g, _ := newTestGame()
	playing(g)
	g.balls = append(g.balls, &Ball{X: 100, Y: 700, R: 8, VY: 4})

	g.Step(input())
	if g.State() != StatePlaying || g.Lives() != 3 || g.BallCount() != 1 {
		t.Errorf("state=%v lives=%d balls=%d", g.State(), g.Lives(), g.BallCount())
	}
}

func TestLastLevelClearedWins(t *testing.T) {
	g, au := newTestGame()
	playing(g)
	g.levelIndex = g.Config().Gameplay.Levels - 1
	g.level = levelFrom()

	res := g.Step(input())
	if g.State() != StateWin || !res.State.Won {
		t.Fatalf("State() = %v, expected win", g.State())
	}
	if au.tracks[0].stops != 1 {
		t.Errorf("stops = %d, expected 1", au.tracks[0].stops)
	}
}

func TestLevelClearedAdvances(t *testing.T) {
	g, au := newTestGame()
	playing(g)
	g.score = 120
	g.level = levelFrom()

	g.Step(input())
	if g.State() != StateServing || g.LevelIndex() != 1 {
		t.Fatalf("state=%v level=%d, expected serving level 1", g.State(), g.LevelIndex())
	}
	if g.Score() != 120 || g.Lives() != 3 {
		t.Errorf("score=%d lives=%d should carry over", g.Score(), g.Lives())
	}
	if len(au.tracks) != 2 || au.tracks[0].stops != 1 || au.tracks[1].path != "sounds/level2.wav" {
		t.Errorf("tracks = %+v, expected level1 stopped and level2 looping", au.tracks)
	}
}

func TestScoring(t *testing.T) {
	g, au := newTestGame()
	playing(g)
	g.level = levelFrom(
		NewBrick(BrickNormal, core.NewRect(0, 0, 10, 10), PowerUpHeart),
		NewBrick(BrickHard, core.NewRect(20, 0, 10, 10), PowerUpNone),
		NewBrick(BrickUnbreakable, core.NewRect(40, 0, 10, 10), PowerUpNone),
	)

	for i := range 3 {
		h, _ := g.level.Hit(i)
		g.applyHit(h)
	}
	if g.Score() != 12 {
		t.Errorf("Score() = %d, expected 10 + 2 + 0", g.Score())
	}
	drops := g.drops.Drops()
	if len(drops) != 1 || drops[0].Kind != PowerUpHeart || drops[0].X != 5 || drops[0].Y != 5 {
		t.Errorf("drops = %+v, expected a heart at the brick center", drops)
	}
	if len(au.effects) != 3 {
		t.Errorf("hit sounds = %d, expected 3", len(au.effects))
	}
}

func TestExpandRestoresExactWidth(t *testing.T) {
	g, _ := newTestGame()
	playing(g)
	base := g.Paddle().W

	g.applyPowerUp(PowerUpExpand)
	if g.Paddle().W != base*1.5 {
		t.Fatalf("W = %v, expected %v", g.Paddle().W, base*1.5)
	}

	g.now = 5 * time.Second
	g.applyPowerUp(PowerUpExpand)
	if g.Paddle().W != base*1.5 {
		t.Fatalf("W = %v after re-trigger, expected no compounding", g.Paddle().W)
	}

	g.now = 19 * time.Second
	g.expireEffects()
	if g.Paddle().W != base*1.5 {
		t.Fatal("expand ended early, re-trigger should extend it")
	}
	g.now = 20 * time.Second
	g.expireEffects()
	if g.Paddle().W != base {
		t.Errorf("W = %v after expiry, expected %v", g.Paddle().W, base)
	}
}

func TestExpandClampsAtRightWall(t *testing.T) {
	g, _ := newTestGame()
	playing(g)
	g.paddle.X = 690

	g.applyPowerUp(PowerUpExpand)
	p := g.Paddle()
	if p.X+p.W != 790 {
		t.Errorf("right edge = %v, expected 790", p.X+p.W)
	}
}

func TestBonusBalls(t *testing.T) {
	g, _ := newTestGame()
	playing(g)
	g.balls = append(g.balls, &Ball{X: 200, Y: 200, R: 8, VX: 2, VY: 3})

	g.applyPowerUp(PowerUpBonusBalls)
	if g.BallCount() != 6 {
		t.Fatalf("BallCount() = %d, expected 6", g.BallCount())
	}
	first := g.balls[0]
	left, right := g.balls[2], g.balls[3]
	if left.X != first.X || left.VX != first.VX-1.5 || right.VX != first.VX+1.5 || left.VY != first.VY-0.5 {
		t.Errorf("split = %+v / %+v from %+v", left, right, first)
	}

	g.StartNewGame()
	g.applyPowerUp(PowerUpBonusBalls)
	if g.BallCount() != 1 {
		t.Errorf("BallCount() = %d while serving, expected 1", g.BallCount())
	}

	playing(g)
	g.balls = nil
	g.applyPowerUp(PowerUpBonusBalls)
	if g.BallCount() != 0 {
		t.Errorf("BallCount() = %d with no balls, expected 0", g.BallCount())
	}
}

func TestHeartCapped(t *testing.T) {
	g, _ := newTestGame()
	playing(g)

	g.applyPowerUp(PowerUpHeart)
	if g.Lives() != 4 {
		t.Errorf("Lives() = %d, expected 4", g.Lives())
	}
	g.lives = 9
	g.applyPowerUp(PowerUpHeart)
	if g.Lives() != 9 {
		t.Errorf("Lives() = %d, expected cap 9", g.Lives())
	}
}

func TestLaserPowerUp(t *testing.T) {
	g, _ := newTestGame()
	playing(g)
	g.level = levelFrom(
		NewBrick(BrickNormal, core.NewRect(390, 100, 20, 20), PowerUpNone),
		NewBrick(BrickUnbreakable, core.NewRect(380, 140, 40, 20), PowerUpNone),
		NewBrick(BrickNormal, core.NewRect(0, 100, 20, 20), PowerUpNone),
	)

	g.applyPowerUp(PowerUpLaser)
	if g.level.Brick(0) != nil || g.level.Brick(1) == nil || g.level.Brick(2) == nil {
		t.Error("laser should destroy only the breakable brick above the paddle")
	}
	if g.Score() != 10 {
		t.Errorf("Score() = %d, expected 10", g.Score())
	}
}

func TestGunPowerUpFires(t *testing.T) {
	g, _ := newTestGame()
	playing(g)
	g.applyPowerUp(PowerUpGun)

	g.Step(input())
	if n := len(g.shots.Bullets()); n != 2 {
		t.Errorf("bullets = %d, expected 2", n)
	}
}

func TestDropCollectedInTick(t *testing.T) {
	g, _ := newTestGame()
	playing(g)
	p := g.Paddle()
	g.drops.Spawn(PowerUpHeart, p.CenterX(), p.Y-5)

	g.Step(input())
	if g.Lives() != 4 {
		t.Errorf("Lives() = %d, expected the heart to be collected", g.Lives())
	}
}

func TestBadPowerUpIsIsolated(t *testing.T) {
	g, _ := newTestGame()
	playing(g)

	g.applyPowerUp(PowerUp(99))

	powerUpEffects[PowerUp(98)] = func(*Game) { panic("boom") }
	defer delete(powerUpEffects, PowerUp(98))
	g.applyPowerUp(PowerUp(98))

	if g.State() != StatePlaying {
		t.Errorf("State() = %v, expected playing", g.State())
	}
}

func TestPauseAndSettings(t *testing.T) {
	g, au := newTestGame()
	playing(g)
	track := au.tracks[0]

	steps := []struct {
		action core.Action
		state  State
	}{
		{core.ActionPause, StatePaused},
		{core.ActionNone, StatePaused},
		{core.ActionPause, StatePlaying},
		{core.ActionSettings, StateSettings},
		{core.ActionDown, StateSettings},
		{core.ActionBack, StatePaused},
		{core.ActionSettings, StateSettings},
		{core.ActionSettings, StatePaused},
		{core.ActionConfirm, StatePlaying},
	}
	for i, s := range steps {
		before := g.Now()
		g.Step(input(s.action))
		if g.State() != s.state {
			t.Fatalf("step %d (%v): State() = %v, expected %v", i, s.action, g.State(), s.state)
		}
		if s.state != StatePlaying && g.Now() != before {
			t.Fatalf("step %d: clock moved while frozen", i)
		}
	}
	if track.pauses == 0 || track.resumes == 0 {
		t.Errorf("pauses=%d resumes=%d, expected music to follow pause", track.pauses, track.resumes)
	}
}

func TestPauseWhileServingResumesServing(t *testing.T) {
	g, _ := newTestGame()
	g.StartNewGame()
	g.Step(input(core.ActionPause))
	g.Step(input(core.ActionPause))
	if g.State() != StateServing {
		t.Errorf("State() = %v, expected serving", g.State())
	}
}

func TestSettingsMenu(t *testing.T) {
	g, au := newTestGame()
	playing(g)

	g.Step(input(core.ActionSettings))
	g.Step(input(core.ActionConfirm)) // Music
	if g.MusicEnabled() {
		t.Fatal("music should be off")
	}
	if au.tracks[0].stops != 1 {
		t.Errorf("stops = %d, expected 1", au.tracks[0].stops)
	}

	g.Step(input(core.ActionConfirm)) // Music again
	if !g.MusicEnabled() || len(au.tracks) != 2 || au.tracks[1].pauses != 1 {
		t.Fatalf("tracks = %+v, expected a new paused track", au.tracks)
	}

	g.Step(input(core.ActionUp))      // Back
	g.Step(input(core.ActionUp))      // Main Menu
	g.Step(input(core.ActionConfirm)) // Main Menu
	if g.State() != StateMenu {
		t.Errorf("State() = %v, expected menu", g.State())
	}
	if au.tracks[1].stops != 1 {
		t.Errorf("stops = %d, expected menu to stop music", au.tracks[1].stops)
	}
}

func TestRestartAndRetry(t *testing.T) {
	g, _ := newTestGame()
	playing(g)
	g.levelIndex = 2
	g.level = levelFrom(NewBrick(BrickNormal, core.NewRect(0, 0, 10, 10), PowerUpNone))
	g.score = 500
	g.state = StateGameOver

	g.Step(input(core.ActionRetry))
	if g.State() != StateServing || g.LevelIndex() != 2 || g.Score() != 0 || g.Lives() != 3 {
		t.Fatalf("retry: state=%v level=%d score=%d lives=%d", g.State(), g.LevelIndex(), g.Score(), g.Lives())
	}

	g.state = StateWin
	g.Step(input(core.ActionRestart))
	if g.State() != StateServing || g.LevelIndex() != 0 {
		t.Errorf("restart: state=%v level=%d", g.State(), g.LevelIndex())
	}
}

func TestTooWideLevelFileUsesPreset(t *testing.T) {
	assets := &fakeAssets{lines: map[string][]string{
		"levels/level1.txt": {strings.Repeat("1", 200)},
	}}
	g := New(config.DefaultArkanoidConfig(), Env{Assets: assets, Rand: constRand(0.99)})
	g.StartNewGame()

	if g.State() != StateServing || g.Level() == nil {
		t.Fatalf("State() = %v, expected serving on a built level", g.State())
	}
	if g.Level().Source != "preset" || g.Level().Cols != config.LayoutColumns {
		t.Errorf("level = %s with %d columns, expected the preset", g.Level().Source, g.Level().Cols)
	}
}

func TestUnbuildableLevelReturnsToMenu(t *testing.T) {
	cfg := config.DefaultArkanoidConfig()
	cfg.Bricks.SideMargin = 450
	au := &fakeAudio{}
	g := New(cfg, Env{Audio: au, Rand: constRand(0.99), Music: true})
	g.StartNewGame()

	if g.State() != StateMenu || g.Level() != nil {
		t.Fatalf("State() = %v, expected menu with no level", g.State())
	}
	if len(au.tracks) != 0 {
		t.Errorf("tracks = %+v, expected no music", au.tracks)
	}
	g.Step(input())
	if dl := g.DrawList(); len(dl) == 0 {
		t.Error("DrawList() is empty on the menu")
	}
}

func TestMusicDisabledNeverOpensTrack(t *testing.T) {
	au := &fakeAudio{}
	g := New(config.DefaultArkanoidConfig(), Env{Audio: au, Music: false})
	g.StartNewGame()
	g.Step(input(core.ActionLaunch))
	if len(au.tracks) != 0 {
		t.Errorf("tracks = %d, expected none", len(au.tracks))
	}

	g.SetMusicEnabled(true)
	if len(au.tracks) != 1 {
		t.Errorf("tracks = %d, expected one after enabling", len(au.tracks))
	}
}

func TestMusicFallbackTrack(t *testing.T) {
	au := &fakeAudio{available: map[string]bool{"sounds/music.wav": true}}
	g := New(config.DefaultArkanoidConfig(), Env{Audio: au, Music: true})
	g.StartNewGame()
	if len(au.tracks) != 1 || au.tracks[0].path != "sounds/music.wav" {
		t.Errorf("tracks = %+v, expected the shared music track", au.tracks)
	}
}

func TestSelectPaddleSkin(t *testing.T) {
	imgs := &fakeAssets{images: map[string]image.Image{"skins/paddle5.png": solidImage(10, 2)}}
	g := New(config.DefaultArkanoidConfig(), Env{Assets: imgs})

	tests := []struct{ in, want int }{{-3, 0}, {2, 2}, {99, 4}}
	for _, tc := range tests {
		g.SelectPaddleSkin(tc.in)
		if g.Skin() != tc.want {
			t.Errorf("SelectPaddleSkin(%d): Skin() = %d, expected %d", tc.in, g.Skin(), tc.want)
		}
	}

	g.StartNewGame()
	for _, it := range g.DrawList() {
		if it.Kind == core.DrawPaddle && it.Image == nil {
			t.Error("paddle should carry the skin image")
		}
	}
	g.SelectPaddleSkin(0)
	for _, it := range g.DrawList() {
		if it.Kind == core.DrawPaddle && it.Image != nil {
			t.Error("missing skin should fall back to a plain paddle")
		}
	}
}

func TestDrawList(t *testing.T) {
	g, _ := newTestGame()

	dl := g.DrawList()
	if dl.Count(core.DrawBackground) != 1 || dl.Count(core.DrawBrick) != 0 {
		t.Errorf("menu draw list = %+v", dl)
	}

	g.StartNewGame()
	dl = g.DrawList()
	if dl[0].Kind != core.DrawBackground || dl[0].Gradient[0] != bgTop {
		t.Error("background should come first, as a gradient")
	}
	if got, want := dl.Count(core.DrawBrick), g.Level().Remaining(); got != want {
		t.Errorf("bricks drawn = %d, expected %d", got, want)
	}
	if dl.Count(core.DrawPaddle) != 1 || dl.Count(core.DrawBall) != 1 {
		t.Error("expected one paddle and one ball")
	}

	g.Step(input(core.ActionSettings))
	selected := 0
	for _, it := range g.DrawList() {
		if it.Selected {
			selected++
		}
	}
	if selected != 1 {
		t.Errorf("selected settings entries = %d, expected 1", selected)
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 900)
	for i := range inputs {
		switch {
		case i == 10:
			inputs[i] = input(core.ActionLaunch)
		case i%40 < 15:
			inputs[i] = input(core.ActionLeft)
		case i%40 < 30:
			inputs[i] = input(core.ActionRight)
		default:
			inputs[i] = input()
		}
	}

	run := func() Snapshot {
		g := New(config.DefaultArkanoidConfig(), Env{Seed: 12345})
		g.StartNewGame()
		for _, in := range inputs {
			if g.Step(in).State.Finished() {
				break
			}
		}
		return g.Snapshot()
	}

	s1, s2 := run(), run()
	if s1.Hash() != s2.Hash() {
		t.Errorf("hashes differ: %d vs %d", s1.Hash(), s2.Hash())
	}
	if s1.Tick == 0 {
		t.Error("simulation never ran")
	}
}

func TestMultipleSessionsAreIsolated(t *testing.T) {
	a, _ := newTestGame()
	b, _ := newTestGame()
	a.StartNewGame()
	b.StartNewGame()
	a.SetMusicEnabled(false)
	a.SelectPaddleSkin(3)

	if !b.MusicEnabled() || b.Skin() != 0 {
		t.Error("settings leaked between sessions")
	}
}
