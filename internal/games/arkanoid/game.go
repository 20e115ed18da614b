package arkanoid

import (
	"fmt"
	"image"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arkanoid/internal/audio"
	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// State is the session state.
type State int

const (
	StateMenu     State = iota // Main menu, nothing loaded
	StateServing               // Ball sways on the paddle until launched
	StatePlaying               // Physics running
	StatePaused                // Frozen, pause overlay
	StateSettings              // Frozen, settings overlay
	StateGameOver              // No lives left
	StateWin                   // Last level cleared
)

var stateNames = map[State]string{
	StateMenu:     "menu",
	StateServing:  "serving",
	StatePlaying:  "playing",
	StatePaused:   "paused",
	StateSettings: "settings",
	StateGameOver: "gameover",
	StateWin:      "win",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

const (
	musicFallback = "sounds/music.wav"
	hitSound      = "sounds/hit.wav"
)

// musicCandidates lists the tracks tried for a level, best first.
func musicCandidates(index int) []string {
	return []string{fmt.Sprintf("sounds/level%d.wav", index+1), musicFallback}
}

// Settings overlay entries.
const (
	settingsMusic = iota
	settingsMainMenu
	settingsBack
	settingsCount
)

// Game is one play session. It owns the whole mutable world and is driven
// by Step at a fixed rate.
type Game struct {
	cfg     config.ArkanoidConfig
	env     Env
	log     *log.Logger
	builder *LevelBuilder
	bounce  BounceModel

	state       State
	resumeState State

	paddle Paddle
	balls  []*Ball
	level  *Level
	drops  *DropManager
	shots  *ProjectileManager

	score      int
	lives      int
	levelIndex int
	now        time.Duration // game clock, advances only while playing
	tick       uint64
	swayPhase  float64

	expanded    bool
	baseWidth   float64
	expandUntil time.Duration

	music          audio.Track
	musicEnabled   bool
	skin           int
	skinImage      image.Image
	settingsCursor int
}

// New creates a session sitting on the main menu.
func New(cfg config.ArkanoidConfig, env Env) *Game {
	env = env.withDefaults()
	logger := env.Logger.With("component", "game")
	g := &Game{
		cfg: cfg,
		env: env,
		log: logger,
		builder: &LevelBuilder{
			Lines:      env.Assets,
			Images:     env.Assets,
			Rand:       env.Rand,
			Difficulty: config.NewDifficultyManager(cfg.Difficulty),
			Bricks:     cfg.Bricks,
			Width:      cfg.Playfield.Width,
			Height:     cfg.Playfield.Height,
			Logger:     logger,
		},
		bounce: BounceModel{
			Speed:  cfg.Ball.Speed,
			MaxVX:  cfg.Ball.MaxVX,
			MinArg: cfg.Ball.MinVYArg,
		},
		drops:        NewDropManager(cfg.PowerUps.DropSize, cfg.PowerUps.DropSpeed),
		shots:        NewProjectileManager(cfg.PowerUps),
		music:        audio.NopTrack{},
		musicEnabled: env.Music,
		state:        StateMenu,
	}
	g.SelectPaddleSkin(env.Skin)
	g.resetPaddle()
	return g
}

// StartNewGame begins a run at level 1 with fresh score and lives.
func (g *Game) StartNewGame() {
	g.score = 0
	g.lives = g.cfg.Gameplay.Lives
	g.now = 0
	g.tick = 0
	g.loadLevel(0)
	g.log.Info("new game", "lives", g.lives)
}

// Retry replays the current level with fresh score and lives.
func (g *Game) Retry() {
	g.score = 0
	g.lives = g.cfg.Gameplay.Lives
	g.loadLevel(g.levelIndex)
}

// ReturnToMenu stops the music and drops the current run.
func (g *Game) ReturnToMenu() {
	g.stopMusic()
	g.state = StateMenu
	g.level = nil
	g.balls = nil
	g.drops.Clear()
	g.shots.Reset()
	g.cancelExpand()
}

// SetMusicEnabled turns level music on or off. Disabled music never opens a
// track.
func (g *Game) SetMusicEnabled(on bool) {
	if on == g.musicEnabled {
		return
	}
	g.musicEnabled = on
	if !on {
		g.stopMusic()
		return
	}
	if g.inRun() {
		g.playMusic(g.levelIndex)
		if g.state != StateServing && g.state != StatePlaying {
			g.music.Pause()
		}
	}
}

// MusicEnabled reports whether level music is on.
func (g *Game) MusicEnabled() bool { return g.musicEnabled }

// SelectPaddleSkin picks a paddle skin. Out-of-range indexes are clamped.
// The image is loaded here, not while drawing.
func (g *Game) SelectPaddleSkin(i int) {
	g.skin = ClampSkin(i)
	path := PaddleSkins[g.skin].Path
	img, err := g.env.Assets.LoadImage(path)
	if err != nil {
		logMiss(g.log, "skin", path, err)
		img = nil
	}
	g.skinImage = img
}

// Skin returns the selected skin index.
func (g *Game) Skin() int { return g.skin }

// Step advances the session by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionQuit) {
		return core.StepResult{State: g.gameState(), Quit: true}
	}

	switch g.state {
	case StateMenu:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionLaunch) {
			g.StartNewGame()
		}

	case StateServing, StatePlaying:
		if g.handleRunKeys(in) {
			break
		}
		if g.state == StateServing {
			g.updateServing(in)
		} else {
			g.updatePlaying(in)
		}

	case StatePaused:
		switch {
		case in.Has(core.ActionPause), in.Has(core.ActionBack), in.Has(core.ActionConfirm):
			g.resume()
		case in.Has(core.ActionSettings):
			g.openSettings()
		case in.Has(core.ActionHome):
			g.ReturnToMenu()
		case in.Has(core.ActionToggleMusic):
			g.SetMusicEnabled(!g.musicEnabled)
		}

	case StateSettings:
		g.updateSettings(in)

	case StateGameOver, StateWin:
		switch {
		case in.Has(core.ActionRestart), in.Has(core.ActionConfirm):
			g.StartNewGame()
		case in.Has(core.ActionRetry):
			g.Retry()
		case in.Has(core.ActionHome):
			g.ReturnToMenu()
		case in.Has(core.ActionSettings):
			g.openSettings()
		case in.Has(core.ActionToggleMusic):
			g.SetMusicEnabled(!g.musicEnabled)
		}
	}

	return core.StepResult{State: g.gameState()}
}

// handleRunKeys handles the keys shared by serving and playing and reports
// whether the state changed.
func (g *Game) handleRunKeys(in core.InputFrame) bool {
	switch {
	case in.Has(core.ActionPause):
		g.resumeState = g.state
		g.state = StatePaused
		g.music.Pause()
		return true
	case in.Has(core.ActionSettings):
		g.openSettings()
		return true
	case in.Has(core.ActionHome):
		g.ReturnToMenu()
		return true
	case in.Has(core.ActionToggleMusic):
		g.SetMusicEnabled(!g.musicEnabled)
	}
	return false
}

func (g *Game) openSettings() {
	if g.state != StatePaused && g.state != StateSettings {
		g.resumeState = g.state
	}
	g.state = StateSettings
	g.settingsCursor = 0
	g.music.Pause()
}

func (g *Game) resume() {
	g.state = g.resumeState
	if g.state == StateServing || g.state == StatePlaying {
		g.music.Resume()
	}
}

func (g *Game) updateSettings(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.settingsCursor = (g.settingsCursor + settingsCount - 1) % settingsCount
	case in.Has(core.ActionDown):
		g.settingsCursor = (g.settingsCursor + 1) % settingsCount
	case in.Has(core.ActionBack), in.Has(core.ActionSettings):
		g.state = StatePaused
	case in.Has(core.ActionHome):
		g.ReturnToMenu()
	case in.Has(core.ActionToggleMusic):
		g.SetMusicEnabled(!g.musicEnabled)
	case in.Has(core.ActionConfirm):
		switch g.settingsCursor {
		case settingsMusic:
			g.SetMusicEnabled(!g.musicEnabled)
		case settingsMainMenu:
			g.ReturnToMenu()
		case settingsBack:
			g.state = StatePaused
		}
	}
}

// inRun reports whether a level is being played, overlays included.
func (g *Game) inRun() bool {
	switch g.state {
	case StateServing, StatePlaying:
		return true
	case StatePaused, StateSettings:
		return g.resumeState == StateServing || g.resumeState == StatePlaying
	}
	return false
}

func (g *Game) updateServing(in core.InputFrame) {
	g.paddle.Move(in.Direction(), g.cfg.Playfield.Width)
	g.swayPhase += g.cfg.Serve.SwayStep
	g.placeServingBall()
	if in.Has(core.ActionLaunch) {
		g.launch()
	}
}

// placeServingBall keeps the serving ball on the paddle at the sway offset.
func (g *Game) placeServingBall() {
	if len(g.balls) == 0 {
		return
	}
	b := g.balls[0]
	half := g.paddle.W / 2
	offset := core.ClampF(g.cfg.Serve.SwayAmplitude*math.Sin(g.swayPhase), -half, half)
	b.X = g.paddle.CenterX() + offset
	b.Y = g.paddle.Y - b.R - 1
}

// launch releases the serving ball with the paddle-bounce angle of its
// current offset.
func (g *Game) launch() {
	if len(g.balls) == 0 {
		return
	}
	b := g.balls[0]
	b.VX, b.VY = g.bounce.Velocity(Offset(b.X, g.paddle.Rect()))
	g.state = StatePlaying
}

func (g *Game) updatePlaying(in core.InputFrame) {
	g.now += g.cfg.TickDuration()
	g.tick++

	w, h := g.cfg.Playfield.Width, g.cfg.Playfield.Height
	g.paddle.Move(in.Direction(), w)
	paddle := g.paddle.Rect()

	kept := g.balls[:0]
	for _, b := range g.balls {
		b.Update()
		ReflectWalls(b, w)
		BouncePaddle(b, paddle, g.bounce)
		if hit, ok := CollideBricks(b, g.level); ok {
			g.applyHit(hit)
		}
		if Lost(b, h) {
			continue
		}
		kept = append(kept, b)
	}
	clear(g.balls[len(kept):])
	g.balls = kept

	for _, kind := range g.drops.Update(g.paddle.Rect(), h) {
		g.applyPowerUp(kind)
	}
	g.expireEffects()
	for _, hit := range g.shots.Update(g.now, g.paddle.Rect(), g.level) {
		g.applyHit(hit)
	}

	if len(g.balls) == 0 {
		g.loseLife()
	}
	if g.state != StateGameOver && g.level.Cleared() {
		g.advanceLevel()
	}
}

// applyHit scores a brick hit and spawns the drop of a destroyed brick.
func (g *Game) applyHit(h BrickHit) {
	if g.cfg.Audio.Sounds {
		g.env.Audio.PlayOnce(hitSound)
	}
	if h.Unbreakable {
		return
	}
	if !h.Destroyed {
		g.score += g.cfg.Scoring.Damage
		return
	}
	g.score += g.cfg.Scoring.Destroy
	if h.PowerUp.Valid() {
		g.drops.Spawn(h.PowerUp, h.X, h.Y)
	}
}

// applyPowerUp runs the effect of a collected drop. A failing effect is
// logged and discarded so the tick goes on.
func (g *Game) applyPowerUp(kind PowerUp) {
	effect, ok := powerUpEffects[kind]
	if !ok {
		g.log.Warn("unknown power-up dropped", "kind", int(kind))
		return
	}
	defer func() {
		if r := recover(); r != nil {
			g.log.Error("power-up effect failed", "kind", kind, "panic", r)
		}
	}()
	effect(g)
}

func (g *Game) loseLife() {
	g.lives--
	if g.lives <= 0 {
		g.lives = 0
		g.state = StateGameOver
		g.stopMusic()
		g.log.Info("game over", "score", g.score, "level", g.levelIndex+1)
		return
	}
	g.balls = []*Ball{g.newBall()}
	g.swayPhase = 0
	g.placeServingBall()
	g.state = StateServing
}

func (g *Game) advanceLevel() {
	if g.levelIndex+1 >= g.cfg.Gameplay.Levels {
		g.state = StateWin
		g.stopMusic()
		g.log.Info("campaign won", "score", g.score)
		return
	}
	g.loadLevel(g.levelIndex + 1)
}

// loadLevel builds level index and puts a fresh ball on a centered paddle.
func (g *Game) loadLevel(index int) {
	g.levelIndex = index
	lvl, err := g.builder.Load(index)
	if err != nil {
		g.log.Warn("level load failed, using preset", "level", index+1, "error", err)
		if lvl, err = g.builder.preset(index); err != nil {
			g.log.Error("no playable level, back to menu", "level", index+1, "error", err)
			g.ReturnToMenu()
			return
		}
	}
	g.level = lvl
	g.log.Debug("level loaded", "level", index+1, "source", lvl.Source,
		"rows", lvl.Rows, "cols", lvl.Cols, "bricks", lvl.Remaining())

	g.drops.Clear()
	g.shots.Reset()
	g.cancelExpand()
	g.resetPaddle()
	g.balls = []*Ball{g.newBall()}
	g.swayPhase = 0
	g.placeServingBall()
	g.state = StateServing
	g.playMusic(index)
}

func (g *Game) resetPaddle() {
	p := g.cfg.Paddle
	g.paddle = Paddle{
		X:     (g.cfg.Playfield.Width - p.Width) / 2,
		Y:     g.cfg.Playfield.Height - p.BottomOffset,
		W:     p.Width,
		H:     p.Height,
		Speed: p.Speed,
		Inset: p.Inset,
	}
}

func (g *Game) newBall() *Ball {
	return &Ball{R: g.cfg.Ball.Radius}
}

// playMusic replaces the current track with the one for level index.
func (g *Game) playMusic(index int) {
	g.stopMusic()
	if !g.musicEnabled {
		return
	}
	for _, path := range musicCandidates(index) {
		t := g.env.Audio.Loop(path)
		if t == nil {
			continue
		}
		if _, silent := t.(audio.NopTrack); silent {
			continue
		}
		g.music = t
		return
	}
	g.log.Debug("no music for level", "level", index+1)
}

// stopMusic stops the current track once and forgets it.
func (g *Game) stopMusic() {
	if g.music != nil {
		g.music.Stop()
	}
	g.music = audio.NopTrack{}
}

func (g *Game) gameState() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.levelIndex + 1,
		GameOver: g.state == StateGameOver,
		Won:      g.state == StateWin,
		Paused:   g.state == StatePaused || g.state == StateSettings,
		InMenu:   g.state == StateMenu,
	}
}

// State returns the session state.
func (g *Game) State() State { return g.state }

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Lives returns the remaining lives.
func (g *Game) Lives() int { return g.lives }

// LevelIndex returns the 0-based level being played.
func (g *Game) LevelIndex() int { return g.levelIndex }

// Level returns the current level, or nil on the menu.
func (g *Game) Level() *Level { return g.level }

// Paddle returns a copy of the paddle.
func (g *Game) Paddle() Paddle { return g.paddle }

// BallCount returns the number of balls in play.
func (g *Game) BallCount() int { return len(g.balls) }

// Now returns the game clock.
func (g *Game) Now() time.Duration { return g.now }

// Config returns the settings the session was built with.
func (g *Game) Config() config.ArkanoidConfig { return g.cfg }
