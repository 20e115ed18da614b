package arkanoid

import (
	"image"
	"image/color"

	"github.com/vovakirdan/tui-arkanoid/internal/assets"
	"github.com/vovakirdan/tui-arkanoid/internal/audio"
	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// constRand always returns the same draw.
type constRand float64

func (r constRand) Float64() float64 { return float64(r) }

// seqRand replays a list of draws, cycling.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

type fakeAssets struct {
	lines  map[string][]string
	images map[string]image.Image
}

func (f *fakeAssets) LoadLines(path string) ([]string, error) {
	if l, ok := f.lines[path]; ok {
		return l, nil
	}
	return nil, assets.ErrNotFound
}

func (f *fakeAssets) LoadImage(path string) (image.Image, error) {
	if img, ok := f.images[path]; ok {
		return img, nil
	}
	return nil, assets.ErrNotFound
}

func (f *fakeAssets) LoadScaled(path string, w, h int) (image.Image, error) {
	return f.LoadImage(path)
}

type fakeTrack struct {
	path    string
	stops   int
	pauses  int
	resumes int
}

func (t *fakeTrack) Pause()          { t.pauses++ }
func (t *fakeTrack) Resume()         { t.resumes++ }
func (t *fakeTrack) Stop()           { t.stops++ }
func (t *fakeTrack) IsRunning() bool { return t.stops == 0 }

type fakeAudio struct {
	available map[string]bool // nil means every path plays
	tracks    []*fakeTrack
	effects   []string
}

func (f *fakeAudio) Loop(path string) audio.Track {
	if f.available != nil && !f.available[path] {
		return audio.NopTrack{}
	}
	t := &fakeTrack{path: path}
	f.tracks = append(f.tracks, t)
	return t
}

func (f *fakeAudio) PlayOnce(path string) {
	f.effects = append(f.effects, path)
}

func solidImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	return img
}

// levelFrom builds a level directly from bricks, one slot each.
func levelFrom(bricks ...*Brick) *Level {
	return &Level{Rows: 1, Cols: len(bricks), bricks: bricks}
}

func testBuilder(lines map[string][]string, rng Rand) *LevelBuilder {
	cfg := config.DefaultArkanoidConfig()
	return &LevelBuilder{
		Lines:      &fakeAssets{lines: lines},
		Images:     &fakeAssets{},
		Rand:       rng,
		Difficulty: config.NewDifficultyManager(cfg.Difficulty),
		Bricks:     cfg.Bricks,
		Width:      cfg.Playfield.Width,
		Height:     cfg.Playfield.Height,
	}
}

// newTestGame returns a game with all-normal bricks and music on.
func newTestGame() (*Game, *fakeAudio) {
	au := &fakeAudio{}
	g := New(config.DefaultArkanoidConfig(), Env{
		Assets: &fakeAssets{},
		Audio:  au,
		Rand:   constRand(0.99),
		Music:  true,
	})
	return g, au
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// playing puts a started game into the playing state with one ball in
// mid-air, clear of bricks and paddle.
func playing(g *Game) *Ball {
	g.StartNewGame()
	b := &Ball{X: 400, Y: 300, R: 8, VX: 0, VY: -4}
	g.balls = []*Ball{b}
	g.state = StatePlaying
	return b
}
