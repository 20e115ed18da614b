package arkanoid

import (
	"image"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arkanoid/internal/assets"
	"github.com/vovakirdan/tui-arkanoid/internal/audio"
)

// AssetSource is what the game needs from the asset loader.
type AssetSource interface {
	LineSource
	ImageSource
}

// AudioPlayer is what the game needs from the audio backend.
type AudioPlayer interface {
	Loop(path string) audio.Track
	PlayOnce(path string)
}

// Env carries the collaborators of one game session. Nothing in it is
// global, so several sessions can run side by side.
type Env struct {
	Assets AssetSource
	Audio  AudioPlayer
	Logger *log.Logger
	Rand   Rand // brick classes; seeded from Seed when nil
	Seed   uint64
	Skin   int
	Music  bool
}

var discardLogger = log.New(io.Discard)

// NewRand returns a seeded generator.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// withDefaults fills the unset collaborators with silent fallbacks.
func (e Env) withDefaults() Env {
	if e.Assets == nil {
		e.Assets = noAssets{}
	}
	if e.Audio == nil {
		e.Audio = noAudio{}
	}
	if e.Logger == nil {
		e.Logger = discardLogger
	}
	if e.Rand == nil {
		e.Rand = NewRand(e.Seed)
	}
	return e
}

type noAssets struct{}

func (noAssets) LoadLines(string) ([]string, error)     { return nil, assets.ErrNotFound }
func (noAssets) LoadImage(string) (image.Image, error) { return nil, assets.ErrNotFound }
func (noAssets) LoadScaled(string, int, int) (image.Image, error) {
	return nil, assets.ErrNotFound
}

type noAudio struct{}

func (noAudio) Loop(string) audio.Track { return audio.NopTrack{} }
func (noAudio) PlayOnce(string)         {}
