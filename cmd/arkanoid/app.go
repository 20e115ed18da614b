package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-arkanoid/internal/assets"
	"github.com/vovakirdan/tui-arkanoid/internal/audio"
	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid"
	"github.com/vovakirdan/tui-arkanoid/internal/storage"
)

// app holds the collaborators shared by the commands.
type app struct {
	cfg     config.ArkanoidConfig
	logger  *log.Logger
	logFile io.Closer
	assets  *assets.Source
	audio   *audio.Manager
	store   *storage.Store
}

// setupOptions selects the optional parts of the app.
type setupOptions struct {
	audio bool
	store bool
}

// newApp loads the configuration and opens what the command needs.
// Asset, audio and database failures degrade; a bad config is fatal.
func newApp(opts setupOptions) (*app, error) {
	a := &app{}
	a.logger, a.logFile = openLogger(flagLogPath, flagVerbose)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		a.close()
		return nil, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		a.logger.Warn("environment overrides ignored", "error", err)
	}
	if flagDifficulty != "" || cfg.Difficulty.Preset != "" {
		name := flagDifficulty
		if name == "" {
			name = cfg.Difficulty.Preset
		}
		preset, err := config.ParsePreset(name)
		if err != nil {
			a.close()
			return nil, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	if flagFPS > 0 {
		cfg.Gameplay.TickRate = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		a.close()
		return nil, err
	}
	a.cfg = cfg

	roots := make([]string, 0, len(cfg.Assets.Roots)+1)
	if flagAssets != "" {
		roots = append(roots, flagAssets)
	}
	for _, r := range cfg.Assets.Roots {
		roots = append(roots, config.ExpandHome(r))
	}
	a.assets = assets.NewSource(a.logger.With("component", "assets"), roots...)
	a.logger.Debug("asset roots", "roots", roots)

	if opts.audio {
		a.audio = audio.NewManager(a.assets, a.logger.With("component", "audio"))
		if err := a.audio.Init(); err != nil {
			a.logger.Warn("audio disabled", "error", err)
		}
	}

	if opts.store {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
			a.logger.Warn("run history disabled", "db", flagDBPath, "error", err)
		} else {
			a.store = store
		}
	}

	return a, nil
}

// openLogger writes logs to a file: the terminal belongs to the game.
func openLogger(path string, verbose bool) (*log.Logger, io.Closer) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	opts := log.Options{ReportTimestamp: true, Prefix: "arkanoid", Level: level}

	path = config.ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return log.NewWithOptions(io.Discard, opts), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return log.NewWithOptions(io.Discard, opts), nil
	}
	return log.NewWithOptions(f, opts), f
}

// newGame creates a session with the given hall settings.
func (a *app) newGame(skin int, music bool) *arkanoid.Game {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	env := arkanoid.Env{
		Assets: a.assets,
		Logger: a.logger,
		Seed:   uint64(seed), //#nosec G115 -- any bit pattern is a valid seed
		Skin:   skin,
		Music:  music,
	}
	if a.audio != nil {
		env.Audio = a.audio
	}
	a.logger.Info("session", "seed", seed, "skin", skin, "music", music,
		"difficulty", a.cfg.Difficulty.Preset)
	return arkanoid.New(a.cfg, env)
}

// runtimeConfig sizes the screen from the terminal.
func (a *app) runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW, rc.ScreenH = w, h
	}
	if a.cfg.Gameplay.TickRate > 0 {
		rc.TickRate = a.cfg.Gameplay.TickRate
	}
	rc.Seed = flagSeed
	return rc
}

func (a *app) close() {
	var errs []error
	if a.audio != nil {
		a.audio.Close()
	}
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
	}
	if err := errors.Join(errs...); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: shutdown: %v\n", err)
	}
}
