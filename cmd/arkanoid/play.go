package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-arkanoid/internal/platform/tui"
)

var (
	flagSkin    int
	flagNoMusic bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run directly",
	Long: `Start a run at level 1 without the main hall.

Controls:
  A/D, Left/Right - Move paddle
  Space           - Launch the ball
  P               - Pause
  Esc             - Settings (music, main menu)
  M               - Music on/off
  R / T           - Restart / retry level (after the run ends)
  H               - Leave the run
  Ctrl+S          - Save a text screenshot
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - More lives, wider paddle, fewer hard and unbreakable bricks
  normal - Default rates
  hard   - Fewer lives, narrower paddle, more hard and unbreakable bricks
  fixed  - Brick rates stay at their level 1 values

Examples:
  arkanoid play
  arkanoid play --difficulty easy
  arkanoid play --skin 2 --no-music
  arkanoid play --seed 42
  arkanoid play --config ./my-arkanoid.toml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagSkin, "skin", -1, "Paddle skin 1-5 (default from config)")
	playCmd.Flags().BoolVar(&flagNoMusic, "no-music", false, "Start with music off")
}

func runPlay(_ *cobra.Command, _ []string) error {
	a, err := newApp(setupOptions{audio: true, store: true})
	if err != nil {
		return err
	}
	defer a.close()

	skin := a.cfg.Assets.Skin
	if flagSkin > 0 {
		skin = flagSkin - 1
	}
	music := a.cfg.Audio.Music && !flagNoMusic

	game := a.newGame(skin, music)
	if _, err := tui.Run(game, a.store, a.logger, a.runtimeConfig()); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
