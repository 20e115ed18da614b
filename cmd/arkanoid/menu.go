package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid"
	"github.com/vovakirdan/tui-arkanoid/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the main hall",
	Long: `Start arkanoid in interactive menu mode.

The main hall starts a run, picks the paddle skin, toggles music and opens
the high score table. Leaving a run with H (or Main Menu in the settings
overlay) returns here.

Controls:
  Up/Down/j/k   - Navigate menu
  Left/Right    - Change skin or music in place
  Enter/Space   - Select
  Tab           - High scores
  Q             - Quit

Examples:
  arkanoid menu
  arkanoid menu --fps 30
  arkanoid menu --db ./runs.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	a, err := newApp(setupOptions{audio: true, store: true})
	if err != nil {
		return err
	}
	defer a.close()

	cfg := a.runtimeConfig()
	hall := tui.HallState{Skin: a.cfg.Assets.Skin, Music: a.cfg.Audio.Music}
	game := a.newGame(hall.Skin, hall.Music)

	// Menu loop
	for {
		res, err := tui.RunMenu(a.store, cfg, hall)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		cfg = res.Config
		hall = res.State
		if res.Quit() {
			return nil
		}

		switch res.Choice {
		case tui.MenuChoiceScores:
			goBack, err := tui.RunScoreboard(a.store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if !goBack {
				return nil
			}

		case tui.MenuChoiceSkins:
			skin, quit, err := tui.RunSkinPicker(a.assets, hall.Skin, cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if quit {
				return nil
			}
			hall.Skin = skin

		case tui.MenuChoiceStart:
			game.SelectPaddleSkin(hall.Skin)
			game.SetMusicEnabled(hall.Music)
			run, err := tui.Run(game, a.store, a.logger, cfg)
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}
			// Settings changed during the run carry back to the hall.
			hall.Music = game.MusicEnabled()
			if run.Quit {
				return nil
			}
			if game.State() != arkanoid.StateMenu {
				game.ReturnToMenu()
			}
		}
	}
}
