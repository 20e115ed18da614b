package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List levels and where their layouts come from",
	Long: `List levels 1..N of the campaign. A level uses levels/level<n>.txt from
the asset roots when present and well-formed, and a built-in preset otherwise.

Examples:
  arkanoid levels
  arkanoid levels --assets ./my-levels`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	a, err := newApp(setupOptions{})
	if err != nil {
		return err
	}
	defer a.close()

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-5s  %-7s  %-9s  %s\n", "Level", "Source", "Size", "Path")
	fmt.Printf("  %-5s  %-7s  %-9s  %s\n", "-----", "------", "----", "----")

	for i := range a.cfg.Gameplay.Levels {
		info := arkanoid.Describe(a.assets, i)
		size := fmt.Sprintf("%dx%d", info.Cols, info.Rows)
		fmt.Printf("  %-5d  %-7s  %-9s  %s\n", info.Number, info.Source, size, arkanoid.LevelPath(i))
		if info.Err != nil {
			fmt.Printf("         invalid, the preset is used instead: %v\n", info.Err)
		}
	}
	return nil
}
