// arkanoid is a brick breaker for the terminal.
//
// Usage:
//
//	arkanoid                 - Start the main hall (same as "menu")
//	arkanoid menu            - Main hall: start, paddle skin, music, scores
//	arkanoid play            - Start a run directly
//	arkanoid scores          - Show the best finished runs
//	arkanoid levels          - List levels and where their layouts come from
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: from config, 60)
//	--seed <value>        - Set RNG seed for reproducible brick classes
//	--db <path>           - Set database path (default: ~/.arkanoid/runs.db)
//	--config <path>       - Custom YAML or TOML config
//	--assets <dir>        - Extra asset directory, searched first
//	--difficulty <name>   - easy, normal, hard or fixed
//	--log <path>          - Log file (default: ~/.arkanoid/arkanoid.log)
//	--verbose             - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagAssets     string
	flagDifficulty string
	flagLogPath    string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arkanoid",
	Short: "Arkanoid - break bricks in your terminal",
	Long: `Arkanoid is a brick breaker played in the terminal.

Available commands:
  menu     - Main hall (default)
  play     - Start a run directly
  scores   - View the best finished runs
  levels   - List levels and their layout sources

Examples:
  arkanoid
  arkanoid play --difficulty hard
  arkanoid play --skin 3 --no-music
  arkanoid scores --limit 20
  arkanoid levels --assets ./my-levels`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arkanoid/runs.db", "Path to run history database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config (YAML or TOML)")
	pf.StringVar(&flagAssets, "assets", "", "Asset directory searched before the configured roots")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogPath, "log", "~/.arkanoid/arkanoid.log", "Log file path")
	pf.BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
}
