// arcade runs terminal arcade games on top of the engine: a fixed-rate frame
// loop, the built-in title, pause, quit, game over and hiscore screens, and a
// hiscores.txt table next to the executable.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores            - Show the hiscore table
//
// Global flags:
//
//	--fps <rate>             - Override the engine frame rate (default: from engine.yaml)
//	--seed <value>           - Set RNG seed for reproducible gameplay
//	--db <path>              - Set archive path (default: ~/.arcade/hiscores.db)
//	--engine-config <path>   - Use a custom engine.yaml
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-arcade-engine/internal/games/catch"
	_ "github.com/vovakirdan/tui-arcade-engine/internal/games/flappy"
	"github.com/vovakirdan/tui-arcade-engine/internal/storage"
)

var (
	// Global flags
	flagFPS          int
	flagSeed         int64
	flagDBPath       string
	flagEngineConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "TUI Arcade - Play retro games in your terminal",
	Long: `TUI Arcade runs small games on a terminal game engine.

The engine drives every game at a fixed frame rate and provides the title,
instructions, pause, quit confirmation, game over, you won and hiscore screens.
Hiscores are kept in hiscores.txt next to the arcade executable and archived
in a SQLite database.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View hiscores

Examples:
  arcade list
  arcade play catch
  arcade menu
  arcade serve --ssh :2222
  arcade scores --archive catch`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = engine config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to hiscore archive")
	rootCmd.PersistentFlags().StringVar(&flagEngineConfig, "engine-config", "", "Path to custom engine config YAML")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
