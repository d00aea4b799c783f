package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-arcade-engine/internal/config"
	"github.com/vovakirdan/tui-arcade-engine/internal/platform/tui"
	"github.com/vovakirdan/tui-arcade-engine/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Browse the hiscore archive
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./hiscores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	opts, cleanup, err := sessionOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	width, height := opts.Runtime.ScreenW, opts.Runtime.ScreenH

	for {
		menuResult, err := tui.RunMenu(width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		width, height = menuResult.Width, menuResult.Height

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(opts.Archive, width, height)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		game, err := registry.CreateConfigured(menuResult.GameID, flagConfig, config.DifficultyPreset(flagDifficulty))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		sessionOpts := opts
		sessionOpts.Runtime.ScreenW, sessionOpts.Runtime.ScreenH = width, height
		if flagSeed == 0 {
			sessionOpts.Runtime.Seed = time.Now().UnixNano()
		}

		if err := runSession(game, sessionOpts); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
