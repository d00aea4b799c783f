package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-arcade-engine/internal/hiscore"
	"github.com/vovakirdan/tui-arcade-engine/internal/platform/tui"
	"github.com/vovakirdan/tui-arcade-engine/internal/registry"
	"github.com/vovakirdan/tui-arcade-engine/internal/storage"
)

var (
	flagArchive bool
	flagBrowse  bool
	flagLimit   int
	flagClear   bool
	flagFile    string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show hiscores",
	Long: `Display the hiscore table kept in hiscores.txt next to the arcade
executable. With --archive, show the best archived submissions for a game
from the SQLite archive instead, together with its play statistics.

Examples:
  arcade scores
  arcade scores --archive catch
  arcade scores --archive --browse
  arcade scores --archive --clear catch
  arcade scores --file ./hiscores.txt`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagArchive, "archive", false, "Show the SQLite archive instead of hiscores.txt")
	scoresCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse the archive interactively")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of archived entries to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the archived hiscores of a game")
	scoresCmd.Flags().StringVar(&flagFile, "file", "", "Read this hiscore file instead of the one next to the executable")
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

func scoreTable(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func runScores(_ *cobra.Command, args []string) {
	if flagArchive || flagBrowse || flagClear {
		runArchiveScores(args)
		return
	}

	store, err := hiscoreStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	list, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading hiscores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(titleStyle.Render("Hiscores"))
	fmt.Println(store.Path())
	fmt.Println()

	if len(list) == 0 {
		fmt.Println("No hiscores yet.")
		return
	}

	rows := make([][]string, len(list))
	for i, item := range list {
		rows[i] = []string{strconv.Itoa(i + 1), item.Name, strconv.Itoa(item.Score)}
	}
	fmt.Println(scoreTable([]string{"Rank", "Name", "Score"}, rows))
}

// hiscoreStore returns the store for --file, or the hiscores.txt next to the
// executable that every engine session writes.
func hiscoreStore() (*hiscore.Store, error) {
	if flagFile != "" {
		return hiscore.NewStoreAt(flagFile), nil
	}
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("cannot locate executable: %w", err)
	}
	return hiscore.NewStore(filepath.Dir(exe)), nil
}

func runArchiveScores(args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening hiscore archive: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagBrowse {
		width, height := terminalSize()
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Error: --archive and --clear need a game")
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}
	gameID := args[0]

	if flagClear {
		if err := store.ClearHiscores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing hiscores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared archived hiscores for %s.\n", gameID)
		return
	}

	title := gameID
	if game, err := registry.Create(gameID); err == nil {
		title = game.Title()
	}

	records, err := store.TopHiscores(gameID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving hiscores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(titleStyle.Render("Hiscore Archive - " + title))
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No hiscores archived yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first hiscore!\n", gameID)
		return
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			r.Name,
			strconv.Itoa(r.Score),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		}
	}
	fmt.Println(scoreTable([]string{"Rank", "Name", "Score", "Date"}, rows))

	stats, err := store.GameStats(gameID)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Best: %d   Games: %d   Sessions: %d   Average: %.1f\n",
		stats.HighScore, stats.Submissions, stats.Sessions, stats.AvgScore)
}
