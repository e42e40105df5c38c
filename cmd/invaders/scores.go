package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/invaders/internal/invaders"
	"github.com/vovakirdan/invaders/internal/registry"
	"github.com/vovakirdan/invaders/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores with the wave reached and the result.

Examples:
  invaders scores
  invaders scores --limit 25
  invaders scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(invaders.GameID); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Scores cleared.")
		return nil
	}

	return printScores(cmd.OutOrStdout(), store, invaders.GameID, flagLimit)
}

// printScores writes the score table and a summary line for gameID.
func printScores(w io.Writer, store *storage.Store, gameID string, limit int) error {
	scores, err := store.TopScores(gameID, limit)
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(w, "High Scores - %s\n\n", registry.Title(gameID))

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'invaders play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %10s  %-4s  %-6s  %s\n", "Rank", "Score", "Wave", "Result", "Date")
	fmt.Fprintf(w, "  %-4s  %10s  %-4s  %-6s  %s\n", "----", "-----", "----", "------", "----")

	for i, e := range scores {
		wave, result := "-", "-"
		if e.Wave > 0 {
			wave = fmt.Sprint(e.Wave)
		}
		if e.Outcome != "" {
			result = e.Outcome
		}
		p.Fprintf(w, "  %-4d  %10d  %-4s  %-6s  %s\n",
			i+1, e.Score, wave, result, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	p.Fprintf(w, "Best: %d  Games: %d  Wins: %d  Best wave: %d\n",
		stats.HighScore, stats.GamesCount, stats.Wins, stats.BestWave)
	return nil
}
