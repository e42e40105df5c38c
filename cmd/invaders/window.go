package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/invaders/internal/invaders"
	"github.com/vovakirdan/invaders/internal/platform/window"
	"github.com/vovakirdan/invaders/internal/storage"
)

var flagScale float64

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Start a campaign in a desktop window. Controls match the terminal,
with Escape as an extra quit key.

Examples:
  invaders window
  invaders window --scale 1.5 --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window size relative to the playfield")
	addSoundFlags(windowCmd)
}

func runWindow(cmd *cobra.Command, _ []string) error {
	snd, closeSound := openSound()
	defer closeSound()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	game := invaders.NewGame(invaders.WithSound(snd))
	w := window.New(game, window.Options{
		Scale:    flagScale,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Store:    store,
		Logger:   logger,
	})

	if err := window.Run(w, game.Title()); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}
