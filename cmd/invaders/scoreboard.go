package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/invaders/internal/invaders"
	"github.com/vovakirdan/invaders/internal/platform/tui"
	"github.com/vovakirdan/invaders/internal/storage"
)

var scoreboardCmd = &cobra.Command{
	Use:         "scoreboard",
	Short:       "Browse high scores interactively",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationFullscreen: "true"},
	RunE:        runScoreboard,
}

func runScoreboard(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	return tui.RunScoreboard(store, invaders.GameID, width, height)
}
