package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/invaders/internal/core"
	"github.com/vovakirdan/invaders/internal/invaders"
	"github.com/vovakirdan/invaders/internal/platform/tui"
	"github.com/vovakirdan/invaders/internal/registry"
	"github.com/vovakirdan/invaders/internal/sound"
	"github.com/vovakirdan/invaders/internal/storage"
)

var (
	flagMute   bool
	flagVolume float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a campaign in the terminal.

Controls:
  Left/A, Right/D  - Move the ship
  Space            - Fire
  S/Enter          - Start, continue after a lost life or a cleared wave
  M / P            - Mute / unmute sound effects
  R                - Restart (after the campaign ends)
  Ctrl+S           - Save a screenshot
  ?                - Toggle help
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - More lives, slower formation, less enemy fire
  normal - Values from the config file
  hard   - Fewer lives, faster formation, more enemy fire
  fixed  - No speed-up between waves or after kills

Examples:
  invaders play
  invaders play --difficulty easy
  invaders play --config ./my-invaders.yaml --mute`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationFullscreen: "true"},
	RunE:        runPlay,
}

func init() {
	addSoundFlags(playCmd)
}

func addSoundFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
	cmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound effect volume (0-1)")
}

// openSound starts the audio device. Without one the game runs silent.
func openSound() (invaders.SoundPlayer, func()) {
	if flagMute || flagVolume <= 0 {
		return invaders.NopSound{}, func() {}
	}
	p, err := sound.New(flagVolume)
	if err != nil {
		logger.Warn("sound disabled", "err", err)
		return invaders.NopSound{}, func() {}
	}
	return p, p.Close
}

func runPlay(cmd *cobra.Command, _ []string) error {
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	snd, closeSound := openSound()
	defer closeSound()

	invaders.SetDefaultOptions(
		invaders.WithConfig(gameConfig),
		invaders.WithLogger(logger),
		invaders.WithSound(snd),
	)

	game, err := registry.Create(invaders.GameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, cfg, tui.WithLogger(logger)); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
