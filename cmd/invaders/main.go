// invaders is an arcade shooter for the terminal, a desktop window or an
// SSH session.
//
// Usage:
//
//	invaders play            - Play in the terminal
//	invaders window          - Play in a desktop window
//	invaders serve           - Start SSH server for remote play
//	invaders scores          - Show high scores
//	invaders scoreboard      - Browse high scores interactively
//	invaders config          - Print the effective configuration
//	invaders list            - List available games
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible gameplay
//	--db <path>            - Set database path (default: ~/.invaders/scores.db)
//	--config <path>        - Load a YAML or TOML config file
//	--difficulty <preset>  - easy, normal, hard or fixed
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/invaders/internal/config"
	"github.com/vovakirdan/invaders/internal/invaders"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string

	// Set up by the root command before any subcommand runs.
	gameConfig config.InvadersConfig
	logger     *log.Logger
	logCloser  io.Closer
)

func main() {
	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "invaders",
	Short: "Alien Invaders - defend the line from a marching formation",
	Long: `Alien Invaders is an arcade shooter. A formation of aliens marches
back and forth, stepping down at each edge and firing at your ship.
Shoot them all before they reach the defense line.

Available commands:
  play        - Play in the terminal
  window      - Play in a desktop window
  serve       - Start SSH server for remote play
  scores      - Show high scores
  scoreboard  - Browse high scores interactively
  config      - Print the effective configuration
  list        - Show available games

Examples:
  invaders play
  invaders play --difficulty hard
  invaders window --scale 1.5
  invaders serve --ssh :2222
  invaders scores`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.invaders/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML or TOML config file")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(scoreboardCmd)
	rootCmd.AddCommand(configCmd)
}

// setup builds the logger and the game configuration shared by every
// subcommand. Terminal UI commands log to a discard sink unless --log-file
// is set, so log lines do not tear the alt screen.
func setup(cmd *cobra.Command, _ []string) error {
	var fallback io.Writer = os.Stderr
	if cmd.Annotations[annotationFullscreen] == "true" {
		fallback = io.Discard
	}

	l, closer, err := newLogger(flagLogLevel, flagLogFile, fallback)
	if err != nil {
		return err
	}
	logger, logCloser = l, closer

	cfg, err := loadConfig(flagConfig, flagDifficulty)
	if err != nil {
		return err
	}
	gameConfig = cfg

	invaders.SetDefaultOptions(
		invaders.WithConfig(gameConfig),
		invaders.WithLogger(logger),
	)
	return nil
}

// annotationFullscreen marks commands that take over the terminal.
const annotationFullscreen = "fullscreen"

// newLogger creates the command logger. With a file path, logs go to that
// file; otherwise they go to fallback.
func newLogger(level, file string, fallback io.Writer) (*log.Logger, io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("log: %w", err)
	}

	out := fallback
	var closer io.Closer
	if file != "" {
		f, openErr := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if openErr != nil {
			return nil, nil, fmt.Errorf("log: open %s: %w", file, openErr)
		}
		out, closer = f, f
	}

	l := log.NewWithOptions(out, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "invaders",
	})
	return l, closer, nil
}

// loadConfig reads the config file and applies the difficulty preset.
func loadConfig(path, difficulty string) (config.InvadersConfig, error) {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return config.InvadersConfig{}, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.InvadersConfig{}, err
	}

	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.InvadersConfig{}, err
	}
	return cfg, nil
}
