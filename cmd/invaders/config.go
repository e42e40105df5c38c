package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var flagTOML bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the config file search and the
difficulty preset. The output can be saved to
~/.invaders/configs/invaders.yaml (or .toml) and edited.

Examples:
  invaders config > ~/.invaders/configs/invaders.yaml
  invaders config --difficulty hard --toml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagTOML, "toml", false, "Print TOML instead of YAML")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if flagTOML {
		if err := toml.NewEncoder(out).Encode(gameConfig); err != nil {
			return fmt.Errorf("config: encode toml: %w", err)
		}
		return nil
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(gameConfig); err != nil {
		return fmt.Errorf("config: encode yaml: %w", err)
	}
	return enc.Close()
}
