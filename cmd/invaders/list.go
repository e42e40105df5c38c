package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/invaders/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available games",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Available games:")
		fmt.Fprintln(out)
		for _, g := range registry.List() {
			fmt.Fprintf(out, "  %-12s %s\n", g.ID, g.Title)
		}
	},
}
