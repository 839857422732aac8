package main

import (
	"fmt"
	"os"

	"github.com/awnumar/memguard"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/panelctl/cmd"
	"github.com/PolarWolf314/panelctl/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "panelctl",
	Short: "panelctl - A CLI for operating game servers through a hosted panel.",
	Long: `panelctl is a command-line tool for operating game-server instances
through a hosted panel.

Features:
  - Recover credentials encrypted by the legacy panel installation
  - Store them in panelctl's own configuration
  - Keep an audit trail of every recovery run

Usage:
  panelctl <command> [flags]

Run 'panelctl help <command>' for more details on a specific command.
`,
	Run: func(c *cobra.Command, args []string) {
		fmt.Println()
		figure.NewColorFigure("panelctl", "alligator2", "green", true).Print()
		fmt.Println()
		fmt.Println("Welcome to panelctl! Run " + ui.Code.Sprint("panelctl --help") + " to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.LegacyCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
	rootCmd.AddCommand(cmd.LogCmd)
}

func main() {
	// Wipe locked key buffers if the process is interrupted.
	memguard.CatchInterrupt()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		memguard.Purge()
		os.Exit(1)
	}
	memguard.Purge()
}
