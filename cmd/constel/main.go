package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ludex/constel/cmd/constel/commands"
	"github.com/ludex/constel/pkg/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "constel",
	Short: "constel - spatial discovery constellation engine",
	Long: `constel renders a library of games, creators, and developers as a
navigable 3D constellation.

Available commands:
  view   - Open the interactive constellation viewer
  gen    - Generate a constellation dataset as JSON
  export - Export a constellation as triangle meshes

Examples:
  constel view                        # View a generated constellation
  constel view --script demo.csl      # View a scripted constellation
  constel gen --count 100 --seed 7    # Print a reproducible dataset
  constel export --out meshes.json    # Export meshes for external tools`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(verbose); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose (development) logging")
	rootCmd.PersistentFlags().StringVar(&commands.ConfigPath, "config", "constel.toml", "Path to TOML configuration file")

	rootCmd.AddCommand(commands.ViewCmd)
	rootCmd.AddCommand(commands.GenCmd)
	rootCmd.AddCommand(commands.ExportCmd)
}

func main() {
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
