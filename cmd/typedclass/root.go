package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/typedclass/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "typedclass",
	Short: "typedclass validates documents against typed structure definitions",
	Long: `typedclass loads structure definitions from a manifest (structures.yaml)
and checks YAML or JSON documents against their declared field types.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("file", "f", "structures.yaml", "Manifest declaring the structures")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
}

func globalOptions(cmd *cobra.Command) cli.Options {
	path, _ := cmd.Flags().GetString("file")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.Options{ManifestPath: path, Debug: debug}
}
