package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/typedclass/internal/cli"
	"github.com/aretw0/typedclass/pkg/class"
)

var checkCmd = &cobra.Command{
	Use:   "check <structure> <document>...",
	Short: "Construct a structure from YAML or JSON documents",
	Long: `Binds each document to the structure and reports whether construction succeeds.
Use "-" to read a document from stdin. With --many, each file holds a list of
documents (a top-level sequence or a "---" separated stream).`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		opts := globalOptions(cmd)
		many, _ := cmd.Flags().GetBool("many")
		noColor, _ := cmd.Flags().GetBool("no-color")

		logger := cli.NewLogger(opts.Debug)
		reg, err := cli.LoadRegistry(opts, logger, class.Hooks{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		_, err = cli.RunCheck(os.Stdout, reg, cli.CheckOptions{
			Structure: args[0],
			Paths:     args[1:],
			Many:      many,
			Color:     !noColor && cli.IsTerminal(os.Stdout),
			Stdin:     os.Stdin,
		})
		if err != nil {
			if !errors.Is(err, cli.ErrCheckFailed) {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("many", false, "Each document file holds several documents")
	checkCmd.Flags().Bool("no-color", false, "Disable coloured output")
}
