package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/typedclass"
	"github.com/aretw0/typedclass/internal/cli"
	"github.com/aretw0/typedclass/pkg/class"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [structure]",
	Short: "Print the OpenAPI schema of a structure",
	Long:  `Prints the OpenAPI 3 schema of one structure, or a document with every structure when none is named.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := globalOptions(cmd)

		reg, err := cli.LoadRegistry(opts, cli.NewLogger(opts.Debug), class.Hooks{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		var name string
		if len(args) > 0 {
			name = args[0]
		}
		if err := cli.RunSchema(os.Stdout, reg, name, strings.TrimSpace(typedclass.Version)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
