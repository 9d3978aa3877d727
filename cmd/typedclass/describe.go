package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/typedclass/internal/cli"
	"github.com/aretw0/typedclass/internal/presentation/tui"
	"github.com/aretw0/typedclass/pkg/class"
)

var describeCmd = &cobra.Command{
	Use:   "describe [structure]...",
	Short: "Print the fields of the declared structures",
	Run: func(cmd *cobra.Command, args []string) {
		opts := globalOptions(cmd)
		raw, _ := cmd.Flags().GetBool("raw")

		reg, err := cli.LoadRegistry(opts, cli.NewLogger(opts.Debug), class.Hooks{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		render := cli.Renderer(os.Stdout)
		if raw {
			render = tui.PlainRenderer()
		}
		if err := cli.RunDescribe(os.Stdout, reg, args, render); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("raw", false, "Print markdown without terminal rendering")
}
