package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/typedclass"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of typedclass",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("typedclass version %s\n", strings.TrimSpace(typedclass.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
