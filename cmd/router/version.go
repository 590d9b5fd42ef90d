package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// buildVersion is overridden at build time via -ldflags. Left as a
// plain var rather than a constant so it can be set that way.
var buildVersion = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the router's version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("router " + buildVersion)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
