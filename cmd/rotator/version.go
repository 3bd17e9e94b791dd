package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/rotator"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Rotator",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Rotator %s\n", strings.TrimSpace(rotator.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
