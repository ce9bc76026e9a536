package main

import (
	"fmt"

	"github.com/aretw0/japanizer"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of japanizer",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "japanizer version %s\n", japanizer.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
