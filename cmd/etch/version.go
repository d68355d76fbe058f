package main

import (
	"fmt"

	"github.com/aretw0/etchmory"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of etch",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "etch version %s\n", etchmory.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
