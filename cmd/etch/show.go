package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <tree.json>",
	Short: "Render a saved unified tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, hideValues := outputOptions(cmd)

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read tree: %w", err)
		}
		eng, err := newEngine()
		if err != nil {
			return err
		}
		t, err := eng.LoadUnified(string(data))
		if err != nil {
			return err
		}
		return renderTree(cmd.OutOrStdout(), t, format, hideValues, isTerminal(os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	outputFlags(showCmd)
}
