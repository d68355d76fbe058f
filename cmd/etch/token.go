package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/etchmory/pkg/ports"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token <token>",
	Short: "Replay the decisions behind a token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		eng, err := newEngine()
		if err != nil {
			return err
		}
		rec, err := eng.ParseToken(args[0])
		if err != nil {
			return err
		}
		seq, err := rec.Replay()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(ports.Collect(seq))
		}
		for d := range ports.All(seq) {
			fmt.Fprintf(out, "%s = %s (%s)\n", d.Key, d.Value.Text(), d.Value.Kind())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().Bool("json", false, "Print the decisions as JSON")
}
