package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/etchmory"
	"github.com/aretw0/etchmory/pkg/unified"
	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <token-file|->...",
	Short: "Merge recorded tokens into a unified tree",
	Long: `Reads tokens, one per line, from each file ("-" is standard input) and
merges them in order into a unified tree. With --seed the tree starts from a
previously exported JSON document.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, hideValues := outputOptions(cmd)
		seed, _ := cmd.Flags().GetString("seed")

		eng, err := newEngine()
		if err != nil {
			return err
		}
		t, err := seedTree(eng, seed)
		if err != nil {
			return err
		}

		for _, path := range args {
			tokens, err := readTokens(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}
			for i, tok := range tokens {
				rec, err := eng.ParseToken(tok)
				if err != nil {
					return fmt.Errorf("%s: token %d: %w", path, i+1, err)
				}
				if err := t.Merge(rec); err != nil {
					return fmt.Errorf("%s: token %d: %w", path, i+1, err)
				}
			}
			logger.Debug("tokens merged", "source", path, "count", len(tokens))
		}

		return renderTree(cmd.OutOrStdout(), t, format, hideValues, isTerminal(os.Stdout))
	},
}

func seedTree(eng *etchmory.Engine, path string) (*unified.Tree, error) {
	if path == "" {
		return eng.NewUnified(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed: %w", err)
	}
	return eng.LoadUnified(string(data))
}

// readTokens returns the non-blank lines of path, or of stdin when path is "-".
func readTokens(stdin io.Reader, path string) ([]string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var tokens []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			tokens = append(tokens, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return tokens, nil
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	outputFlags(mergeCmd)
	mergeCmd.Flags().String("seed", "", "JSON document to start from")
}
