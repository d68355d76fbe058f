package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/etchmory"
	"github.com/aretw0/etchmory/internal/config"
	"github.com/aretw0/etchmory/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfg    = config.Default()
	logger = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "etch",
	Short: "etch records, merges and inspects decision histories",
	Long: `etch works with the tokens produced by etchmory recorders.
It folds them into a unified tree, shows that tree in several formats and
serves it over HTTP or the Model Context Protocol.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel, _ = cmd.Flags().GetString("log-level")
		}

		level, err := logging.ParseLevel(loaded.LogLevel)
		if err != nil {
			return err
		}
		cfg = loaded
		logger = logging.New(level)
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Configuration file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
}

// newEngine builds the library engine from the loaded configuration.
func newEngine(opts ...etchmory.Option) (*etchmory.Engine, error) {
	base := []etchmory.Option{
		etchmory.WithBackend(cfg.Backend),
		etchmory.WithLogger(logger),
	}
	return etchmory.New(append(base, opts...)...)
}

// outputFlags registers --format and --values on cmd.
func outputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", config.FormatDisplay, "Output format: json, display, mermaid or markdown")
	cmd.Flags().Bool("values", true, "Include decision values in labels")
}

// outputOptions resolves --format and --values against the configuration.
func outputOptions(cmd *cobra.Command) (format string, hideValues bool) {
	format = cfg.Format
	if cmd.Flags().Changed("format") {
		format, _ = cmd.Flags().GetString("format")
	}
	hideValues = cfg.HideValues
	if cmd.Flags().Changed("values") {
		show, _ := cmd.Flags().GetBool("values")
		hideValues = !show
	}
	return format, hideValues
}
