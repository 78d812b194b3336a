package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/conform/internal/cli"
	"github.com/aretw0/conform/internal/config"
	"github.com/spf13/cobra"
)

// errValidationFailed signals exit code 1 after results were already printed.
var errValidationFailed = errors.New("validation failed")

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "conform",
	Short: "Conform checks JSON and YAML documents against declarative schemas",
	Long: `Conform validates dynamic documents against ordered schemas of field rules
(type, min, max, minSize, from, template, required).

Schemas can be used inline from a file, kept in a schema store (directory,
memory or Redis) or served over HTTP and MCP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.Log.Level, _ = cmd.Flags().GetString("log-level")
		}

		l, err := cli.CreateLogger(loaded.Log)
		if err != nil {
			return err
		}
		slog.SetDefault(l)

		cfg, logger = loaded, l
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errValidationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML or JSON configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides config)")
}
