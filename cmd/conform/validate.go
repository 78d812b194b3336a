package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/conform/internal/cli"
	"github.com/aretw0/conform/internal/presentation/tui"
	"github.com/aretw0/conform/pkg/client"
	"github.com/aretw0/conform/pkg/document"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/schema"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Check documents against a schema",
	Long: `Checks every document in the given files against a schema and prints
PASS or FAIL per document. Multi-document YAML files are checked document by
document; "-" reads from standard input.

The schema comes from a file (--schema) or from the schema store (--name).
With --remote the check runs on a conform server instead of in process.

Exits with status 1 when any document fails or cannot be read.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("schema", "s", "", "Schema file (YAML or JSON)")
	validateCmd.Flags().StringP("name", "n", "", "Name of a stored schema")
	validateCmd.Flags().String("remote", "", "Validate through the conform server at this URL")
	validateCmd.Flags().String("format", "auto", "Document format: auto, json or yaml")
	validateCmd.Flags().Bool("no-color", false, "Disable colored output")
	validateCmd.MarkFlagsMutuallyExclusive("schema", "name")
	validateCmd.MarkFlagsOneRequired("schema", "name")
}

func runValidate(cmd *cobra.Command, args []string) error {
	schemaPath, _ := cmd.Flags().GetString("schema")
	name, _ := cmd.Flags().GetString("name")
	remote, _ := cmd.Flags().GetString("remote")
	formatName, _ := cmd.Flags().GetString("format")
	noColor, _ := cmd.Flags().GetBool("no-color")

	format, err := document.ParseFormat(formatName)
	if err != nil {
		return err
	}

	var node *schema.Node
	if schemaPath != "" {
		node, err = schema.ParseFile(schemaPath, cli.DecodeOptions(cfg)...)
		if err != nil {
			return err
		}
	}

	ctx := domain.WithSource(cmd.Context(), domain.SourceCLI)

	var checker cli.Checker
	if remote != "" {
		c, err := client.New(remote)
		if err != nil {
			return err
		}
		checker = cli.RemoteChecker{Client: c, Node: node, Name: name}
	} else {
		store, closeStore, err := cli.OpenStore(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer closeStore()

		engine, err := cli.CreateEngine(cfg, store, logger, domain.ValidationHooks{})
		if err != nil {
			return err
		}
		checker = cli.LocalChecker{Engine: engine, Node: node, Name: name}
	}

	results := cli.ValidateFiles(ctx, checker, args, format, cmd.InOrStdin())

	printer := tui.NewPrinter(cmd.OutOrStdout(), !noColor && tui.IsTerminal(os.Stdout))
	for _, r := range results {
		switch {
		case r.Err != nil:
			printer.Error(r.Label(), r.Err)
		case r.Valid:
			printer.Pass(r.Label())
		default:
			printer.Fail(r.Label())
		}
	}

	failed := cli.CountFailures(results)
	if len(results) > 1 {
		printer.Summary(len(results), failed)
	}

	// A lookup failure hits every document the same way; surface it once.
	if len(results) > 0 && failed == len(results) && errors.Is(results[0].Err, domain.ErrSchemaNotFound) {
		return fmt.Errorf("schema %q: %w", name, domain.ErrSchemaNotFound)
	}
	if failed > 0 {
		return errValidationFailed
	}
	return nil
}
