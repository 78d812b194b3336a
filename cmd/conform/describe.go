package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/conform/internal/cli"
	"github.com/aretw0/conform/internal/presentation/markdown"
	"github.com/aretw0/conform/internal/presentation/tui"
	"github.com/aretw0/conform/pkg/ports"
	"github.com/aretw0/conform/pkg/schema"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var describeCmd = &cobra.Command{
	Use:   "describe [schema-file]",
	Short: "Render a schema as a readable table",
	Long: `Prints a markdown description of a schema file, or of a stored schema
with --name. On a terminal the markdown is rendered; use --raw to print it as is.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		raw, _ := cmd.Flags().GetBool("raw")

		var (
			node  *schema.Node
			title string
			err   error
		)
		switch {
		case len(args) == 1 && name == "":
			node, err = schema.ParseFile(args[0], cli.DecodeOptions(cfg)...)
			title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		case len(args) == 0 && name != "":
			title = name
			err = withStore(cmd, func(store ports.SchemaStore) error {
				node, err = store.Get(cmd.Context(), name)
				return err
			})
		default:
			return fmt.Errorf("give either a schema file or --name")
		}
		if err != nil {
			return err
		}

		doc := markdown.Describe(title, node)
		if raw || !tui.IsTerminal(os.Stdout) {
			_, err = fmt.Fprint(cmd.OutOrStdout(), doc)
			return err
		}

		width, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			width = 0
		}
		render, err := tui.NewRenderer(width)
		if err != nil {
			return err
		}
		out, err := render(doc)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)

	describeCmd.Flags().StringP("name", "n", "", "Describe a stored schema")
	describeCmd.Flags().String("remote", "", "Read --name from the conform server at this URL")
	describeCmd.Flags().Bool("raw", false, "Print markdown without rendering")
}
