package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/conform/internal/cli"
	"github.com/aretw0/conform/pkg/client"
	"github.com/aretw0/conform/pkg/ports"
	"github.com/aretw0/conform/pkg/schema"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage stored schemas",
	Long: `Reads and writes the schema store configured under "store", or the store
of a conform server when --remote is set.`,
}

var schemaPutCmd = &cobra.Command{
	Use:   "put <name> <file>",
	Short: "Store the schema in file under name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		node, err := schema.ParseFile(args[1], cli.DecodeOptions(cfg)...)
		if err != nil {
			return err
		}
		return withStore(cmd, func(store ports.SchemaStore) error {
			if err := store.Put(cmd.Context(), args[0], node); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %s\n", args[0])
			return nil
		})
	},
}

var schemaGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print a stored schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		return withStore(cmd, func(store ports.SchemaStore) error {
			node, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var data []byte
			switch output {
			case "yaml":
				data, err = yaml.Marshal(node)
			case "json":
				data, err = json.MarshalIndent(node, "", "  ")
				data = append(data, '\n')
			default:
				return fmt.Errorf("unknown output format %q", output)
			}
			if err != nil {
				return fmt.Errorf("encode schema: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		})
	},
}

var schemaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored schema names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store ports.SchemaStore) error {
			names, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		})
	},
}

var schemaDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove a stored schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store ports.SchemaStore) error {
			return store.Delete(cmd.Context(), args[0])
		})
	},
}

// withStore opens the local store, or the remote one when --remote is set,
// and closes it after fn returns.
func withStore(cmd *cobra.Command, fn func(ports.SchemaStore) error) error {
	remote, _ := cmd.Flags().GetString("remote")
	if remote != "" {
		c, err := client.New(remote)
		if err != nil {
			return err
		}
		return fn(c.Store())
	}

	store, closeStore, err := cli.OpenStore(cmd.Context(), cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(store)
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.AddCommand(schemaPutCmd, schemaGetCmd, schemaListCmd, schemaDeleteCmd)

	schemaCmd.PersistentFlags().String("remote", "", "Use the schema store of the conform server at this URL")
	schemaGetCmd.Flags().StringP("output", "o", "yaml", "Output format: yaml or json")
}
