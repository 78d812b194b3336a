package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/aretw0/conform/internal/cli"
	"github.com/aretw0/conform/pkg/adapters/mcp"
	"github.com/aretw0/conform/pkg/observability"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts conform as an MCP Server.
This allows AI agents to validate documents and browse stored schemas as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		addr := cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		store, closeStore, err := cli.OpenStore(cmd.Context(), cfg.Store)
		if err != nil {
			return err
		}
		defer closeStore()

		engine, err := cli.CreateEngine(cfg, store, logger, observability.LoggingHooks(logger))
		if err != nil {
			return err
		}

		var opts []mcp.Option
		if cfg.Validation.StrictRules {
			opts = append(opts, mcp.WithStrictRules())
		}
		srv := mcp.NewServer(engine, opts...)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting conform MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, addr, baseURL(addr)); err != nil {
				return fmt.Errorf("MCP server failed: %w", err)
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

// baseURL is the URL advertised to SSE clients.
func baseURL(addr string) string {
	if cfg.Server.BaseURL != "" {
		return strings.TrimRight(cfg.Server.BaseURL, "/")
	}
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("addr", ":8080", "Address to listen on (only for SSE, overrides config)")
}
