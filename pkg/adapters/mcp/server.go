package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/conform"
	"github.com/aretw0/conform/pkg/document"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
	"github.com/aretw0/conform/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// SchemasURI is the resource listing stored schema names.
const SchemasURI = "conform://schemas"

// ValidateArgs are the arguments of the validate tool.
type ValidateArgs struct {
	Schema     string `json:"schema,omitempty"`
	SchemaName string `json:"schema_name,omitempty"`
	Subject    string `json:"subject"`
}

// ValidateResult is the structured output of the validate tool.
type ValidateResult struct {
	Valid      bool   `json:"valid" jsonschema_description:"Whether the subject conforms to the schema"`
	SchemaName string `json:"schema_name,omitempty" jsonschema_description:"The stored schema used, if any"`
}

// SchemaListResult is the structured output of the list_schemas tool.
type SchemaListResult struct {
	Schemas []string `json:"schemas" jsonschema_description:"Names of the stored schemas"`
}

// GetSchemaArgs are the arguments of the get_schema tool.
type GetSchemaArgs struct {
	Name string `json:"name"`
}

// Engine defines the validation core exposed over MCP.
type Engine interface {
	Validate(ctx context.Context, subject any, node *schema.Node) bool
	ValidateNamed(ctx context.Context, name string, subject any) (bool, error)
	Store() ports.SchemaStore
}

// Server wraps the Engine and exposes it as an MCP Server.
type Server struct {
	engine     Engine
	mcpServer  *server.MCPServer
	decodeOpts []schema.DecodeOption
}

// Option configures a Server.
type Option func(*Server)

// WithStrictRules rejects inline schemas carrying unknown rule names.
func WithStrictRules() Option {
	return func(s *Server) {
		s.decodeOpts = append(s.decodeOpts, schema.WithStrictRules())
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("conform-mcp", strings.TrimSpace(conform.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: validate
	validateTool := mcp.NewTool("validate",
		mcp.WithDescription("Check a JSON or YAML document against an inline schema or a stored one."),
		mcp.WithString("schema", mcp.Description("Inline schema as JSON or YAML (omit when schema_name is set)")),
		mcp.WithString("schema_name", mcp.Description("Name of a stored schema (omit when schema is set)")),
		mcp.WithString("subject", mcp.Required(), mcp.Description("The document to check, as JSON or YAML")),
		mcp.WithOutputSchema[ValidateResult](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	// TOOL: list_schemas
	listTool := mcp.NewTool("list_schemas",
		mcp.WithDescription("List the names of the stored schemas."),
		mcp.WithOutputSchema[SchemaListResult](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListSchemas))

	// TOOL: get_schema
	s.mcpServer.AddTool(mcp.NewTool("get_schema",
		mcp.WithDescription("Get a stored schema as JSON."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Schema name")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args GetSchemaArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		node, err := s.engine.Store().Get(ctx, args.Name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("get schema failed: %v", err)), nil
		}
		jsonBytes, err := json.Marshal(node)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode schema failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleValidate(ctx context.Context, _ mcp.CallToolRequest, args ValidateArgs) (ValidateResult, error) {
	ctx = domain.WithSource(ctx, domain.SourceMCP)

	switch {
	case args.Schema != "" && args.SchemaName != "":
		return ValidateResult{}, errors.New("schema and schema_name are mutually exclusive")
	case args.Schema == "" && args.SchemaName == "":
		return ValidateResult{}, domain.ErrSchemaRequired
	}

	subject, err := document.Decode([]byte(args.Subject), document.FormatAuto)
	if err != nil {
		return ValidateResult{}, fmt.Errorf("invalid subject: %w", err)
	}

	if args.SchemaName != "" {
		valid, err := s.engine.ValidateNamed(ctx, args.SchemaName, subject)
		if err != nil {
			return ValidateResult{}, err
		}
		return ValidateResult{Valid: valid, SchemaName: args.SchemaName}, nil
	}

	node, err := schema.Parse([]byte(args.Schema), s.decodeOpts...)
	if err != nil {
		return ValidateResult{}, fmt.Errorf("invalid schema: %w", err)
	}
	return ValidateResult{Valid: s.engine.Validate(ctx, subject, node)}, nil
}

func (s *Server) handleListSchemas(ctx context.Context, _ mcp.CallToolRequest, _ struct{}) (SchemaListResult, error) {
	names, err := s.engine.Store().List(ctx)
	if err != nil {
		return SchemaListResult{}, fmt.Errorf("list schemas failed: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return SchemaListResult{Schemas: names}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: conform://schemas
	s.mcpServer.AddResource(mcp.NewResource(SchemasURI, "Stored Schemas",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.engine.Store().List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list schemas: %w", err)
		}
		jsonBytes, _ := json.Marshal(SchemaListResult{Schemas: names})

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      SchemasURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
