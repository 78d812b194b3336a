package domain

const (
	// HeaderTraceID carries the request correlation id over HTTP.
	HeaderTraceID = "X-Trace-ID"

	// SourceLibrary and friends label where a validation came from.
	SourceLibrary = "library"
	SourceCLI     = "cli"
	SourceHTTP    = "http"
	SourceMCP     = "mcp"
)
