// Package mcp exposes policy search and leave request tools over the Model
// Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/hrmate-ai/hrmate/internal/dialogue"
	"github.com/hrmate-ai/hrmate/internal/requests"
	"github.com/hrmate-ai/hrmate/internal/vectordb"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes HR assistant tools.
type Server struct {
	store    vectordb.VectorStore
	engine   *dialogue.Engine
	requests *requests.Store
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(store vectordb.VectorStore, engine *dialogue.Engine, requestStore *requests.Store) *Server {
	s := &Server{
		store:    store,
		engine:   engine,
		requests: requestStore,
	}

	s.mcp = server.NewMCPServer(
		"hrmate",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchPoliciesTool, s.handleSearchPolicies)
	s.mcp.AddTool(askPolicyTool, s.handleAskPolicy)
	s.mcp.AddTool(listLeaveRequestsTool, s.handleListLeaveRequests)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
