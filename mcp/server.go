// Package mcp exposes the fetch and search capabilities as tools over the
// Model Context Protocol. The transport layer is thin: all fetch semantics
// live in the fetch orchestrator, all search semantics in the searcher.
package mcp

import (
	"github.com/fwojciec/webfetch"
	"github.com/mark3labs/mcp-go/server"
)

// Name and Version identify the server during the MCP handshake.
const (
	Name    = "webfetch"
	Version = "0.1.0"
)

// Server wires the domain services into an MCP tool server.
type Server struct {
	fetcher  webfetch.BatchFetcher
	searcher webfetch.Searcher
	mcp      *server.MCPServer
}

// NewServer creates a Server exposing the fetch and search tools.
func NewServer(fetcher webfetch.BatchFetcher, searcher webfetch.Searcher) *Server {
	s := &Server{
		fetcher:  fetcher,
		searcher: searcher,
	}

	srv := server.NewMCPServer(Name, Version,
		server.WithToolCapabilities(false),
	)
	srv.AddTool(fetchTool(), s.handleFetch)
	srv.AddTool(searchTool(), s.handleSearch)

	s.mcp = srv
	return s
}

// Start serves the MCP protocol over streamable HTTP at /mcp.
// It blocks until the server stops.
func (s *Server) Start(addr string) error {
	return server.NewStreamableHTTPServer(s.mcp).Start(addr)
}

// ServeStdio serves the MCP protocol over stdin/stdout.
// It blocks until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}
