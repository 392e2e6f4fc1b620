package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/rulecheck/internal/bootstrap"
)

// NewRulecheckMCPServer creates a new MCP server with all rulecheck tools and
// resources registered. Every call shares the workflows of sess.
func NewRulecheckMCPServer(sess *bootstrap.Session) *server.MCPServer {
	s := server.NewMCPServer(
		"rulecheck",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, sess)
	registerResources(s, sess)

	return s
}
