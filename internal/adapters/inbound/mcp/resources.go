package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/rulecheck/internal/bootstrap"
)

const rulesURI = "rulecheck://rules"

// registerResources registers all rulecheck MCP resources on the given server.
func registerResources(s *server.MCPServer, sess *bootstrap.Session) {
	s.AddResource(
		mcplib.NewResource(
			rulesURI,
			"Compliance Rules",
			mcplib.WithResourceDescription("Current compliance rules, extracted or built-in"),
			mcplib.WithMIMEType("application/json"),
		),
		handleRulesResource(sess),
	)
}

func handleRulesResource(sess *bootstrap.Session) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		data, err := json.MarshalIndent(sess.Rules.Rules(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling rules: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      rulesURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
