package cli

import (
	mcpadapter "github.com/abdidvp/rulecheck/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the rulecheck MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(flags))
	return cmd
}

func newMCPServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start rulecheck MCP server (stdio)",
		Long:  "Start the rulecheck MCP server using stdio transport. This lets AI assistants extract rules and validate datasets.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.session(cmd)
			if err != nil {
				return err
			}
			return server.ServeStdio(mcpadapter.NewRulecheckMCPServer(s))
		},
	}
}
