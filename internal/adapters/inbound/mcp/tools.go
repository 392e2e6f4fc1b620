package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/rulecheck/internal/adapters/outbound/history"
	"github.com/abdidvp/rulecheck/internal/bootstrap"
	"github.com/abdidvp/rulecheck/internal/domain"
)

const historyLimit = 20

type rulesResult struct {
	Rules  []domain.Rule         `json:"rules"`
	Status domain.WorkflowStatus `json:"status"`
}

type validationResult struct {
	File     string                   `json:"file"`
	Filename string                   `json:"filename,omitempty"`
	RowCount *int                     `json:"row_count,omitempty"`
	Rows     []domain.ValidationRow   `json:"rows"`
	Summary  domain.ValidationSummary `json:"summary"`
	Status   domain.WorkflowStatus    `json:"status"`
}

// registerTools registers all rulecheck MCP tools on the given server.
func registerTools(s *server.MCPServer, sess *bootstrap.Session) {
	// 1. rulecheck_extract_rules
	s.AddTool(
		mcplib.NewTool("rulecheck_extract_rules",
			mcplib.WithDescription("Upload a PDF policy document and replace the current compliance rules with the extracted ones"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to the PDF document, absolute or relative to the project directory"),
			),
		),
		handleExtractRules(sess),
	)

	// 2. rulecheck_validate_dataset
	s.AddTool(
		mcplib.NewTool("rulecheck_validate_dataset",
			mcplib.WithDescription("Upload a CSV dataset and return the invalid rows with summary counts"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to the CSV dataset, absolute or relative to the project directory"),
			),
			mcplib.WithBoolean("all", mcplib.Description("Return every row, not only invalid ones")),
		),
		handleValidateDataset(sess),
	)

	// 3. rulecheck_get_rules
	s.AddTool(
		mcplib.NewTool("rulecheck_get_rules",
			mcplib.WithDescription("Returns the current compliance rules as JSON"),
		),
		handleGetRules(sess),
	)

	// 4. rulecheck_get_history
	s.AddTool(
		mcplib.NewTool("rulecheck_get_history",
			mcplib.WithDescription("Returns the most recent rule extractions and validations"),
		),
		handleGetHistory(sess),
	)
}

func handleExtractRules(sess *bootstrap.Session) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		if err := sess.Rules.SubmitFile(ctx, resolvePath(sess, file)); err != nil {
			return errorResult(err.Error()), nil
		}

		status := sess.Rules.Status()
		if status.Outcome == domain.OutcomeFailed {
			return errorResult(fmt.Sprintf("rule extraction failed: %s", status.Error)), nil
		}
		return jsonResult(rulesResult{Rules: sess.Rules.Rules(), Status: status})
	}
}

func handleValidateDataset(sess *bootstrap.Session) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		all, _ := request.GetArguments()["all"].(bool)

		if err := sess.Validation.SubmitFile(ctx, resolvePath(sess, file)); err != nil {
			return errorResult(err.Error()), nil
		}

		status := sess.Validation.Status()
		if status.Outcome == domain.OutcomeFailed {
			return errorResult(fmt.Sprintf("validation failed: %s", status.Error)), nil
		}

		report := sess.Validation.Report()
		rows := domain.InvalidRows(report.Rows)
		if all {
			rows = report.Rows
		}
		return jsonResult(validationResult{
			File:     report.File,
			Filename: report.Filename,
			RowCount: report.RowCount,
			Rows:     rows,
			Summary:  report.Summary,
			Status:   status,
		})
	}
}

func handleGetRules(sess *bootstrap.Session) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(rulesResult{Rules: sess.Rules.Rules(), Status: sess.Rules.Status()})
	}
}

func handleGetHistory(sess *bootstrap.Session) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		entries, err := sess.History.Load(sess.Dir)
		if err != nil {
			return errorResult(fmt.Sprintf("loading history: %v", err)), nil
		}
		entries = history.Last(entries, historyLimit)
		if entries == nil {
			entries = []domain.RunEntry{}
		}
		return jsonResult(entries)
	}
}

// resolvePath makes relative paths relative to the project directory rather
// than the server's working directory.
func resolvePath(sess *bootstrap.Session, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(sess.Dir, file)
}

// jsonResult marshals v to indented JSON and wraps it in a CallToolResult.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
