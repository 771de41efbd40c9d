// Package mcpserver exposes the analyzer as a Model Context Protocol tool
// over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starfeel/star/internal/analyzer"
	"github.com/starfeel/star/internal/export"
)

// ToolName is the name the analysis tool is registered under.
const ToolName = "analyze_emotion"

// New builds an MCP server with the analysis tool registered.
func New(an *analyzer.Analyzer, version string, debug bool) *server.MCPServer {
	s := server.NewMCPServer("star", version, server.WithToolCapabilities(false))

	tool := mcp.NewTool(ToolName,
		mcp.WithDescription("Classify a Japanese text into SENSE, THINK, ACT or RELATE with confidence scores, matched keywords and FEEL intensity."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Japanese text to analyze"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: json (default) or text"),
			mcp.Enum(string(export.FormatJSON), string(export.FormatText)),
		),
	)
	s.AddTool(tool, handler(an, debug))
	return s
}

func handler(an *analyzer.Analyzer, debug bool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		format, err := export.ParseFormat(req.GetString("format", string(export.FormatJSON)))
		if err != nil || (format != export.FormatJSON && format != export.FormatText) {
			return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q", req.GetString("format", ""))), nil
		}

		res, err := an.Analyze(text)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if debug {
			log.Printf("[mcp] %s primary=%s tier=%s", ToolName, res.Primary, res.Tier)
		}

		var b strings.Builder
		if format == export.FormatText {
			err = export.WriteText(&b, res)
		} else {
			var data []byte
			data, err = export.MarshalJSON(res)
			b.Write(data)
		}
		if err != nil {
			return nil, fmt.Errorf("render result: %w", err)
		}
		return mcp.NewToolResultText(b.String()), nil
	}
}

// ServeStdio serves the MCP protocol on stdin/stdout until the client
// disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
