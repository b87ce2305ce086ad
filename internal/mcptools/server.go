// Package mcptools exposes reconciliation and summarization as MCP tools
// so that editors and agents can call them over stdio.
package mcptools

import (
	"context"
	"fmt"

	"github.com/FlorentLa/obsidian-whisper/internal/logger"
	"github.com/FlorentLa/obsidian-whisper/internal/reconciler"
	"github.com/FlorentLa/obsidian-whisper/internal/summarizer"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "obsidian-whisper"
	serverVersion = "0.1.0"
)

type Tools struct {
	reconciler reconciler.Reconciler
	summarizer summarizer.Summarizer
	logger     logger.Logger
}

func New(rec reconciler.Reconciler, sum summarizer.Summarizer, log logger.Logger) *Tools {
	return &Tools{reconciler: rec, summarizer: sum, logger: log}
}

// Server builds an MCP server with every tool registered.
func (t *Tools) Server() *server.MCPServer {
	s := server.NewMCPServer(serverName, serverVersion, server.WithToolCapabilities(false))

	s.AddTool(mcp.NewTool("reconcile_transcript",
		mcp.WithDescription("Deduplicate a raw timestamped speech recognizer transcript "+
			"([hh:mm:ss.mmm --> hh:mm:ss.mmm] text lines) into clean plain text."),
		mcp.WithString("transcript", mcp.Required(), mcp.Description("Raw recognizer output")),
	), t.reconcile)

	s.AddTool(mcp.NewTool("summarize_text",
		mcp.WithDescription("Summarize text with chain-of-density prompting. Long inputs are chunked and reduced."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to summarize")),
	), t.summarize)

	return s
}

// ServeStdio blocks serving MCP over stdin/stdout.
func (t *Tools) ServeStdio() error {
	return server.ServeStdio(t.Server())
}

func (t *Tools) reconcile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	transcript, err := req.RequireString("transcript")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := t.reconciler.Reconcile(ctx, transcript)
	t.logger.Debug(ctx, "MCP reconcile: %d of %d segments kept", res.Kept, res.Parsed)
	return mcp.NewToolResultText(res.Text), nil
}

func (t *Tools) summarize(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	summary, err := t.summarizer.Summarize(ctx, text)
	if err != nil {
		t.logger.Error(ctx, "MCP summarize failed: %v", err)
		return mcp.NewToolResultError(fmt.Sprintf("summarize failed: %v", err)), nil
	}
	return mcp.NewToolResultText(summary), nil
}
