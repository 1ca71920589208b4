// Package mcpserver exposes the tool catalog over the Model Context Protocol.
package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/logger"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/tools"
)

const Name = "raindrop-mcp"

type Server struct {
	mcp    *mcp.Server
	logger logger.Logger
}

// New registers every catalog tool on a fresh MCP server. Tool failures are
// returned as error results so the session stays open.
func New(d *tools.Dispatcher, version string, log logger.Logger) *Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: Name, Version: version}, nil)

	for _, desc := range d.Catalog().Tools() {
		srv.AddTool(&mcp.Tool{
			Name:        desc.Name,
			Description: desc.Description,
			InputSchema: desc.InputSchema,
		}, handler(d, desc.Name))
	}

	return &Server{mcp: srv, logger: log}
}

func handler(d *tools.Dispatcher, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := d.Call(ctx, name, req.Params.Arguments)
		if err != nil {
			return textResult(err.Error(), true), nil
		}
		return textResult(text, false), nil
	}
}

func textResult(text string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: isError,
	}
}

// Connect attaches the server to t; used by Run and by in-process clients.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcp.Connect(ctx, t, nil)
}

// Run serves one client over stdin/stdout until it disconnects or ctx ends.
// Stdout carries protocol frames only; logs go to stderr.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server listening on stdio")
	err := s.mcp.Run(ctx, &mcp.StdioTransport{})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	s.logger.Info("mcp client disconnected")
	return nil
}
