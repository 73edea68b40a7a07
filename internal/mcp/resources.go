// ABOUTME: MCP resources for exposing todos as readable resources.
// ABOUTME: Allows AI agents to read a todo via the todo:// URI scheme.

package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/harper/todo/internal/service"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const resourcePrefix = "todo://todo/"

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: resourcePrefix + "{id}",
			Name:        "Todo",
			Description: "Access individual todos by ID",
			MIMEType:    "text/markdown",
		},
		s.handleReadResource,
	)
}

func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	var ref string
	_, err := fmt.Sscanf(req.Params.URI, resourcePrefix+"%s", &ref)
	if err != nil {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	todo, err := s.lookup(ctx, ref)
	if errors.Is(err, service.ErrNoMatch) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	check := " "
	if todo.IsComplete {
		check = "x"
	}
	content := fmt.Sprintf("- [%s] %s\n\n**ID:** %s\n**Updated:** %s\n",
		check, todo.TextBody, todo.ID, todo.UpdatedAt.Format("2006-01-02 15:04"))

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     content,
			},
		},
	}, nil
}
