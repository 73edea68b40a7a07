// ABOUTME: MCP tools for todo CRUD operations.
// ABOUTME: Maps the service operations to the MCP tool interface.

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harper/todo/internal/models"
	"github.com/harper/todo/internal/service"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// create_todo
	s.server.AddTool(&mcp.Tool{
		Name:        "create_todo",
		Description: "Create a new todo",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"text_body": {"type": "string", "description": "Todo text (1-255 characters)"}
			},
			"required": ["text_body"]
		}`),
	}, s.handleCreateTodo)

	// list_todos
	s.server.AddTool(&mcp.Tool{
		Name:        "list_todos",
		Description: "List all todos in creation order",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {}
		}`),
	}, s.handleListTodos)

	// get_todo
	s.server.AddTool(&mcp.Tool{
		Name:        "get_todo",
		Description: "Get a todo by ID",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Todo ID or its last characters"}
			},
			"required": ["id"]
		}`),
	}, s.handleGetTodo)

	// update_todo
	s.server.AddTool(&mcp.Tool{
		Name:        "update_todo",
		Description: "Replace a todo's text, or toggle its completion when no text is given",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Todo ID or its last characters"},
				"text_body": {"type": "string", "description": "New text; omit to toggle completion"}
			},
			"required": ["id"]
		}`),
	}, s.handleUpdateTodo)

	// delete_todo
	s.server.AddTool(&mcp.Tool{
		Name:        "delete_todo",
		Description: "Delete a todo",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Todo ID or its last characters"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeleteTodo)
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return textResult(string(data))
}

// Tool handlers.
func (s *Server) handleCreateTodo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		TextBody string `json:"text_body"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	todo, err := s.svc.Create(ctx, params.TextBody)
	if err != nil {
		return errorResult("failed to create todo: %v", err), nil
	}

	return textResult(fmt.Sprintf("Created todo %s", todo.ID)), nil
}

func (s *Server) handleListTodos(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	todos, err := s.svc.ReadAll(ctx)
	if err != nil {
		return errorResult("failed to list todos: %v", err), nil
	}

	return jsonResult(todos), nil
}

func (s *Server) handleGetTodo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	todo, err := s.lookup(ctx, params.ID)
	if err != nil {
		return errorResult("failed to get todo: %v", err), nil
	}

	return jsonResult(todo), nil
}

func (s *Server) handleUpdateTodo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID       string  `json:"id"`
		TextBody *string `json:"text_body"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	id, err := s.svc.ResolveID(ctx, params.ID)
	if err != nil {
		return errorResult("failed to find todo: %v", err), nil
	}

	update := service.UpdateFromText(params.TextBody)
	todo, err := s.svc.Update(ctx, id, update)
	if err != nil {
		return errorResult("failed to update todo: %v", err), nil
	}
	if todo == nil {
		return errorResult("todo not found: %s", params.ID), nil
	}

	return textResult(fmt.Sprintf("%s: %s", update.Message(), todo.ID)), nil
}

func (s *Server) handleDeleteTodo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	id, err := s.svc.ResolveID(ctx, params.ID)
	if err != nil {
		return errorResult("failed to find todo: %v", err), nil
	}

	todo, err := s.svc.DeleteByID(ctx, id)
	if err != nil {
		return errorResult("failed to delete todo: %v", err), nil
	}
	if todo == nil {
		return errorResult("todo not found: %s", params.ID), nil
	}

	return textResult(fmt.Sprintf("Deleted todo %s", todo.ID)), nil
}

// lookup resolves ref and reads the todo, treating a missing todo as an error.
func (s *Server) lookup(ctx context.Context, ref string) (*models.Todo, error) {
	id, err := s.svc.ResolveID(ctx, ref)
	if err != nil {
		return nil, err
	}
	todo, err := s.svc.ReadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, fmt.Errorf("%w: %s", service.ErrNoMatch, ref)
	}
	return todo, nil
}
