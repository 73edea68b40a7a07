// ABOUTME: MCP prompts for common todo workflows.
// ABOUTME: Provides pre-configured prompts for AI agent interactions.

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "plan-goal",
		Description: "Break a goal down into small todos",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "goal",
				Description: "The goal to plan",
				Required:    true,
			},
		},
	}, s.getPlanGoalPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "review-todos",
		Description: "Review open todos and tidy up finished ones",
	}, s.getReviewTodosPrompt)
}

func userPrompt(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: text,
				},
			},
		},
	}
}

func (s *Server) getPlanGoalPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	goal, ok := req.Params.Arguments["goal"]
	if !ok || goal == "" {
		return nil, fmt.Errorf("goal argument is required")
	}

	template := fmt.Sprintf(`Help me plan this goal: %s

1. Use the list_todos tool to see what is already on my list
2. Break the goal into concrete steps that each take less than a day
3. Skip steps that already exist as todos
4. Use the create_todo tool once per step, keeping each text under 255 characters`, goal)

	return userPrompt(template), nil
}

func (s *Server) getReviewTodosPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	todos, err := s.svc.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	open := 0
	for _, todo := range todos {
		if !todo.IsComplete {
			open++
		}
	}

	template := fmt.Sprintf(`Help me review my todo list. I have %d todos, %d of them still open.

1. Use the list_todos tool to see all todos
2. Point out open todos that look stale or too vague, and suggest clearer wording
3. Use the update_todo tool with new text_body to reword any I agree to
4. Ask before using the delete_todo tool on completed todos`, len(todos), open)

	return userPrompt(template), nil
}
