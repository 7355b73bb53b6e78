package adapter

import (
	"context"

	"google.golang.org/genai"
)

// Tool represents a capability the agent can use.
// Each tool must be safe for concurrent use.
type Tool interface {
	// Name returns the unique identifier for this tool
	Name() string

	// Declaration returns the function declaration advertised to the model
	Declaration() *genai.FunctionDeclaration

	// Execute runs the tool with the given arguments and returns a JSON document.
	// Args is a map of argument names to values, as provided by the model.
	Execute(ctx context.Context, args map[string]any) (string, error)
}
