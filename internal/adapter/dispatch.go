package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// FunctionDeclarations returns the declarations of tools, in order.
func FunctionDeclarations(tools []Tool) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		decls = append(decls, t.Declaration())
	}
	return decls
}

// GeminiTools wraps the declarations of tools for a generate-content request.
func GeminiTools(tools []Tool) []*genai.Tool {
	if len(tools) == 0 {
		return nil
	}
	return []*genai.Tool{{FunctionDeclarations: FunctionDeclarations(tools)}}
}

// Dispatch executes call against the matching tool.
// Failures are reported under the "error" key of the response; the decoded
// JSON result is reported under "output".
func Dispatch(ctx context.Context, tools []Tool, call *genai.FunctionCall) (resp *genai.FunctionResponse) {
	if call == nil {
		return &genai.FunctionResponse{Response: errorResponse(fmt.Errorf("%w: empty function call", ErrInvalidArguments))}
	}
	resp = &genai.FunctionResponse{ID: call.ID, Name: call.Name}
	log := logrus.WithField("tool", call.Name)

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("tool panicked: %v", r)
			resp.Response = errorResponse(fmt.Errorf("tool %s panicked: %v", call.Name, r))
		}
	}()

	var tool Tool
	for _, t := range tools {
		if t.Name() == call.Name {
			tool = t
			break
		}
	}
	if tool == nil {
		resp.Response = errorResponse(fmt.Errorf("%w: %s", ErrUnknownTool, call.Name))
		return resp
	}

	log.Debug("dispatching tool call")
	out, err := tool.Execute(ctx, call.Args)
	if err != nil {
		log.WithError(err).Debug("tool call failed")
		resp.Response = errorResponse(err)
		return resp
	}

	var output map[string]any
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		resp.Response = map[string]any{"output": out}
		return resp
	}
	resp.Response = map[string]any{"output": output}
	return resp
}

func errorResponse(err error) map[string]any {
	return map[string]any{"error": err.Error()}
}
