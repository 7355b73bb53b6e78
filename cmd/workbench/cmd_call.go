package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Cyclone1070/workbench/internal/adapter"
	"github.com/spf13/cobra"
	"google.golang.org/genai"
)

// maxCallLine bounds one JSON line so a full-size write_file payload fits.
const maxCallLine = 64 * 1024 * 1024

// callRequest is one line of `workbench call` input.
type callRequest struct {
	ID   string         `json:"id,omitempty"`
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

func newCallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "call",
		Short: "Execute tool calls read as JSON lines from stdin",
		Long: `Reads one {"name": ..., "args": {...}} object per line and writes one
function response per line. All calls share a single session, so a project
made active by init_project stays active for the calls that follow.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCall(cmd, a)
		},
	}
}

func runCall(cmd *cobra.Command, a *app) error {
	tools := adapter.NewTools(a.ws, a.cfg)
	enc := json.NewEncoder(cmd.OutOrStdout())

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), maxCallLine)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var req callRequest
		var resp *genai.FunctionResponse
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			resp = &genai.FunctionResponse{Response: map[string]any{
				"error": fmt.Sprintf("%v: %v", adapter.ErrInvalidArguments, err),
			}}
		} else {
			resp = adapter.Dispatch(cmd.Context(), tools, &genai.FunctionCall{ID: req.ID, Name: req.Name, Args: req.Args})
		}

		if err := enc.Encode(resp); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read calls: %w", err)
	}
	return nil
}
