package main

import (
	"encoding/json"

	"github.com/Cyclone1070/workbench/internal/adapter"
	"github.com/spf13/cobra"
)

func newToolsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the function declarations exposed to agents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			decls := adapter.FunctionDeclarations(adapter.NewTools(a.ws, a.cfg))
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(decls)
		},
	}
}
