package main

import (
	"fmt"

	"github.com/Cyclone1070/workbench/internal/workspace"
	"github.com/spf13/cobra"
)

func newProjectsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "projects",
		Aliases: []string{"list-projects"},
		Short:   "List existing projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProjects(cmd, a)
		},
	}
}

func runProjects(cmd *cobra.Command, a *app) error {
	names, err := workspace.NewRegistry(a.cfg.Workspace.ProjectsBase, a.fs).List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(names) == 0 {
		fmt.Fprintln(out, "No projects found.")
		return nil
	}
	fmt.Fprintln(out, titleStyle.Render("Existing projects:"))
	for i, name := range names {
		fmt.Fprintf(out, "%d. %s\n", i+1, name)
	}
	return nil
}
