package main

import (
	"fmt"
	"io"

	"github.com/Cyclone1070/workbench/internal/tool/service/executor"
	"github.com/Cyclone1070/workbench/internal/tool/shell"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run -- <command...>",
		Short: "Run a shell command inside a project",
		Long: "Run a shell command inside a project.\n\n" +
			"A single argument is passed to the shell verbatim; several arguments are quoted and joined.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, a, args)
		},
	}
	addProjectFlag(cmd)
	cmd.Flags().String("cwd", "", "Working directory relative to the project root")
	cmd.Flags().Duration("timeout", 0, "Kill the command after this long (default from config)")
	return cmd
}

func runRun(cmd *cobra.Command, a *app, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command specified after --")
	}
	if err := a.openProject(cmd); err != nil {
		return err
	}

	command := args[0]
	if len(args) > 1 {
		command = shellquote.Join(args...)
	}
	cwd, _ := cmd.Flags().GetString("cwd")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	tool := shell.NewShellTool(a.fs, a.ws, executor.NewOSCommandExecutor(a.cfg), a.cfg)
	resp, err := tool.Run(cmd.Context(), &shell.ShellRequest{
		Command:    command,
		WorkingDir: cwd,
		Timeout:    timeout,
	})
	if resp != nil {
		_, _ = io.WriteString(cmd.OutOrStdout(), resp.Stdout)
		_, _ = io.WriteString(cmd.ErrOrStderr(), resp.Stderr)
		if resp.Truncated {
			fmt.Fprintln(cmd.ErrOrStderr(), dimStyle.Render("[output truncated]"))
		}
	}
	if err != nil {
		return err
	}
	if resp.ExitCode != 0 {
		return &exitCodeError{code: resp.ExitCode}
	}
	return nil
}
