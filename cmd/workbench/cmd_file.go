package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/Cyclone1070/workbench/internal/tool/directory"
	"github.com/Cyclone1070/workbench/internal/tool/file"
	"github.com/spf13/cobra"
)

func newWriteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write <path>",
		Short: "Write a file in a project from --file or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(cmd, a, args[0])
		},
	}
	addProjectFlag(cmd)
	cmd.Flags().StringP("file", "f", "", "Read content from this local file instead of stdin")
	return cmd
}

func runWrite(cmd *cobra.Command, a *app, path string) error {
	if err := a.openProject(cmd); err != nil {
		return err
	}

	var content []byte
	var err error
	if src, _ := cmd.Flags().GetString("file"); src != "" {
		content, err = os.ReadFile(src)
	} else {
		content, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}

	req := &file.WriteFileRequest{Path: path, Content: string(content)}
	if !utf8.Valid(content) {
		req.Content = base64.StdEncoding.EncodeToString(content)
		req.Encoding = file.EncodingBase64
	}
	resp, err := file.NewWriteFileTool(a.fs, a.ws, a.cfg).Run(cmd.Context(), req)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", resp.BytesWritten, resp.RelativePath)
	return nil
}

func newReadCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <path>",
		Short: "Print a file from a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.openProject(cmd); err != nil {
				return err
			}
			resp, err := file.NewReadFileTool(a.fs, a.ws, a.cfg).Run(cmd.Context(), &file.ReadFileRequest{Path: args[0]})
			if err != nil {
				return err
			}
			if !resp.Exists {
				return fmt.Errorf("file not found: %s", args[0])
			}
			content := []byte(resp.Content)
			if resp.Encoding == file.EncodingBase64 {
				if content, err = base64.StdEncoding.DecodeString(resp.Content); err != nil {
					return err
				}
			}
			_, err = cmd.OutOrStdout().Write(content)
			return err
		},
	}
	addProjectFlag(cmd)
	return cmd
}

func newLsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls [dir]",
		Short: "Recursively list files in a project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLs(cmd, a, args)
		},
	}
	addProjectFlag(cmd)
	cmd.Flags().Bool("exclude-ignored", false, "Skip files matched by .gitignore")
	return cmd
}

func runLs(cmd *cobra.Command, a *app, args []string) error {
	if err := a.openProject(cmd); err != nil {
		return err
	}
	req := &directory.ListDirectoryRequest{}
	if len(args) == 1 {
		req.Path = args[0]
	}
	req.ExcludeIgnored, _ = cmd.Flags().GetBool("exclude-ignored")

	resp, err := directory.NewListDirectoryTool(a.fs, a.ws, a.cfg).Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(resp.Files) == 0 {
		fmt.Fprintln(out, dimStyle.Render("(no files)"))
	}
	for _, f := range resp.Files {
		fmt.Fprintln(out, f)
	}
	if resp.Truncated {
		fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("... truncated at %d entries", len(resp.Files))))
	}
	return nil
}
