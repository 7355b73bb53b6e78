package main

import (
	"fmt"

	"github.com/Cyclone1070/workbench/internal/config"
	"github.com/Cyclone1070/workbench/internal/tool/service/fs"
	"github.com/Cyclone1070/workbench/internal/workspace"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// app holds what every subcommand needs once global flags are processed.
type app struct {
	cfg *config.Config
	ws  *workspace.Context
	fs  *fs.OSFileSystem
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "workbench",
		Short:         "Sandboxed project workspaces for coding agents",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().String("base", "", "Projects base directory (default from config)")
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	cmd.AddCommand(
		newProjectsCmd(a),
		newInitCmd(a),
		newWriteCmd(a),
		newReadCmd(a),
		newLsCmd(a),
		newRunCmd(a),
		newToolsCmd(a),
		newCallCmd(a),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Warn("failed to load config, using defaults")
		cfg = config.DefaultConfig()
	}

	if base, _ := cmd.Flags().GetString("base"); base != "" {
		cfg.Workspace.ProjectsBase = base
	}
	debug, _ := cmd.Flags().GetBool("debug")
	if err := configureLogging(cfg.Log, debug); err != nil {
		return err
	}

	a.cfg = cfg
	a.fs = fs.NewOSFileSystem()
	a.ws = workspace.NewContext(cfg.Workspace.ProjectsBase, cfg.Workspace.MaxNameLength)
	return nil
}

// configureLogging applies the log section; --debug overrides the level.
func configureLogging(cfg config.LogConfig, debug bool) error {
	lvl, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	if debug {
		lvl = logrus.DebugLevel
	}
	logrus.SetLevel(lvl)

	switch cfg.Format {
	case "json":
		logrus.StandardLogger().SetFormatter(new(logrus.JSONFormatter))
	case "text":
		logrus.StandardLogger().SetFormatter(new(logrus.TextFormatter))
	default:
		return fmt.Errorf("unsupported log format: %q", cfg.Format)
	}
	return nil
}

// openProject makes the existing project named by --project active.
func (a *app) openProject(cmd *cobra.Command) error {
	name, _ := cmd.Flags().GetString("project")
	if name == "" {
		return fmt.Errorf("--project is required")
	}
	_, err := a.ws.Switch(name)
	return err
}

func addProjectFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("project", "p", "", "Project to operate on")
	_ = cmd.MarkFlagRequired("project")
}
