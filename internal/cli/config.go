package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/steviee/go-mojang/internal/config"
	"gopkg.in/yaml.v3"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `View and manage go-mojang configuration.

Configuration is stored in ~/.config/go-mojang/config.yaml by default
and can be overridden per-run with MOJANG_* environment variables or
the --config flag.`,
		Example: `  # View current configuration
  go-mojang config show

  # Write a default config file
  go-mojang config init

  # Show configuration file path
  go-mojang config path`,
		Aliases: []string{"cfg"},
	}

	cmd.AddCommand(NewConfigShowCommand())
	cmd.AddCommand(NewConfigInitCommand())
	cmd.AddCommand(NewConfigPathCommand())

	return cmd
}

// NewConfigShowCommand creates the config show command.
func NewConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current configuration",
		Long: `Show the configuration as it would apply to commands.

A default config file is created when none exists yet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func runConfigShow(ctx context.Context, w io.Writer) error {
	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		return outputError(w, err)
	}

	if IsJSONOutput() {
		return writeJSON(w, Output{Status: "success", Data: cfg})
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return outputError(w, fmt.Errorf("marshal config: %w", err))
	}

	_, _ = w.Write(data)
	return nil
}

// NewConfigInitCommand creates the config init command.
func NewConfigInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd.Context(), cmd.OutOrStdout(), force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func runConfigInit(ctx context.Context, w io.Writer, force bool) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return outputError(w, err)
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return outputError(w, fmt.Errorf("config file already exists at %s (use --force to overwrite)", path))
		}
	}

	if err := config.SaveConfig(ctx, config.DefaultConfig()); err != nil {
		return outputError(w, err)
	}

	if IsJSONOutput() {
		return writeJSON(w, Output{
			Status:  "success",
			Data:    map[string]interface{}{"path": path},
			Message: "Wrote default configuration",
		})
	}

	_, _ = fmt.Fprintf(w, "Wrote default configuration to %s\n", path)
	return nil
}

// NewConfigPathCommand creates the config path command.
func NewConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigPath(cmd.OutOrStdout())
		},
	}
}

func runConfigPath(w io.Writer) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return outputError(w, err)
	}

	if IsJSONOutput() {
		return writeJSON(w, Output{
			Status: "success",
			Data:   map[string]interface{}{"path": path},
		})
	}

	_, _ = fmt.Fprintln(w, path)
	return nil
}
