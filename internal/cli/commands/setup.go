package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/ddldoc/internal/cli/config"
	"github.com/leapstack-labs/ddldoc/internal/cli/output"
	"github.com/leapstack-labs/ddldoc/internal/extract"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the config, logger and renderer prepared by the
// root command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// inputPath picks the input for a command: the positional argument, then the
// configured input, then the default DDL directory.
func (c *CommandContext) inputPath(args []string) (string, error) {
	arg := c.Cfg.Input
	if len(args) > 0 {
		arg = args[0]
	}

	path, usedDefault, err := extract.ResolveInput(arg, c.Cfg.DefaultInputDir())
	if err != nil {
		c.Renderer.Error("no input path given and the default DDL directory was not found: " + c.Cfg.DefaultInputDir())
		c.Renderer.Hint("create the DDL directory next to ddldoc, or pass a directory or .sql file as an argument")
		return "", err
	}
	if usedDefault {
		c.Renderer.Info("No input path given, using the default DDL directory: " + path)
	}
	return path, nil
}
