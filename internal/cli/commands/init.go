package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/ddldoc/internal/cli/output"
)

const configFileName = "ddldoc.yaml"

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ddldoc workspace",
		Long: `Initialize a new ddldoc workspace with a configuration file and an input directory.

This creates:
  - DDL/ directory for .sql files
  - ddldoc.yaml configuration file
  - .gitignore excluding the result/ directory

Use --example to add sample .sql files with table and column comments.`,
		Example: `  # Initialize in current directory
  ddldoc init

  # Initialize with sample DDL
  ddldoc init --example

  # Initialize in a new directory
  ddldoc init docs --example

  # Force overwrite existing config
  ddldoc init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cmdCtx := NewCommandContext(cmd)
			template := "minimal"
			if example {
				template = "example"
			}
			return runInit(cmdCtx.Renderer, dir, template, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&example, "example", false, "Add sample .sql files")

	return cmd
}

func runInit(r *output.Renderer, dir, template string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, configFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", configFileName)
	}

	if err := copyTemplate(template, dir, force); err != nil {
		return fmt.Errorf("failed to initialize workspace: %w", err)
	}

	files, err := listTemplateFiles(template)
	if err != nil {
		return fmt.Errorf("failed to list template files: %w", err)
	}
	groups := groupTemplateFiles(files)

	r.Header(2, "Configuration")
	for _, f := range groups["config"] {
		r.Success(f)
	}
	r.Println("")
	r.Header(2, "DDL")
	for _, f := range groups["ddl"] {
		r.Success(f)
	}

	r.Println("")
	r.Success("ddldoc workspace initialized!")
	r.Println("")
	r.Println("Next steps:")
	if template == "example" {
		r.Println("  ddldoc show     Preview the extracted comments")
		r.Println("  ddldoc          Write CSV reports to result/")
	} else {
		r.Println("  1. Put your .sql files in DDL/")
		r.Println("  2. Run 'ddldoc' to write CSV reports to result/")
	}

	return nil
}
