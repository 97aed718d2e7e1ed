package commands

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/ddldoc/internal/cli/output"
	"github.com/leapstack-labs/ddldoc/internal/extract"
	"github.com/leapstack-labs/ddldoc/internal/report"
	"github.com/leapstack-labs/ddldoc/internal/source"
	"github.com/leapstack-labs/ddldoc/pkg/ddlcomment"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Preview extracted comments without writing reports",
		Long: `Extract table and column comments from a directory of .sql files or a
single .sql file and print them instead of writing CSV reports.

Output adapts to environment:
  - Terminal: Styled tables
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json, yaml`,
		Example: `  # Preview the default DDL directory
  ddldoc show

  # Preview a single file as JSON
  ddldoc show DDL/users.sql --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShow,
	}

	return cmd
}

// ShowResult is the structured form of the show command's output.
type ShowResult struct {
	Input   string                  `json:"input" yaml:"input"`
	Tables  []*ddlcomment.TableInfo `json:"tables" yaml:"tables"`
	Skipped []string                `json:"skipped" yaml:"skipped"`
}

func runShow(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	input, err := cmdCtx.inputPath(args)
	if err != nil {
		return err
	}

	result, err := collectTables(input, cmdCtx)
	if err != nil {
		return err
	}

	if r.EffectiveMode().IsStructured() {
		return r.Structured(result)
	}

	renderTables(r, result)
	return nil
}

func collectTables(input string, cmdCtx *CommandContext) (*ShowResult, error) {
	files, err := source.Resolve(input)
	if err != nil {
		return nil, err
	}

	result := &ShowResult{
		Input:   input,
		Tables:  []*ddlcomment.TableInfo{},
		Skipped: []string{},
	}
	for _, path := range files {
		info, err := extract.ProcessFile(path, cmdCtx.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to process %s: %w", path, err)
		}
		if info == nil {
			result.Skipped = append(result.Skipped, path)
			continue
		}
		result.Tables = append(result.Tables, info)
	}
	return result, nil
}

func renderTables(r *output.Renderer, result *ShowResult) {
	if len(result.Tables) == 0 && len(result.Skipped) == 0 {
		r.Warning("No .sql files found in " + result.Input)
		return
	}

	r.Header(1, fmt.Sprintf("Tables (%d total)", len(result.Tables)))
	r.Println("")

	for _, info := range result.Tables {
		r.Header(2, info.QualifiedName())
		r.KeyValue("Logical Name", info.TableLogicalName)
		r.KeyValue("File", filepath.Base(info.SourcePath))
		r.Println("")

		if len(info.Columns) == 0 {
			r.Info("No column comments")
		} else {
			rows := make([][]string, 0, len(info.Columns))
			for i, col := range info.Columns {
				rows = append(rows, []string{strconv.Itoa(i + 1), col.Name, col.LogicalName})
			}
			r.Table(report.Header, rows)
		}
		r.Println("")
	}

	for _, path := range result.Skipped {
		r.Warning(fmt.Sprintf("Skipped %s (no COMMENT ON TABLE found)", filepath.Base(path)))
	}
}
