package commands

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ddldoc/internal/cli/config"
	"github.com/leapstack-labs/ddldoc/internal/cli/output"
	clitest "github.com/leapstack-labs/ddldoc/internal/cli/testutil"
	"github.com/leapstack-labs/ddldoc/internal/extract"
	"github.com/leapstack-labs/ddldoc/internal/testutil"
	"github.com/leapstack-labs/ddldoc/pkg/ddlcomment"
)

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "ddldoc [path]",
		Args: cobra.MaximumNArgs(1),
		RunE: RunExtract,
	}
}

func TestRunExtract_DefaultInputDir(t *testing.T) {
	dir := clitest.SetupTestWorkspace(t)
	cfg := clitest.NewTestConfig(dir, output.ModeMarkdown)

	res := clitest.RunCommand(t, newExtractCmd(), cfg)
	require.NoError(t, res.Err)

	files := testutil.ListFiles(t, filepath.Join(dir, config.DefaultOutputDirName))
	require.Len(t, files, 1)
	assert.True(t, strings.HasPrefix(files[0], "public_users_Users_"), files[0])
	assert.True(t, strings.HasSuffix(files[0], ".csv"), files[0])

	out := res.Out.String()
	assert.Contains(t, out, "default DDL directory")
	assert.Contains(t, out, "- Wrote "+files[0])
	assert.Contains(t, out, "Skipped audit_log.sql")
	assert.Contains(t, out, "1 report(s) written, 1 file(s) skipped")
	clitest.AssertNoANSI(t, out)
}

func TestRunExtract_ExplicitFile(t *testing.T) {
	dir := clitest.SetupTestWorkspace(t)
	cfg := clitest.NewTestConfig(t.TempDir(), output.ModeMarkdown)
	input := filepath.Join(dir, config.DefaultInputDirName, "users.sql")

	res := clitest.RunCommand(t, newExtractCmd(), cfg, input)
	require.NoError(t, res.Err)

	assert.Len(t, testutil.ListFiles(t, cfg.OutputDir), 1)
	assert.NotContains(t, res.Out.String(), "default DDL directory")
}

func TestRunExtract_ConfiguredInput(t *testing.T) {
	dir := clitest.SetupTestWorkspace(t)
	cfg := clitest.NewTestConfig(t.TempDir(), output.ModeMarkdown)
	cfg.Input = filepath.Join(dir, config.DefaultInputDirName)

	res := clitest.RunCommand(t, newExtractCmd(), cfg)
	require.NoError(t, res.Err)

	assert.Len(t, testutil.ListFiles(t, cfg.OutputDir), 1)
}

func TestRunExtract_NoDefaultInputDir(t *testing.T) {
	cfg := clitest.NewTestConfig(t.TempDir(), output.ModeMarkdown)

	res := clitest.RunCommand(t, newExtractCmd(), cfg)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, extract.ErrNoInput)

	assert.Contains(t, res.ErrOut.String(), "Error: ")
	assert.Contains(t, res.ErrOut.String(), "Hint: ")
	assert.Empty(t, testutil.ListFiles(t, cfg.OutputDir))
}

func TestRunExtract_MissingPathWritesNothing(t *testing.T) {
	cfg := clitest.NewTestConfig(t.TempDir(), output.ModeMarkdown)

	res := clitest.RunCommand(t, newExtractCmd(), cfg, filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, res.Err)

	assert.Contains(t, res.Out.String(), "No .sql files found")
	assert.Empty(t, testutil.ListFiles(t, cfg.OutputDir))
}

func TestRunExtract_JSON(t *testing.T) {
	dir := clitest.SetupTestWorkspace(t)
	cfg := clitest.NewTestConfig(dir, output.ModeJSON)

	res := clitest.RunCommand(t, newExtractCmd(), cfg)
	require.NoError(t, res.Err)

	var result extract.Result
	require.NoError(t, json.Unmarshal(res.Out.Bytes(), &result), res.Out.String())
	assert.Equal(t, 1, result.Written)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Files, 2)

	// audit_log.sql sorts before users.sql
	assert.Equal(t, extract.StatusSkipped, result.Files[0].Status)
	assert.Equal(t, extract.StatusWritten, result.Files[1].Status)
	require.NotNil(t, result.Files[1].Table)
	assert.Equal(t, "users", result.Files[1].Table.TableName)
}

func TestRunExtract_TextMode(t *testing.T) {
	dir := clitest.SetupTestWorkspace(t)
	cfg := clitest.NewTestConfig(dir, output.ModeText)

	res := clitest.RunCommand(t, newExtractCmd(), cfg)
	require.NoError(t, res.Err)

	out := res.Out.String()
	assert.Contains(t, out, "✓ Wrote public_users_Users_")
	assert.Contains(t, out, "public.users, 2 columns")
}

func TestRenderFileResult(t *testing.T) {
	written := extract.FileResult{
		Source: "DDL/users.sql",
		Status: extract.StatusWritten,
		Output: "/tmp/result/public_users_Users_20240102030405.csv",
		Table: &ddlcomment.TableInfo{
			Schema:    "public",
			TableName: "users",
			Columns:   []ddlcomment.Column{{Name: "id", LogicalName: "ID"}},
		},
	}
	skipped := extract.FileResult{Source: "DDL/audit_log.sql", Status: extract.StatusSkipped}

	t.Run("text", func(t *testing.T) {
		tr := clitest.NewTestRendererText()
		renderFileResult(tr.Renderer, written)
		renderFileResult(tr.Renderer, skipped)

		assert.Contains(t, tr.Out.String(), "✓ Wrote public_users_Users_20240102030405.csv (public.users, 1 columns)")
		assert.Contains(t, tr.Out.String(), "! Skipped audit_log.sql")
		assert.Empty(t, tr.ErrOut.String())
	})

	t.Run("markdown", func(t *testing.T) {
		tr := clitest.NewTestRendererMarkdown()
		renderFileResult(tr.Renderer, written)
		renderFileResult(tr.Renderer, skipped)

		lines := strings.Split(strings.TrimSpace(tr.Out.String()), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "- Wrote "), lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "- Skipped "), lines[1])
		clitest.AssertNoANSI(t, tr.Out.String())
	})
}

func TestRenderSummary(t *testing.T) {
	tests := []struct {
		name   string
		result *extract.Result
		want   string
	}{
		{
			name:   "counts",
			result: &extract.Result{Input: "DDL", Files: make([]extract.FileResult, 3), Written: 2, Skipped: 1},
			want:   "- 2 report(s) written, 1 file(s) skipped",
		},
		{
			name:   "no files",
			result: &extract.Result{Input: "DDL"},
			want:   "- No .sql files found in DDL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := clitest.NewTestRendererMarkdown()
			renderSummary(tr.Renderer, tt.result)
			assert.Equal(t, tt.want+"\n", tr.Out.String())
		})
	}
}
