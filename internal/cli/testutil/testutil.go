// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/ddldoc/internal/cli/config"
	"github.com/leapstack-labs/ddldoc/internal/cli/output"
	"github.com/leapstack-labs/ddldoc/internal/testutil"
)

// SetupTestWorkspace creates a temporary program directory holding a DDL/
// directory with one commented and one uncommented table definition.
func SetupTestWorkspace(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	ddlDir := filepath.Join(tmpDir, config.DefaultInputDirName)
	testutil.WriteFile(t, ddlDir, "users.sql", testutil.UsersDDL)
	testutil.WriteFile(t, ddlDir, "audit_log.sql", testutil.UncommentedDDL)

	return tmpDir
}

// NewTestConfig returns a config rooted at programDir, as if the executable
// lived there, rendering in the given output mode.
func NewTestConfig(programDir string, mode output.OutputMode) *config.Config {
	return &config.Config{
		OutputDir:     filepath.Join(programDir, config.DefaultOutputDirName),
		LogFormat:     config.DefaultLogFormat,
		OutputFormat:  string(mode),
		WatchDebounce: config.DefaultWatchDebounce,
		ProgramDir:    programDir,
	}
}

// CommandResult holds the captured output of a command run.
type CommandResult struct {
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
	Err    error
}

// RunCommand executes cmd with args and cfg in its context, capturing
// stdout and stderr.
func RunCommand(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) *CommandResult {
	t.Helper()

	res := &CommandResult{Out: &bytes.Buffer{}, ErrOut: &bytes.Buffer{}}
	cmd.SetOut(res.Out)
	cmd.SetErr(res.ErrOut)
	cmd.SetArgs(args)

	ctx := config.WithConfig(context.Background(), cfg)
	ctx = config.WithLogger(ctx, testutil.NewTestLogger(t))
	res.Err = cmd.ExecuteContext(ctx)

	return res
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererText creates a new test renderer in text mode (simulated TTY).
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, true)
}

// NewTestRendererMarkdown creates a new test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
