package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.String("output-dir", "", "")
	fs.BoolP("verbose", "v", false, "")
	fs.String("log-format", "", "")
	fs.StringP("output", "o", "", "")
	fs.BoolP("watch", "w", false, "")
	fs.Duration("watch-debounce", 0, "")
	return fs
}

// chdir switches to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	programDir := t.TempDir()

	cfg, err := Load("", nil, programDir)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Input)
	assert.Equal(t, filepath.Join(programDir, "result"), cfg.OutputDir)
	assert.Equal(t, filepath.Join(programDir, "DDL"), cfg.DefaultInputDir())
	assert.Equal(t, programDir, cfg.ProgramDir)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "auto", cfg.OutputFormat)
	assert.False(t, cfg.Watch)
	assert.Equal(t, 500*time.Millisecond, cfg.WatchDebounce)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoad_ConfigFile(t *testing.T) {
	projectDir := t.TempDir()
	chdir(t, projectDir)

	content := `input: schema/ddl
output_dir: docs/tables
verbose: true
log_format: json
watch_debounce: 2s
`
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "ddldoc.yaml"), []byte(content), 0o600))

	cfg, err := Load("", nil, t.TempDir())
	require.NoError(t, err)

	// Paths from the file resolve against its directory, the working directory here.
	base, err := filepath.Abs(".")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "schema", "ddl"), cfg.Input)
	assert.Equal(t, filepath.Join(base, "docs", "tables"), cfg.OutputDir)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 2*time.Second, cfg.WatchDebounce)
	assert.Equal(t, "ddldoc.yaml", GetConfigFileUsed())
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	chdir(t, t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: out\n"), 0o600))

	cfg, err := Load(path, nil, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out"), cfg.OutputDir)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_Precedence(t *testing.T) {
	projectDir := t.TempDir()
	chdir(t, projectDir)
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "ddldoc.yaml"),
		[]byte("output_dir: /from/file\nlog_format: json\noutput: markdown\n"), 0o600))

	t.Setenv("DDLDOC_OUTPUT_DIR", "/from/env")
	t.Setenv("DDLDOC_OUTPUT", "json")
	t.Setenv("DDLDOC_WATCH_DEBOUNCE", "1s")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--output-dir", "/from/flag", "--watch-debounce", "3s", "-v"}))

	cfg, err := Load("", flags, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/from/flag", cfg.OutputDir, "flag beats env and file")
	assert.Equal(t, "json", cfg.OutputFormat, "env beats file")
	assert.Equal(t, "json", cfg.LogFormat, "file beats default")
	assert.Equal(t, 3*time.Second, cfg.WatchDebounce)
	assert.True(t, cfg.Verbose)
}

func TestLoad_EnvOnly(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DDLDOC_INPUT", "/data/ddl")
	t.Setenv("DDLDOC_VERBOSE", "true")

	cfg, err := Load("", newFlags(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "/data/ddl", cfg.Input)
	assert.True(t, cfg.Verbose)
}

func TestLoad_Invalid(t *testing.T) {
	chdir(t, t.TempDir())

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--log-format", "xml"}))

	_, err := Load("", flags, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log_format")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{OutputDir: "result", LogFormat: "text", OutputFormat: "auto"}
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		errSubstr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "yaml output", mutate: func(c *Config) { c.OutputFormat = "yaml" }},
		{name: "empty output dir", mutate: func(c *Config) { c.OutputDir = "" }, errSubstr: "output_dir is required"},
		{name: "bad output", mutate: func(c *Config) { c.OutputFormat = "html" }, errSubstr: "invalid output"},
		{name: "negative debounce", mutate: func(c *Config) { c.WatchDebounce = -time.Second }, errSubstr: "watch_debounce"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()

	fallback := FromContext(ctx)
	require.NotNil(t, fallback)
	assert.Equal(t, "auto", fallback.OutputFormat)
	assert.NotNil(t, GetLogger(ctx))

	cfg := &Config{OutputDir: "x"}
	ctx = WithConfig(ctx, cfg)
	assert.Same(t, cfg, FromContext(ctx))
}
