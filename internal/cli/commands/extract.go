package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/ddldoc/internal/cli/output"
	"github.com/leapstack-labs/ddldoc/internal/extract"
)

// RunExtract generates the CSV reports. It backs the root command.
func RunExtract(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer
	logger := cmdCtx.Logger

	input, err := cmdCtx.inputPath(args)
	if err != nil {
		return err
	}

	mode := r.EffectiveMode()
	runner := extract.NewRunner(extract.Config{
		InputPath: input,
		OutputDir: cfg.OutputDir,
		Logger:    logger,
		OnFile: func(fr extract.FileResult) {
			if !mode.IsStructured() {
				renderFileResult(r, fr)
			}
		},
	})

	result, runErr := runner.Run(cmd.Context())

	if mode.IsStructured() {
		if err := r.Structured(result); err != nil {
			return fmt.Errorf("failed to render result: %w", err)
		}
	} else if runErr == nil {
		renderSummary(r, result)
	}

	if runErr != nil {
		return runErr
	}

	if !cfg.Watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.Info(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", input))
	w := extract.NewWatcher(runner, cfg.WatchDebounce, logger)
	if err := w.Watch(ctx); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}

func renderFileResult(r *output.Renderer, fr extract.FileResult) {
	name := filepath.Base(fr.Source)
	switch fr.Status {
	case extract.StatusWritten:
		r.Success(fmt.Sprintf("Wrote %s (%s, %d columns)", filepath.Base(fr.Output), fr.Table.QualifiedName(), len(fr.Table.Columns)))
	case extract.StatusSkipped:
		r.Warning(fmt.Sprintf("Skipped %s (no COMMENT ON TABLE found)", name))
	}
}

func renderSummary(r *output.Renderer, result *extract.Result) {
	if len(result.Files) == 0 {
		r.Warning("No .sql files found in " + result.Input)
		return
	}
	r.Info(fmt.Sprintf("%d report(s) written, %d file(s) skipped", result.Written, result.Skipped))
}
