package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/leapstack-labs/ddldoc/internal/report"
	"github.com/leapstack-labs/ddldoc/internal/source"
	"github.com/leapstack-labs/ddldoc/pkg/ddlcomment"
)

// ErrNoInput is returned when no input path was given and the default input
// directory does not exist.
var ErrNoInput = errors.New("no input path given and default DDL directory not found")

// FileStatus is the outcome for a single SQL file.
type FileStatus string

// File outcomes.
const (
	StatusWritten FileStatus = "written"
	StatusSkipped FileStatus = "skipped"
)

// FileResult describes what happened to one SQL file.
type FileResult struct {
	Source string                `json:"source"`
	Status FileStatus            `json:"status"`
	Output string                `json:"output,omitempty"`
	Table  *ddlcomment.TableInfo `json:"table,omitempty"`
}

// Result contains the outcome of a run. It is filled as files are processed,
// so it is meaningful even when Run returns an error.
type Result struct {
	Input    string        `json:"input"`
	Files    []FileResult  `json:"files"`
	Written  int           `json:"written"`
	Skipped  int           `json:"skipped"`
	Duration time.Duration `json:"duration_ns"`
}

func (r *Result) add(fr FileResult) {
	r.Files = append(r.Files, fr)
	switch fr.Status {
	case StatusWritten:
		r.Written++
	case StatusSkipped:
		r.Skipped++
	}
}

// Config holds runner configuration.
type Config struct {
	// InputPath is a directory of SQL files or a single SQL file.
	InputPath string
	// OutputDir receives the CSV reports.
	OutputDir string
	// Logger for structured logging (optional, defaults to discard).
	Logger *slog.Logger
	// Now overrides the report timestamp clock (optional).
	Now func() time.Time
	// OnFile is called after each file is handled (optional).
	OnFile func(FileResult)
}

// Runner processes SQL files one at a time and writes their reports.
type Runner struct {
	input  string
	writer *report.Writer
	logger *slog.Logger
	onFile func(FileResult)
}

// NewRunner creates a Runner from cfg.
func NewRunner(cfg Config) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	w := report.NewWriter(cfg.OutputDir, logger)
	if cfg.Now != nil {
		w.Now = cfg.Now
	}

	return &Runner{
		input:  cfg.InputPath,
		writer: w,
		logger: logger,
		onFile: cfg.OnFile,
	}
}

// Input returns the configured input path.
func (r *Runner) Input() string {
	return r.input
}

// OutputDir returns the directory reports are written to.
func (r *Runner) OutputDir() string {
	return r.writer.Dir
}

// Run processes every SQL file under the input path. The first read or write
// error stops the run; files without a table comment are skipped.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{Input: r.input}

	files, err := source.Resolve(r.input)
	if err != nil {
		return result, err
	}

	r.logger.Info("starting extraction",
		"input", r.input,
		"output_dir", r.writer.Dir,
		"files", len(files))

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		fr, err := r.ProcessOne(path)
		if err != nil {
			result.Duration = time.Since(start)
			return result, err
		}
		result.add(fr)
	}

	result.Duration = time.Since(start)

	r.logger.Info("extraction completed",
		"written", result.Written,
		"skipped", result.Skipped,
		"duration_ms", result.Duration.Milliseconds())

	return result, nil
}

// ProcessOne extracts and writes the report for a single SQL file.
func (r *Runner) ProcessOne(path string) (FileResult, error) {
	info, err := ProcessFile(path, r.logger)
	if err != nil {
		return FileResult{}, fmt.Errorf("failed to process %s: %w", path, err)
	}

	fr := FileResult{Source: path, Status: StatusSkipped}
	if info == nil {
		r.logger.Info("skipping file without table comment", "path", path)
	} else {
		out, err := r.writer.Write(info)
		if err != nil {
			return FileResult{}, fmt.Errorf("failed to write report for %s: %w", path, err)
		}
		fr.Status = StatusWritten
		fr.Output = out
		fr.Table = info
	}

	if r.onFile != nil {
		r.onFile(fr)
	}
	return fr, nil
}

// ResolveInput picks the input path: arg when given, otherwise defaultDir,
// which must then be an existing directory.
func ResolveInput(arg, defaultDir string) (path string, usedDefault bool, err error) {
	if arg != "" {
		return arg, false, nil
	}

	info, err := os.Stat(defaultDir)
	if err != nil || !info.IsDir() {
		return "", true, fmt.Errorf("%w: %s", ErrNoInput, defaultDir)
	}
	return defaultDir, true, nil
}
