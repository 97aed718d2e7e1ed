// Package extract drives the documentation pipeline: it resolves SQL files,
// extracts table comments from each one and writes a CSV report per table.
package extract

import (
	"log/slog"

	"github.com/leapstack-labs/ddldoc/internal/source"
	"github.com/leapstack-labs/ddldoc/pkg/ddlcomment"
)

// ProcessFile reads path and extracts its table documentation.
// It returns nil, nil when the file has no table comment.
func ProcessFile(path string, logger *slog.Logger) (*ddlcomment.TableInfo, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	text, err := source.ReadSQL(path)
	if err != nil {
		return nil, err
	}

	info, ok := ddlcomment.Extract(text)
	if !ok {
		logger.Debug("no table comment", "path", path)
		return nil, nil
	}
	info.SourcePath = path

	if info.IgnoredTables > 0 {
		logger.Warn("multiple table comments, only the first is used",
			"path", path,
			"table", info.QualifiedName(),
			"ignored", info.IgnoredTables)
	}

	logger.Debug("extracted table",
		"path", path,
		"table", info.QualifiedName(),
		"columns", len(info.Columns))

	return info, nil
}
