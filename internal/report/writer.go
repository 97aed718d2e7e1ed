// Package report renders extracted table documentation as CSV files.
package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/leapstack-labs/ddldoc/pkg/ddlcomment"
)

// Header is the column table header row.
var Header = []string{"No", "物理名", "論理名"}

// ErrOutputExists is returned when the target report file already exists.
var ErrOutputExists = errors.New("report file already exists")

// Writer writes one CSV report per table into Dir.
type Writer struct {
	Dir string
	// Now supplies the generation timestamp. Defaults to time.Now.
	Now    func() time.Time
	logger *slog.Logger
}

// NewWriter creates a Writer for dir.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Writer{
		Dir:    dir,
		Now:    time.Now,
		logger: logger,
	}
}

// Write creates the report for info and returns its path. The output
// directory is created if needed. An existing file is never overwritten.
func (w *Writer) Write(info *ddlcomment.TableInfo) (string, error) {
	if !info.Valid() {
		return "", fmt.Errorf("cannot write report: table name is empty")
	}

	if err := os.MkdirAll(w.Dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	path := filepath.Join(w.Dir, Filename(info, now()))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644) //nolint:gosec // G302: reports are meant to be shared
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%s: %w", path, ErrOutputExists)
		}
		return "", fmt.Errorf("failed to create report: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := Encode(f, info); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}

	w.logger.Debug("report written",
		"table", info.QualifiedName(),
		"columns", len(info.Columns),
		"path", path)

	return path, nil
}

// Encode writes the report layout for info to out as BOM-prefixed UTF-8:
//
//	schema
//	table_name,table_logical_name
//	(blank)
//	No,物理名,論理名
//	1,column_name,column_logical_name
//	...
//
// Rows end in CRLF. Line breaks inside a quoted field are written unchanged.
func Encode(out io.Writer, info *ddlcomment.TableInfo) error {
	bw := transform.NewWriter(out, unicode.UTF8BOM.NewEncoder())

	records := make([][]string, 0, len(info.Columns)+4)
	records = append(records,
		[]string{info.Schema},
		[]string{info.TableName, info.TableLogicalName},
		[]string{},
		Header,
	)
	for i, c := range info.Columns {
		records = append(records, []string{strconv.Itoa(i + 1), c.Name, c.LogicalName})
	}

	// csv.Writer with UseCRLF also rewrites "\n" inside fields, so each record
	// is encoded with "\n" and only its terminator is replaced.
	var line bytes.Buffer
	cw := csv.NewWriter(&line)
	for _, rec := range records {
		line.Reset()
		if err := cw.Write(rec); err != nil {
			return err
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return err
		}

		row := bytes.TrimSuffix(line.Bytes(), []byte{'\n'})
		if _, err := bw.Write(row); err != nil {
			return err
		}
		if _, err := io.WriteString(bw, "\r\n"); err != nil {
			return err
		}
	}
	return bw.Close()
}
