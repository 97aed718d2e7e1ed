// Package source locates and reads the SQL files ddldoc documents.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Pattern is the glob used to pick SQL files out of a directory.
const Pattern = "*.sql"

// ErrInvalidEncoding is returned by ReadSQL for content that is not UTF-8.
var ErrInvalidEncoding = errors.New("file is not valid UTF-8")

// Resolve returns the SQL files for path.
//
// A directory yields its immediate *.sql entries (no recursion, directories
// excluded). A file with the .sql extension yields itself. Anything else,
// including a path that does not exist, yields an empty list.
func Resolve(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if !info.IsDir() {
		if IsSQLFile(path) {
			return []string{path}, nil
		}
		return nil, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !IsSQLFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(path, entry.Name()))
	}
	return files, nil
}

// IsSQLFile reports whether the base name of path matches Pattern.
func IsSQLFile(path string) bool {
	ok, _ := filepath.Match(Pattern, filepath.Base(path))
	return ok
}

// ReadSQL reads a whole SQL file as text. A leading byte-order mark is
// stripped. Content that is neither UTF-8 nor BOM-marked UTF-16 is rejected
// with ErrInvalidEncoding.
func ReadSQL(path string) (string, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // G304: path comes from Resolve
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	text, err := Decode(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}

var (
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// Decode converts raw file content to text.
func Decode(raw []byte) (string, error) {
	if !utf8.Valid(raw) && !bytes.HasPrefix(raw, bomUTF16BE) && !bytes.HasPrefix(raw, bomUTF16LE) {
		return "", ErrInvalidEncoding
	}

	// BOMOverride switches to UTF-16 when a UTF-16 mark is present and
	// strips a UTF-8 mark otherwise.
	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode: %w", err)
	}
	return string(out), nil
}
