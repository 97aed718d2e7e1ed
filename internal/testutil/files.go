package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// UsersDDL is a complete table definition with comments on two columns.
const UsersDDL = `CREATE TABLE public.users (
    id   bigint PRIMARY KEY,
    name text NOT NULL
);

COMMENT ON TABLE public.users IS 'Users';
COMMENT ON COLUMN public.users.id IS 'ID';
COMMENT ON COLUMN public.users.name IS 'Name';
`

// UncommentedDDL has no table comment and is skipped by the extractor.
const UncommentedDDL = `CREATE TABLE public.audit_log (
    id bigint PRIMARY KEY
);
`

// WriteFile writes content to dir/name, creating dir as needed, and returns
// the file path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// ListFiles returns the names of the regular files in dir.
func ListFiles(t testing.TB, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("failed to read directory %s: %v", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}
