package source

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.sql", []byte("-- a"))
	b := writeFile(t, dir, "b.sql", []byte("-- b"))
	writeFile(t, dir, "notes.txt", []byte("not sql"))
	writeFile(t, dir, "c.SQL", []byte("-- upper case extension"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.sql"), 0o750))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o750))
	writeFile(t, filepath.Join(dir, "sub"), "deep.sql", []byte("-- deep"))

	t.Run("directory lists immediate sql files", func(t *testing.T) {
		files, err := Resolve(dir)
		require.NoError(t, err)
		sort.Strings(files)
		assert.Equal(t, []string{a, b}, files)
	})

	t.Run("single sql file", func(t *testing.T) {
		files, err := Resolve(a)
		require.NoError(t, err)
		assert.Equal(t, []string{a}, files)
	})

	t.Run("non sql file", func(t *testing.T) {
		files, err := Resolve(filepath.Join(dir, "notes.txt"))
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("missing path", func(t *testing.T) {
		files, err := Resolve(filepath.Join(dir, "missing"))
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("empty directory", func(t *testing.T) {
		files, err := Resolve(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, files)
	})
}

func TestIsSQLFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.sql", true},
		{"dir/users.sql", true},
		{".hidden.sql", true},
		{"a.SQL", false},
		{"a.sql.bak", false},
		{"sql", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSQLFile(tt.path))
		})
	}
}

func TestReadSQL(t *testing.T) {
	dir := t.TempDir()

	t.Run("plain utf-8", func(t *testing.T) {
		path := writeFile(t, dir, "plain.sql", []byte("COMMENT ON TABLE s.t IS 'テーブル';"))
		text, err := ReadSQL(path)
		require.NoError(t, err)
		assert.Equal(t, "COMMENT ON TABLE s.t IS 'テーブル';", text)
	})

	t.Run("utf-8 with bom", func(t *testing.T) {
		path := writeFile(t, dir, "bom.sql", append([]byte{0xEF, 0xBB, 0xBF}, "SELECT 1;"...))
		text, err := ReadSQL(path)
		require.NoError(t, err)
		assert.Equal(t, "SELECT 1;", text)
	})

	t.Run("utf-16le with bom", func(t *testing.T) {
		path := writeFile(t, dir, "utf16.sql", []byte{0xFF, 0xFE, 'A', 0x00, 'B', 0x00})
		text, err := ReadSQL(path)
		require.NoError(t, err)
		assert.Equal(t, "AB", text)
	})

	t.Run("invalid encoding", func(t *testing.T) {
		path := writeFile(t, dir, "sjis.sql", []byte{0x83, 0x65, 0x83, 0x58, 0x83, 0x67})
		_, err := ReadSQL(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidEncoding)
		assert.Contains(t, err.Error(), "sjis.sql")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadSQL(filepath.Join(dir, "missing.sql"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
