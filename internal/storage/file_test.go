package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todotui/internal/todotxt"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestFileStoreLoadAllMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "todo.txt"), testLogger())
	assert.Empty(t, s.LoadAll())
}

func TestFileStoreRewriteAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.txt")
	s := NewFileStore(path, testLogger())

	tasks := []todotxt.Task{
		todotxt.Parse("(A) 2024-01-01 Buy milk +home"),
		todotxt.Parse("x 2024-01-03 2024-01-02 Call mom @phone"),
	}
	require.NoError(t, s.RewriteAll(tasks))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "(A) 2024-01-01 Buy milk +home\nx 2024-01-03 2024-01-02 Call mom @phone\n", string(data))

	assert.Equal(t, tasks, s.LoadAll())
}

func TestFileStoreAppendOne(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.txt")
	s := NewFileStore(path, testLogger())

	require.NoError(t, s.AppendOne(todotxt.Parse("First")))
	require.NoError(t, s.AppendOne(todotxt.Parse("Second @desk")))

	tasks := s.LoadAll()
	require.Len(t, tasks, 2)
	assert.Equal(t, "First", tasks[0].Description.Content)
	assert.Equal(t, "Second", tasks[1].Description.Content)
	assert.Equal(t, "desk", tasks[1].Description.Context)
}

func TestFileStoreRewriteTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.txt")
	s := NewFileStore(path, testLogger())

	require.NoError(t, s.RewriteAll([]todotxt.Task{
		todotxt.Parse("One"),
		todotxt.Parse("Two"),
		todotxt.Parse("Three"),
	}))
	require.NoError(t, s.RewriteAll([]todotxt.Task{todotxt.Parse("Only")}))

	tasks := s.LoadAll()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Only", tasks[0].Description.Content)
}

func TestFileStoreKeepsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.txt")
	require.NoError(t, os.WriteFile(path, []byte("One\n\nTwo\n"), 0o644))

	tasks := NewFileStore(path, testLogger()).LoadAll()
	require.Len(t, tasks, 3)
	assert.Equal(t, "", tasks[1].Description.Content)
}

func TestOpenDispatch(t *testing.T) {
	dir := t.TempDir()

	s, err := Open("", filepath.Join(dir, "todo.txt"), testLogger())
	require.NoError(t, err)
	_, ok := s.(*FileStore)
	assert.True(t, ok)

	s, err = Open(BackendSQLite, filepath.Join(dir, "todo.db"), testLogger())
	require.NoError(t, err)
	_, ok = s.(*SQLiteStore)
	assert.True(t, ok)
	require.NoError(t, s.Close())

	_, err = Open("redis", "", testLogger())
	assert.Error(t, err)
}
