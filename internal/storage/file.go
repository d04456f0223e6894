package storage

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"todotui/internal/todotxt"
)

// FileStore reads and writes the todo.txt file, one record per line.
// This is the default backend and the format other todo.txt tools
// expect.
type FileStore struct {
	path string
	log  *log.Logger
}

func NewFileStore(path string, logger *log.Logger) *FileStore {
	return &FileStore{path: path, log: logger}
}

func (s *FileStore) LoadAll() []todotxt.Task {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("load failed", "path", s.path, "err", err)
		}
		return nil
	}
	var tasks []todotxt.Task
	for _, line := range splitLines(string(data)) {
		tasks = append(tasks, todotxt.Parse(line))
	}
	return tasks
}

func (s *FileStore) RewriteAll(tasks []todotxt.Task) error {
	var b strings.Builder
	for _, t := range tasks {
		b.WriteString(t.Format())
		b.WriteByte('\n')
	}
	return os.WriteFile(s.path, []byte(b.String()), 0o644)
}

func (s *FileStore) AppendOne(task todotxt.Task) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(task.Format() + "\n"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *FileStore) Close() error { return nil }

// splitLines splits on newlines, tolerating CRLF and a trailing
// newline. Interior blank lines are kept; they are records too.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
