// Package storage persists the task collection.
//
// Two backends implement the same Store contract: the default plain
// todo.txt file, and a sqlite database keeping one serialized record
// line per row. LoadAll never fails visibly; a missing or unreadable
// source reads as an empty collection.
package storage

import (
	"fmt"

	"github.com/charmbracelet/log"

	"todotui/internal/todotxt"
)

// Backend names accepted by Open and the config file.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Store is the persistence collaborator for the command interpreter.
// RewriteAll replaces the whole persisted collection; AppendOne adds a
// single record without touching the rest.
type Store interface {
	LoadAll() []todotxt.Task
	RewriteAll(tasks []todotxt.Task) error
	AppendOne(task todotxt.Task) error
	Close() error
}

// Open returns the configured backend. path is the todo.txt path for
// the file backend and the database path for sqlite.
func Open(backend, path string, logger *log.Logger) (Store, error) {
	switch backend {
	case "", BackendFile:
		return NewFileStore(path, logger), nil
	case BackendSQLite:
		return OpenSQLite(path, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
