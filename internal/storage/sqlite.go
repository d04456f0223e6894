package storage

import (
	"database/sql"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"todotui/internal/todotxt"
)

// SQLiteStore is the alternative backend. Each row holds one record
// line exactly as the file backend would write it, ordered by rowid,
// so the codec stays the single owner of the record format.
type SQLiteStore struct {
	db  *sql.DB
	log *log.Logger
}

func OpenSQLite(dbPath string, logger *log.Logger) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, log: logger}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	line TEXT NOT NULL
);`
	_, err := s.db.Exec(ddl)
	return err
}

func (s *SQLiteStore) LoadAll() []todotxt.Task {
	rows, err := s.db.Query(`SELECT line FROM records ORDER BY id;`)
	if err != nil {
		s.log.Warn("load failed", "err", err)
		return nil
	}
	defer rows.Close()

	var tasks []todotxt.Task
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			s.log.Warn("load failed", "err", err)
			return nil
		}
		tasks = append(tasks, todotxt.Parse(line))
	}
	if err := rows.Err(); err != nil {
		s.log.Warn("load failed", "err", err)
		return nil
	}
	return tasks
}

func (s *SQLiteStore) RewriteAll(tasks []todotxt.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM records;`); err != nil {
		tx.Rollback()
		return err
	}
	for _, t := range tasks {
		if _, err := tx.Exec(`INSERT INTO records (line) VALUES (?);`, t.Format()); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) AppendOne(task todotxt.Task) error {
	_, err := s.db.Exec(`INSERT INTO records (line) VALUES (?);`, task.Format())
	return err
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
