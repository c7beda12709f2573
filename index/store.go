// Package index keeps catalog collection in SQLite database so it could be
// queried without parsing catalog documents again.
package index

import (
	"errors"
	"fmt"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"mcat/catalog"
	"mcat/model"
)

// Memory opens private in-memory database.
const Memory = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id          TEXT NOT NULL,
	unique_key  TEXT NOT NULL PRIMARY KEY,
	kind        TEXT NOT NULL,
	title       TEXT NOT NULL,
	sort_title  TEXT NOT NULL,
	file_title  TEXT NOT NULL,
	year        INTEGER NOT NULL DEFAULT 0,
	idx         INTEGER NOT NULL DEFAULT 1,
	runtime_ms  INTEGER NOT NULL DEFAULT 0,
	media_title TEXT NOT NULL DEFAULT '',
	source      TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS entries_sort ON entries(sort_title, unique_key);
`

const columns = `id, unique_key, kind, title, sort_title, file_title, year, idx, runtime_ms, media_title, source`

// Record is a row of the index.
type Record struct {
	ID         string
	UniqueKey  string
	Kind       string
	Title      string
	SortTitle  string
	FileTitle  string
	Year       int
	Index      int
	Runtime    time.Duration
	MediaTitle string
	Source     string
}

// RecordOf flattens collection entry.
func RecordOf(e *catalog.Entry) Record {
	w := e.Content.Base()
	r := Record{
		ID:        w.ID().String(),
		UniqueKey: w.UniqueKey,
		Kind:      string(e.Content.Kind()),
		Title:     w.Title.Raw,
		SortTitle: w.SortTitle,
		FileTitle: w.Title.File,
		Year:      w.Year(),
		Index:     w.Index(),
		Runtime:   e.Content.Runtime(),
		Source:    e.Source,
	}
	if e.Media != nil {
		r.MediaTitle = e.Media.Title.Raw
	}
	return r
}

// Records flattens collection in sorted order.
func Records(c *catalog.Collection) []Record {
	entries := c.Sorted()
	out := make([]Record, 0, len(entries))
	for _, e := range entries {
		out = append(out, RecordOf(e))
	}
	return out
}

// Store is an open index database. Not safe for concurrent use.
type Store struct {
	conn *sqlite.Conn
}

// Open opens or creates index database at path, use Memory for temporary
// one.
func Open(path string) (*Store, error) {
	var (
		conn *sqlite.Conn
		err  error
	)
	if path == Memory {
		conn, err = sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenMemory)
	} else {
		conn, err = sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate)
	}
	if err != nil {
		return nil, fmt.Errorf("open index %s: %w", path, err)
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create index schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// Replace drops everything stored and writes records. Either all records are
// written or nothing changes.
func (s *Store) Replace(records []Record) (err error) {
	defer sqlitex.Save(s.conn)(&err)

	if err = sqlitex.Execute(s.conn, `DELETE FROM entries`, nil); err != nil {
		return fmt.Errorf("clear index: %w", err)
	}
	for _, r := range records {
		err = sqlitex.Execute(s.conn, `INSERT INTO entries (`+columns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			&sqlitex.ExecOptions{Args: []any{
				r.ID, r.UniqueKey, r.Kind, r.Title, r.SortTitle, r.FileTitle,
				r.Year, r.Index, r.Runtime.Milliseconds(), r.MediaTitle, r.Source,
			}})
		if err != nil {
			return fmt.Errorf("store %q: %w", r.UniqueKey, err)
		}
	}
	return nil
}

// ErrNotFound is returned by Lookup when key is not indexed.
var ErrNotFound = errors.New("not found in index")

// Lookup returns record by unique key.
func (s *Store) Lookup(key string) (Record, error) {
	var (
		rec   Record
		found bool
	)
	err := sqlitex.Execute(s.conn, `SELECT `+columns+` FROM entries WHERE unique_key = ?`,
		&sqlitex.ExecOptions{
			Args: []any{key},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				rec, found = scan(stmt), true
				return nil
			}})
	if err != nil {
		return Record{}, fmt.Errorf("lookup %q: %w", key, err)
	}
	if !found {
		return Record{}, fmt.Errorf("%q: %w", key, ErrNotFound)
	}
	return rec, nil
}

// All returns every record ordered by sort title.
func (s *Store) All() ([]Record, error) {
	var out []Record
	err := sqlitex.Execute(s.conn, `SELECT `+columns+` FROM entries ORDER BY sort_title, unique_key`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				out = append(out, scan(stmt))
				return nil
			}})
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	return out, nil
}

// Count returns number of records by content kind.
func (s *Store) Count() (map[model.ContentKind]int, error) {
	out := make(map[model.ContentKind]int)
	err := sqlitex.Execute(s.conn, `SELECT kind, COUNT(*) FROM entries GROUP BY kind`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				out[model.ContentKind(stmt.ColumnText(0))] = stmt.ColumnInt(1)
				return nil
			}})
	if err != nil {
		return nil, fmt.Errorf("count index: %w", err)
	}
	return out, nil
}

func scan(stmt *sqlite.Stmt) Record {
	return Record{
		ID:         stmt.ColumnText(0),
		UniqueKey:  stmt.ColumnText(1),
		Kind:       stmt.ColumnText(2),
		Title:      stmt.ColumnText(3),
		SortTitle:  stmt.ColumnText(4),
		FileTitle:  stmt.ColumnText(5),
		Year:       stmt.ColumnInt(6),
		Index:      stmt.ColumnInt(7),
		Runtime:    time.Duration(stmt.ColumnInt64(8)) * time.Millisecond,
		MediaTitle: stmt.ColumnText(9),
		Source:     stmt.ColumnText(10),
	}
}
