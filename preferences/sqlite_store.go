package preferences

import (
	"database/sql"
	"encoding/json"
	"errors"

	_ "modernc.org/sqlite"

	"github.com/basekit-go/basekit/status"
	"github.com/basekit-go/basekit/value"
)

// SQLiteStore persists preferences in a single-table SQLite database. Values
// round-trip through their JSON form.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLiteStore opens (creating if necessary) the database at dbPath and
// ensures the preferences table exists.
func OpenSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, status.Wrap(status.CodeIO, err, "can't open preferences database "+dbPath)
	}

	const schema = `
        CREATE TABLE IF NOT EXISTS preferences (
            path TEXT PRIMARY KEY,
            json TEXT NOT NULL
        )`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, status.Wrap(status.CodeIO, err, "can't initialize preferences schema")
	}

	return &SQLiteStore{db: db}, nil
}

// GetValue loads and decodes the value stored at path.
func (s *SQLiteStore) GetValue(path string) (value.Value, error) {
	var raw string
	err := s.db.QueryRow(`SELECT json FROM preferences WHERE path = ?`, path).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return value.Value{}, status.Errorf(status.CodeNotFound, "no preference at %q", path)
	}
	if err != nil {
		return value.Value{}, status.Wrap(status.CodeIO, err, "can't query preference "+path)
	}

	var v value.Value
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return value.Value{}, status.Wrap(status.CodeInternal, err, "corrupt preference at "+path)
	}
	return v, nil
}

// SetValue encodes v and upserts it at path.
func (s *SQLiteStore) SetValue(path string, v value.Value) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return status.Wrap(status.CodeInternal, err, "can't encode preference "+path)
	}
	_, err = s.db.Exec(`
        INSERT INTO preferences (path, json) VALUES (?, ?)
        ON CONFLICT(path) DO UPDATE SET json = excluded.json`, path, string(raw))
	if err != nil {
		return status.Wrap(status.CodeIO, err, "can't store preference "+path)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
