package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/vegasq/logq/internal/record"
)

// SQLiteStore keeps saved records in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storageErr("open", errors.Wrapf(err, "failed to open database %s", path))
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, storageErr("open", err)
	}
	return s, nil
}

// initSchema creates the database schema
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		batch TEXT NOT NULL,
		data TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_batch ON records(batch);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return errors.Wrap(err, "failed to create schema")
	}
	return nil
}

// Append writes records in one transaction under a fresh batch id.
func (s *SQLiteStore) Append(records []record.Record) error {
	if len(records) == 0 {
		return storageErr("append", errEmptyBatch)
	}

	batch := uuid.New().String()
	now := time.Now().UnixNano()

	tx, err := s.db.Begin()
	if err != nil {
		return storageErr("append", errors.Wrap(err, "failed to begin transaction"))
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`INSERT INTO records (batch, data, created_at) VALUES (?, ?, ?)`)
	if err != nil {
		return storageErr("append", errors.Wrap(err, "failed to prepare insert"))
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return storageErr("append", errors.Wrap(err, "failed to encode record"))
		}
		if _, err := stmt.Exec(batch, string(data), now); err != nil {
			return storageErr("append", errors.Wrap(err, "failed to insert record"))
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("append", errors.Wrap(err, "failed to commit"))
	}
	return nil
}

// Recent returns up to n saved records, newest first.
func (s *SQLiteStore) Recent(n int) ([]Saved, error) {
	rows, err := s.db.Query(`SELECT id, batch, data, created_at FROM records ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, storageErr("recent", errors.Wrap(err, "failed to query records"))
	}
	defer func() { _ = rows.Close() }()

	saved := make([]Saved, 0, n)
	for rows.Next() {
		var (
			item    Saved
			data    string
			created int64
		)
		if err := rows.Scan(&item.ID, &item.Batch, &data, &created); err != nil {
			return nil, storageErr("recent", errors.Wrap(err, "failed to scan record"))
		}
		if err := json.Unmarshal([]byte(data), &item.Record); err != nil {
			return nil, storageErr("recent", errors.Wrapf(err, "failed to decode record %d", item.ID))
		}
		item.CreatedAt = time.Unix(0, created)
		saved = append(saved, item)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("recent", err)
	}
	return saved, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return storageErr("close", s.db.Close())
}
