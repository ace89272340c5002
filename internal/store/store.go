// Package store persists matched records.
//
// Each call to Append is one batch: every record of the batch shares a
// batch id, and the whole batch is written in a single transaction.
// Two backends are available, SQLite (modernc.org/sqlite) and bbolt.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/vegasq/logq/internal/record"
)

// Supported drivers.
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
	DriverNone   = "none"
)

// ErrStorage is matched by every error a store returns.
var ErrStorage = errors.New("storage failure")

// StorageError wraps a backend failure with the operation that failed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorage, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrStorage) hold.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// Saved is a persisted record.
type Saved struct {
	ID        int64
	Batch     string
	CreatedAt time.Time
	Record    record.Record
}

// Store is a persistence backend.
type Store interface {
	// Append writes records as one batch. An empty batch is an error.
	Append(records []record.Record) error
	// Recent returns up to n saved records, newest first.
	Recent(n int) ([]Saved, error)
	Close() error
}

// Open opens the store for driver at path. DriverNone, or an empty
// driver, returns a nil Store and no error.
func Open(driver, path string) (Store, error) {
	var (
		s   Store
		err error
	)
	switch driver {
	case DriverSQLite:
		s, err = OpenSQLite(path)
	case DriverBolt:
		s, err = OpenBolt(path)
	case DriverNone, "":
		return nil, nil
	default:
		return nil, &StorageError{Op: "open", Err: fmt.Errorf("unknown driver %q", driver)}
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

var errEmptyBatch = errors.New("no records to save")

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
