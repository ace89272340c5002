package store

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/vegasq/logq/internal/record"
)

var recordsBucket = []byte("records")

// boltEntry is the stored form of one record.
type boltEntry struct {
	Batch     string        `json:"batch"`
	CreatedAt int64         `json:"created_at"`
	Data      record.Record `json:"data"`
}

// BoltStore keeps saved records in a bbolt file, keyed by a big-endian
// sequence number.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens or creates the bbolt file at path.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, storageErr("open", errors.Wrapf(err, "failed to open %s", path))
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(recordsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, storageErr("open", errors.Wrap(err, "failed to create bucket"))
	}
	return &BoltStore{db: db}, nil
}

// Append writes records in one update under a fresh batch id.
func (s *BoltStore) Append(records []record.Record) error {
	if len(records) == 0 {
		return storageErr("append", errEmptyBatch)
	}

	batch := uuid.New().String()
	now := time.Now().UnixNano()

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(recordsBucket)
		for _, r := range records {
			seq, err := b.NextSequence()
			if err != nil {
				return errors.Wrap(err, "failed to allocate id")
			}
			data, err := json.Marshal(boltEntry{Batch: batch, CreatedAt: now, Data: r})
			if err != nil {
				return errors.Wrap(err, "failed to encode record")
			}
			if err := b.Put(itob(seq), data); err != nil {
				return errors.Wrap(err, "failed to put record")
			}
		}
		return nil
	})
	return storageErr("append", err)
}

// Recent returns up to n saved records, newest first.
func (s *BoltStore) Recent(n int) ([]Saved, error) {
	saved := make([]Saved, 0, n)
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(recordsBucket).Cursor()
		for k, v := c.Last(); k != nil && len(saved) < n; k, v = c.Prev() {
			var entry boltEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return errors.Wrapf(err, "failed to decode record %d", binary.BigEndian.Uint64(k))
			}
			saved = append(saved, Saved{
				ID:        int64(binary.BigEndian.Uint64(k)),
				Batch:     entry.Batch,
				CreatedAt: time.Unix(0, entry.CreatedAt),
				Record:    entry.Data,
			})
		}
		return nil
	})
	if err != nil {
		return nil, storageErr("recent", err)
	}
	return saved, nil
}

// Close closes the bbolt file.
func (s *BoltStore) Close() error {
	return storageErr("close", s.db.Close())
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
