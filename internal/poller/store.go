package poller

import (
	"fmt"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketOffsets = []byte("offsets")

// OffsetStore remembers, per bot, the update_id to ask getUpdates for next.
type OffsetStore struct {
	db *bolt.DB
}

func OpenOffsetStore(path string) (*OffsetStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open offset store %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(bucketOffsets)
		return e
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &OffsetStore{db: db}, nil
}

func (s *OffsetStore) Close() error { return s.db.Close() }

// Offset returns 0 for a bot that never stored one.
func (s *OffsetStore) Offset(botID int64) (int64, error) {
	var offset int64
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketOffsets).Get(botKey(botID))
		if v == nil {
			return nil
		}
		n, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return fmt.Errorf("corrupt offset for bot %d: %w", botID, err)
		}
		offset = n
		return nil
	})
	return offset, err
}

func (s *OffsetStore) SetOffset(botID, offset int64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketOffsets).Put(botKey(botID), []byte(strconv.FormatInt(offset, 10)))
	})
}

func botKey(botID int64) []byte {
	return []byte(strconv.FormatInt(botID, 10))
}
