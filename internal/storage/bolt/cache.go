package bolt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var bucketQuotes = []byte("quotes")

type entry struct {
	StoredAt time.Time       `json:"stored_at"`
	Value    json.RawMessage `json:"value"`
}

// Cache is a TTL key/value cache persisted in a bbolt file.
// Values must be valid JSON documents.
type Cache struct {
	db  *bbolt.DB
	ttl time.Duration
	now func() time.Time
}

func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketQuotes)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache bucket: %w", err)
	}

	return &Cache{db: db, ttl: ttl, now: time.Now}, nil
}

// Get returns a fresh value for key. Expired and unreadable entries are
// reported as misses.
func (c *Cache) Get(key string) ([]byte, bool) {
	var out []byte
	_ = c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketQuotes).Get([]byte(key))
		if data == nil {
			return nil
		}
		var e entry
		if err := json.Unmarshal(data, &e); err != nil {
			return nil
		}
		if c.ttl > 0 && c.now().Sub(e.StoredAt) > c.ttl {
			return nil
		}
		// data is only valid inside the transaction
		out = append([]byte(nil), e.Value...)
		return nil
	})
	return out, out != nil
}

func (c *Cache) Put(key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("cache value for %s is not valid JSON", key)
	}
	data, err := json.Marshal(entry{StoredAt: c.now(), Value: value})
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketQuotes).Put([]byte(key), data)
	})
}

// Purge removes expired entries and returns how many were dropped.
func (c *Cache) Purge() (int, error) {
	removed := 0
	err := c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketQuotes)
		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var e entry
			if json.Unmarshal(v, &e) != nil || (c.ttl > 0 && c.now().Sub(e.StoredAt) > c.ttl) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	return removed, err
}

func (c *Cache) Close() error {
	return c.db.Close()
}
