package boltkv

import (
	"bytes"

	"github.com/ktamura/kyoteidb/lib/db"
	bolt "go.etcd.io/bbolt"
)

// bucketName is the single bucket holding all entries.
var bucketName = []byte("kv")

// boltImpl implements db.OrderedKV on top of a bbolt B+tree. Scans walk a
// cursor, so entries come back in key order - stronger than the contract,
// which callers must not rely on.
type boltImpl struct {
	bdb *bolt.DB
}

// Open creates or opens a bolt-backed store at the given path.
func Open(path string) (db.OrderedKV, error) {
	bdb, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, db.NewErrorf(db.ErrCIO, "open bolt db %s: %v", path, err)
	}
	err = bdb.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		bdb.Close()
		return nil, db.NewErrorf(db.ErrCIO, "create bucket: %v", err)
	}
	return &boltImpl{bdb: bdb}, nil
}

// Factory returns a db.Factory that opens the store at the given path.
func Factory(path string) db.Factory {
	return func() (db.OrderedKV, error) {
		return Open(path)
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see db/db.go)
// --------------------------------------------------------------------------

func (s *boltImpl) Put(key, value string) error {
	if key == "" {
		return db.NewError(db.ErrCInvalidKey, "empty key")
	}
	err := s.bdb.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return db.NewErrorf(db.ErrCIO, "put: %v", err)
	}
	return nil
}

func (s *boltImpl) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, db.NewError(db.ErrCInvalidKey, "empty key")
	}
	var (
		value  string
		loaded bool
	)
	err := s.bdb.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketName).Get([]byte(key))
		if raw != nil {
			value = string(raw)
			loaded = true
		}
		return nil
	})
	if err != nil {
		return "", false, db.NewErrorf(db.ErrCIO, "get: %v", err)
	}
	return value, loaded, nil
}

func (s *boltImpl) Delete(key string) error {
	if key == "" {
		return db.NewError(db.ErrCInvalidKey, "empty key")
	}
	err := s.bdb.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
	if err != nil {
		return db.NewErrorf(db.ErrCIO, "delete: %v", err)
	}
	return nil
}

func (s *boltImpl) Keys() ([]string, error) {
	var keys []string
	err := s.bdb.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, db.NewErrorf(db.ErrCIO, "keys: %v", err)
	}
	return keys, nil
}

func (s *boltImpl) Scan(start, end string) ([]db.Entry, error) {
	if start == "" || end == "" {
		return nil, db.NewError(db.ErrCInvalidKey, "empty scan bound")
	}
	var entries []db.Entry
	err := s.bdb.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketName).Cursor()
		endBytes := []byte(end)
		for k, v := c.Seek([]byte(start)); k != nil && bytes.Compare(k, endBytes) < 0; k, v = c.Next() {
			entries = append(entries, db.Entry{Key: string(k), Value: string(v)})
		}
		return nil
	})
	if err != nil {
		return nil, db.NewErrorf(db.ErrCIO, "scan: %v", err)
	}
	return entries, nil
}

func (s *boltImpl) Clear() error {
	err := s.bdb.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketName); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketName)
		return err
	})
	if err != nil {
		return db.NewErrorf(db.ErrCIO, "clear: %v", err)
	}
	return nil
}

func (s *boltImpl) Close() error {
	if err := s.bdb.Close(); err != nil {
		return db.NewErrorf(db.ErrCIO, "close: %v", err)
	}
	return nil
}
