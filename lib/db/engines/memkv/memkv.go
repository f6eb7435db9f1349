package memkv

import (
	"github.com/ktamura/kyoteidb/lib/db"
	"github.com/puzpuzpuz/xsync/v3"
)

// memImpl implements db.OrderedKV on top of a concurrent hash map.
// The map is unordered, so Scan filters the full key set; the contract
// permits this since scan results carry no ordering guarantee.
type memImpl struct {
	data *xsync.MapOf[string, string]
}

// New creates a new in-memory store instance. The store is not durable:
// its contents are lost when the process exits.
//
// Thread-safety: all methods are safe for concurrent callers, the underlying
// map handles synchronization internally.
func New() db.OrderedKV {
	return &memImpl{
		data: xsync.NewMapOf[string, string](),
	}
}

// Factory returns a db.Factory producing independent in-memory stores.
func Factory() db.Factory {
	return func() (db.OrderedKV, error) {
		return New(), nil
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see db/db.go)
// --------------------------------------------------------------------------

func (s *memImpl) Put(key, value string) error {
	if key == "" {
		return db.NewError(db.ErrCInvalidKey, "empty key")
	}
	s.data.Store(key, value)
	return nil
}

func (s *memImpl) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, db.NewError(db.ErrCInvalidKey, "empty key")
	}
	value, loaded := s.data.Load(key)
	return value, loaded, nil
}

func (s *memImpl) Delete(key string) error {
	if key == "" {
		return db.NewError(db.ErrCInvalidKey, "empty key")
	}
	s.data.Delete(key)
	return nil
}

func (s *memImpl) Keys() ([]string, error) {
	keys := make([]string, 0, s.data.Size())
	s.data.Range(func(key string, _ string) bool {
		keys = append(keys, key)
		return true
	})
	return keys, nil
}

func (s *memImpl) Scan(start, end string) ([]db.Entry, error) {
	if start == "" || end == "" {
		return nil, db.NewError(db.ErrCInvalidKey, "empty scan bound")
	}
	var entries []db.Entry
	s.data.Range(func(key string, value string) bool {
		if key >= start && key < end {
			entries = append(entries, db.Entry{Key: key, Value: value})
		}
		return true
	})
	return entries, nil
}

func (s *memImpl) Clear() error {
	s.data.Clear()
	return nil
}

func (s *memImpl) Close() error {
	return nil
}
