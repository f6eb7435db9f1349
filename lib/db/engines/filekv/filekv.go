package filekv

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/ktamura/kyoteidb/lib/db"
)

// snapshot is the persisted file format: a single JSON object with one
// member mapping every stored key to its opaque value. Keys embed the NUL
// separator literally (encoding/json escapes it as \u0000).
type snapshot struct {
	Data map[string]string `json:"data"`
}

// fileImpl implements db.OrderedKV as a whole-file JSON snapshot. The full
// snapshot lives in memory; every mutating call rewrites the file and fsyncs
// before returning. There is no incremental log.
type fileImpl struct {
	mu   sync.RWMutex
	path string
	data map[string]string
}

// Open creates a file-backed store at the given path. An existing snapshot
// is loaded into memory; a missing or empty file yields an empty store.
// A file that exists but cannot be read fails with ErrCIO, content that is
// not a well-formed snapshot fails with ErrCSerialization.
func Open(path string) (db.OrderedKV, error) {
	s := &fileImpl{
		path: path,
		data: make(map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Factory returns a db.Factory that opens the store at the given path.
// Repeated calls reopen the same snapshot, so the factory can be used to
// verify persistence across instances.
func Factory(path string) db.Factory {
	return func() (db.OrderedKV, error) {
		return Open(path)
	}
}

// --------------------------------------------------------------------------
// Snapshot I/O
// --------------------------------------------------------------------------

func (s *fileImpl) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return db.NewErrorf(db.ErrCIO, "read snapshot %s: %v", s.path, err)
	}
	if len(raw) == 0 {
		return nil
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return db.NewErrorf(db.ErrCSerialization, "corrupt snapshot %s: %v", s.path, err)
	}
	if snap.Data != nil {
		s.data = snap.Data
	}
	return nil
}

// save rewrites the whole snapshot. The data is written to a temp file in
// the same directory, fsynced, and renamed over the target so readers never
// observe a half-written snapshot. Callers must hold the write lock.
func (s *fileImpl) save() error {
	raw, err := json.MarshalIndent(snapshot{Data: s.data}, "", "  ")
	if err != nil {
		return db.NewErrorf(db.ErrCSerialization, "marshal snapshot: %v", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return db.NewErrorf(db.ErrCIO, "create temp snapshot: %v", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return db.NewErrorf(db.ErrCIO, "write snapshot: %v", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return db.NewErrorf(db.ErrCIO, "sync snapshot: %v", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return db.NewErrorf(db.ErrCIO, "close snapshot: %v", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return db.NewErrorf(db.ErrCIO, "replace snapshot: %v", err)
	}
	return nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see db/db.go)
// --------------------------------------------------------------------------

func (s *fileImpl) Put(key, value string) error {
	if key == "" {
		return db.NewError(db.ErrCInvalidKey, "empty key")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.save()
}

func (s *fileImpl) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, db.NewError(db.ErrCInvalidKey, "empty key")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, loaded := s.data[key]
	return value, loaded, nil
}

func (s *fileImpl) Delete(key string) error {
	if key == "" {
		return db.NewError(db.ErrCInvalidKey, "empty key")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return s.save()
}

func (s *fileImpl) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *fileImpl) Scan(start, end string) ([]db.Entry, error) {
	if start == "" || end == "" {
		return nil, db.NewError(db.ErrCInvalidKey, "empty scan bound")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var entries []db.Entry
	for key, value := range s.data {
		if key >= start && key < end {
			entries = append(entries, db.Entry{Key: key, Value: value})
		}
	}
	return entries, nil
}

func (s *fileImpl) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]string)
	return s.save()
}

func (s *fileImpl) Close() error {
	return nil
}
