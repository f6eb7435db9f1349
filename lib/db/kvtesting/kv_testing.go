package kvtesting

import (
	"fmt"
	"sort"
	"testing"

	"github.com/ktamura/kyoteidb/lib/db"
)

// RunOrderedKVTests runs a conformance test suite for an OrderedKV
// implementation. The factory must return an empty store on every call.
func RunOrderedKVTests(t *testing.T, name string, factory db.Factory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Put&Get", func(t *testing.T) {
			testPutGet(t, mustOpen(t, factory))
		})

		t.Run("Overwrite", func(t *testing.T) {
			testOverwrite(t, mustOpen(t, factory))
		})

		t.Run("Delete", func(t *testing.T) {
			testDelete(t, mustOpen(t, factory))
		})

		t.Run("Keys&Clear", func(t *testing.T) {
			testKeysClear(t, mustOpen(t, factory))
		})

		t.Run("EmptyKey", func(t *testing.T) {
			testEmptyKey(t, mustOpen(t, factory))
		})

		t.Run("Scan", func(t *testing.T) {
			testScan(t, mustOpen(t, factory))
		})

		t.Run("ScanBounds", func(t *testing.T) {
			testScanBounds(t, mustOpen(t, factory))
		})

		t.Run("SeparatorKeys", func(t *testing.T) {
			testSeparatorKeys(t, mustOpen(t, factory))
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

func mustOpen(t testing.TB, factory db.Factory) db.OrderedKV {
	t.Helper()
	store, err := factory()
	if err != nil {
		t.Fatalf("factory failed: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return store
}

func mustPut(t testing.TB, store db.OrderedKV, key, value string) {
	t.Helper()
	if err := store.Put(key, value); err != nil {
		t.Fatalf("Put(%q) failed: %v", key, err)
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testPutGet(t *testing.T, store db.OrderedKV) {
	mustPut(t, store, "test-key", "test-value")

	value, loaded, err := store.Get("test-key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !loaded {
		t.Errorf("Expected key %q to exist after Put", "test-key")
	}
	if value != "test-value" {
		t.Errorf("Expected value %q, got %q", "test-value", value)
	}

	_, loaded, err = store.Get("missing-key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if loaded {
		t.Errorf("Expected missing key to report loaded=false")
	}
}

func testOverwrite(t *testing.T, store db.OrderedKV) {
	mustPut(t, store, "key", "first")
	mustPut(t, store, "key", "second")

	value, loaded, err := store.Get("key")
	if err != nil || !loaded {
		t.Fatalf("Get after overwrite failed: loaded=%v err=%v", loaded, err)
	}
	if value != "second" {
		t.Errorf("Expected overwritten value %q, got %q", "second", value)
	}
}

func testDelete(t *testing.T, store db.OrderedKV) {
	mustPut(t, store, "key", "value")

	if err := store.Delete("key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, loaded, err := store.Get("key")
	if err != nil {
		t.Fatalf("Get after Delete failed: %v", err)
	}
	if loaded {
		t.Errorf("Expected key to be gone after Delete")
	}

	// deleting a missing key is idempotent
	if err := store.Delete("key"); err != nil {
		t.Errorf("Delete of missing key should be a no-op, got %v", err)
	}
}

func testKeysClear(t *testing.T, store db.OrderedKV) {
	mustPut(t, store, "key1", "value1")
	mustPut(t, store, "key2", "value2")

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("Expected 2 keys, got %d", len(keys))
	}
	sort.Strings(keys)
	if keys[0] != "key1" || keys[1] != "key2" {
		t.Errorf("Unexpected key set: %v", keys)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	keys, err = store.Keys()
	if err != nil {
		t.Fatalf("Keys after Clear failed: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("Expected empty store after Clear, got %d keys", len(keys))
	}
}

func testEmptyKey(t *testing.T, store db.OrderedKV) {
	if err := store.Put("", "value"); db.CodeOf(err) != db.ErrCInvalidKey {
		t.Errorf("Put with empty key: expected ErrCInvalidKey, got %v", err)
	}
	if _, _, err := store.Get(""); db.CodeOf(err) != db.ErrCInvalidKey {
		t.Errorf("Get with empty key: expected ErrCInvalidKey, got %v", err)
	}
	if err := store.Delete(""); db.CodeOf(err) != db.ErrCInvalidKey {
		t.Errorf("Delete with empty key: expected ErrCInvalidKey, got %v", err)
	}
}

func testScan(t *testing.T, store db.OrderedKV) {
	mustPut(t, store, "a", "1")
	mustPut(t, store, "b", "2")
	mustPut(t, store, "c", "3")
	mustPut(t, store, "d", "4")

	entries, err := store.Scan("b", "d")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	got := make(map[string]string, len(entries))
	for _, e := range entries {
		got[e.Key] = e.Value
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 entries in [b, d), got %d: %v", len(got), got)
	}
	if got["b"] != "2" || got["c"] != "3" {
		t.Errorf("Unexpected scan result: %v", got)
	}
	// half-open: the end bound itself is excluded even though key "d" exists
	if _, ok := got["d"]; ok {
		t.Errorf("Scan must not include the end bound key")
	}
}

func testScanBounds(t *testing.T, store db.OrderedKV) {
	if _, err := store.Scan("", "end"); db.CodeOf(err) != db.ErrCInvalidKey {
		t.Errorf("Scan with empty start: expected ErrCInvalidKey, got %v", err)
	}
	if _, err := store.Scan("start", ""); db.CodeOf(err) != db.ErrCInvalidKey {
		t.Errorf("Scan with empty end: expected ErrCInvalidKey, got %v", err)
	}
	if _, err := store.Scan("", ""); db.CodeOf(err) != db.ErrCInvalidKey {
		t.Errorf("Scan with both bounds empty: expected ErrCInvalidKey, got %v", err)
	}
}

// testSeparatorKeys verifies keys embedding the NUL separator survive a full
// put/scan/get cycle, since both key families depend on it.
func testSeparatorKeys(t *testing.T, store db.OrderedKV) {
	mustPut(t, store, "M202509\x00tokyo_bay_cup", "event-a")
	mustPut(t, store, "M202509\x00kiryu_open", "event-b")
	mustPut(t, store, "M202510\x00autumn_cup", "event-c")

	entries, err := store.Scan("M202509", "M202510")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 entries for 2025-09, got %d", len(entries))
	}

	value, loaded, err := store.Get("M202509\x00tokyo_bay_cup")
	if err != nil || !loaded {
		t.Fatalf("Get with separator key failed: loaded=%v err=%v", loaded, err)
	}
	if value != "event-a" {
		t.Errorf("Expected %q, got %q", "event-a", value)
	}
}

// --------------------------------------------------------------------------
// Benchmarks
// --------------------------------------------------------------------------

// RunOrderedKVBenchmarks runs a benchmark suite for an OrderedKV
// implementation.
func RunOrderedKVBenchmarks(b *testing.B, name string, factory db.Factory) {
	b.Run(name, func(b *testing.B) {
		b.Run("Put", func(b *testing.B) {
			store := mustOpen(b, factory)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = store.Put(fmt.Sprintf("key-%d", i), "value")
			}
		})

		b.Run("Get", func(b *testing.B) {
			store := mustOpen(b, factory)
			for i := 0; i < 1000; i++ {
				_ = store.Put(fmt.Sprintf("key-%d", i), "value")
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _, _ = store.Get(fmt.Sprintf("key-%d", i%1000))
			}
		})

		b.Run("Scan", func(b *testing.B) {
			store := mustOpen(b, factory)
			for i := 0; i < 1000; i++ {
				_ = store.Put(fmt.Sprintf("key-%04d", i), "value")
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = store.Scan("key-0100", "key-0200")
			}
		})
	})
}
