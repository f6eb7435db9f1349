// Package filekv provides the file-backed implementation of the db.OrderedKV
// interface. The entire store is one JSON snapshot on disk: opening loads it
// fully into memory, and every mutating call rewrites the file (temp file,
// fsync, rename) before returning.
//
// The write-through cycle is not atomic under concurrent writers across
// processes; callers needing that must serialize access externally. Within
// one process the store is guarded by a reader/writer lock.
package filekv
