// Package memkv provides the in-memory implementation of the db.OrderedKV
// interface. It is backed by a lock-free concurrent map (xsync.MapOf), so all
// operations are safe for concurrent callers without external locking.
//
// The store is non-durable. Scan runs in O(n) over all entries because the
// map keeps no key order - acceptable under the weak scan contract, which
// leaves result ordering unspecified.
package memkv
