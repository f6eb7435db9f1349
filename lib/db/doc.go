// Package db defines the ordered key-value contract shared by all storage
// backends, together with the typed error system used across the library.
//
// The package focuses on:
//   - A unified interface (OrderedKV) for key-value operations across
//     different backends
//   - Half-open range scans over a flat, bytewise-ordered key space
//   - Standardized error reporting through typed error codes
//
// Key Components:
//
//   - OrderedKV Interface: The core abstraction every backend must satisfy.
//     It provides point operations (Put, Get, Delete), full key enumeration
//     (Keys), a half-open range scan (Scan) and bulk removal (Clear). The
//     scan contract is deliberately weak: the result order is unspecified,
//     so cheaper backends need not maintain a sorted index. Callers that
//     need key order sort after scanning.
//
//   - Error System: A structured error reporting mechanism using typed error
//     codes (ErrCInvalidKey, ErrCInvalidValue, ErrCNotFound,
//     ErrCSerialization, ErrCIO) and descriptive messages. CodeOf classifies
//     any error for callers that branch on the failure kind.
//
//   - Factory: A function type that abstracts the creation of OrderedKV
//     instances, providing dependency injection of storage backends.
//
// Implementations:
//
//	The package ships three implementations of the OrderedKV interface:
//
//	- memkv: a non-durable in-memory backend built on a concurrent map.
//	  Available in "github.com/ktamura/kyoteidb/lib/db/engines/memkv".
//
//	- filekv: a durable backend persisting the whole store as a single JSON
//	  snapshot, rewritten and fsynced on every mutation.
//	  Available in "github.com/ktamura/kyoteidb/lib/db/engines/filekv".
//
//	- boltkv: a durable backend on top of bbolt whose scans come back in key
//	  order as a side effect of the B+tree (callers must still not rely on
//	  this, per the contract).
//	  Available in "github.com/ktamura/kyoteidb/lib/db/engines/boltkv".
package db
