// Package boltkv provides a bbolt-backed implementation of the db.OrderedKV
// interface. All entries live in a single bucket; range scans are served by
// a B+tree cursor, so they are cheap even on large stores.
package boltkv
