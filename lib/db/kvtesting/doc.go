// Package kvtesting provides a shared conformance test suite and benchmark
// suite for implementations of the db.OrderedKV interface. Every engine runs
// the same suite from its own package tests, so contract changes are caught
// in one place.
package kvtesting
