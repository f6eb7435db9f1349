// Package engine implements the schedule engine: the high-level API for
// managing race schedule and event records over any db.OrderedKV backend.
//
// Records are grouped two ways - by calendar month and by tournament - and
// both groupings live in the same flat key space (see the keycodec package).
// The engine writes monthly schedules, replicates events that span several
// months into each month they touch, stores per-tournament timed race
// records, and aggregates statistics over the whole store.
//
// The engine is synchronous and performs no background work; every operation
// is a direct call that returns or fails immediately. Error semantics follow
// the db package's typed errors: the first failure is returned as-is and
// multi-key writes are not rolled back.
package engine
