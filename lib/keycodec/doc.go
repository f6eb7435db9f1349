// Package keycodec maps schedule and race records into a single flat key
// space such that both access patterns - scan by calendar month and scan by
// tournament - are plain range scans over an ordered store.
//
// Two key families exist:
//
//	monthly view:     M + YYYYMM       + 0x00 + tournament_id
//	tournament data:  T + tournament_id + 0x00 + timestamp (16 hex digits, big-endian)
//
// The timestamp is fixed-width zero-padded hex so that lexicographic key
// order equals numeric timestamp order. Scan bounds are half-open; the
// monthly upper bound simply increments the 6-digit year-month tag, which
// may produce a month "13" - an invalid but sortably-greater bound that never
// has to match a real key.
//
// The package also derives tournament identifiers from venue/event name
// pairs (GenerateTournamentID). All functions are pure; none fail on
// well-formed input.
package keycodec
