// Package cmd implements the command-line interface for the kyoteidb race
// schedule database. It provides a hierarchical command structure for
// managing monthly schedules and race data records over any of the storage
// backends.
//
// The package is organized into several subpackages:
//
//   - schedule: Commands for monthly schedules (put, get, register)
//   - race: Commands for per-tournament race data (put, get, list)
//   - stats: Command for store-wide statistics
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See kyoteidb -help for a list of all commands.
package cmd
