// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements both persistence ports
// through a single database connection:
//
//   - ProfileStore: Shopper behaviour and preferences
//   - QueryLogStore: The search engine's query popularity log
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Rows hold versioned JSON envelopes produced by the codec package.
//
// # Data Location
//
// By default, the database is stored at ~/.shopsearch/data/shopsearch.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
