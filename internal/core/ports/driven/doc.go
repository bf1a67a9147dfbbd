// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Catalog: Supplies the current product list
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the engines keep their state in memory only:
//
//   - ProfileStore: Shopper profile persistence (SQLite, Badger or memory)
//   - QueryLogStore: Query popularity log persistence
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
