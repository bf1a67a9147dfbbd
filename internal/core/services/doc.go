// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The two engines, SearchEngine and RecommendationEngine, are independent
// and share no state. Each guards its own mutable state with one mutex, so
// a single call's updates are never partially visible to another caller.
//
// Services are pure Go with no CGO or external dependencies.
package services
