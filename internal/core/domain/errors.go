package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown interaction, sort or backend type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnsupportedSchema indicates a persisted blob written by an unknown schema version.
	ErrUnsupportedSchema = errors.New("unsupported schema version")

	// ErrStorageUnavailable indicates no profile or query log store is configured.
	// The engines keep working in memory without one.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrCatalogUnavailable indicates the catalog could not be loaded.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrPersonalizationDisabled indicates the shopper turned personalization off.
	ErrPersonalizationDisabled = errors.New("personalization disabled")

	// ErrRateLimited indicates a caller exceeded the tool-call rate limit.
	ErrRateLimited = errors.New("rate limited")
)
